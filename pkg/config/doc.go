// Package config loads greatness settings.
//
// Settings are layered, later layers winning:
//
//  1. the defaults embedded in the binary (embedded/defaults.toml)
//  2. <greatness dir>/config.toml, when present
//  3. GREATNESS_* environment variables, with "__" separating sections,
//     e.g. GREATNESS_INSTALL__OVERWRITE=never
//  4. overrides passed by the command line
//
// The merged tree is decoded into Config with mapstructure.
package config
