package manifest

import (
	"bytes"
	"os"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// EmptyDocument is what init writes: a valid manifest with nothing in it
const EmptyDocument = "{}\n"

// Parse decodes a manifest. Empty input is an empty document. Malformed
// input is an error; nothing is repaired or dropped.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "malformed manifest")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks the uniqueness invariants of a decoded document
func (d *Document) Validate() error {
	files := map[string]struct{}{}
	for i, f := range d.Files {
		if f.Path == "" {
			return errors.Newf(errors.ErrManifestParse, "file entry %d has no path", i)
		}
		if _, dup := files[f.Path]; dup {
			return errors.Newf(errors.ErrManifestParse, "file %s is listed more than once", f.Path).
				WithDetail("path", f.Path)
		}
		files[f.Path] = struct{}{}
	}

	packages := map[string]struct{}{}
	for i, p := range d.Packages {
		if p.Name == "" {
			return errors.Newf(errors.ErrManifestParse, "package entry %d has no name", i)
		}
		if _, dup := packages[p.Name]; dup {
			return errors.Newf(errors.ErrManifestParse, "package %s is listed more than once", p.Name).
				WithDetail("package", p.Name)
		}
		packages[p.Name] = struct{}{}
	}

	for i, r := range d.Requires {
		if r.LocalPath == "" {
			return errors.Newf(errors.ErrManifestParse, "requirement entry %d has no path", i)
		}
	}
	return nil
}

// Marshal encodes the document with empty collections omitted
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest")
	}
	return buf.Bytes(), nil
}

// Load reads and parses the manifest at path
func Load(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "manifest %s does not exist", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest %s", path).
			WithDetail("path", path)
	}
	doc, err := Parse(data)
	if err != nil {
		if gErr, ok := err.(*errors.GreatnessError); ok {
			return nil, gErr.WithDetail("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// Save atomically replaces the manifest at path with d
func Save(fs afero.Fs, path string, d *Document) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	if err := filesystem.AtomicWriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to save manifest %s", path).
			WithDetail("path", path)
	}
	return nil
}
