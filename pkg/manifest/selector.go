package manifest

import (
	"github.com/IsaccBarker/Greatness/pkg/errors"
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Selector decides which tracked files an operation applies to
type Selector interface {
	Match(f TrackedFile) (bool, error)
}

type selectAll struct{}

func (selectAll) Match(TrackedFile) (bool, error) { return true, nil }

// All selects every file
func All() Selector { return selectAll{} }

type tagSelector string

func (t tagSelector) Match(f TrackedFile) (bool, error) {
	return f.Tag == string(t), nil
}

// WithTag selects files whose tag equals tag. Untagged files never match.
func WithTag(tag string) Selector { return tagSelector(tag) }

type exprSelector struct {
	expression string
	program    *exprvm.Program
}

// Where compiles a boolean expression over a file's path, tag, scripts and
// encrypted fields, e.g. `tag in ["work", "shell"] && !encrypted`.
func Where(expression string) (Selector, error) {
	program, err := exprlang.Compile(expression,
		exprlang.Env(fileEnv(TrackedFile{})),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSelectorCompile, "invalid selector %q", expression)
	}
	return &exprSelector{expression: expression, program: program}, nil
}

func (e *exprSelector) Match(f TrackedFile) (bool, error) {
	out, err := exprlang.Run(e.program, fileEnv(f))
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrSelectorEval, "selector %q failed on %s", e.expression, f.Path)
	}
	matched, _ := out.(bool)
	return matched, nil
}

func fileEnv(f TrackedFile) map[string]any {
	scripts := f.Scripts
	if scripts == nil {
		scripts = []string{}
	}
	return map[string]any{
		"path":      f.Path,
		"tag":       f.Tag,
		"scripts":   scripts,
		"encrypted": f.Encrypted,
	}
}

type allOf []Selector

func (a allOf) Match(f TrackedFile) (bool, error) {
	for _, s := range a {
		ok, err := s.Match(f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// NewSelector combines an optional tag filter and an optional expression.
// With neither, every file is selected.
func NewSelector(tag, where string) (Selector, error) {
	var parts allOf
	if tag != "" {
		parts = append(parts, WithTag(tag))
	}
	if where != "" {
		s, err := Where(where)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	switch len(parts) {
	case 0:
		return All(), nil
	case 1:
		return parts[0], nil
	}
	return parts, nil
}

// Select returns the files of d matched by s, in document order
func (d *Document) Select(s Selector) ([]TrackedFile, error) {
	var out []TrackedFile
	for _, f := range d.Files {
		ok, err := s.Match(f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}
