// Package scripts runs user transform scripts over tracked files.
//
// A script is a JavaScript file defining
//
//	function transform(contents, file) { return contents }
//
// where contents is the file's current text and file its portable path. The
// returned string replaces the file's contents. Scripts may call info, warn
// and error to log through greatness.
package scripts

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/dop251/goja"
	"github.com/spf13/afero"
)

// EntryPoint is the function every script must define
const EntryPoint = "transform"

// DefaultTimeout bounds a single script invocation
const DefaultTimeout = 10 * time.Second

// Engine compiles scripts once and runs each invocation in a fresh runtime
type Engine struct {
	Fs      afero.Fs
	Timeout time.Duration

	mu       sync.Mutex
	programs map[string]*goja.Program
}

// NewEngine returns an engine reading scripts from fs
func NewEngine(fs afero.Fs, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{Fs: fs, Timeout: timeout, programs: map[string]*goja.Program{}}
}

// Compile parses the script at path, reusing an earlier compilation
func (e *Engine) Compile(path string) (*goja.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if program, ok := e.programs[path]; ok {
		return program, nil
	}

	src, err := afero.ReadFile(e.Fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read script %s", path).
			WithDetail("script", path)
	}
	program, err := goja.Compile(path, string(src), false)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptCompile, "script %s does not compile", path).
			WithDetail("script", path)
	}
	if e.programs == nil {
		e.programs = map[string]*goja.Program{}
	}
	e.programs[path] = program
	return program, nil
}

// Run applies the script at path to contents and returns the new contents.
// identity names the file being transformed.
func (e *Engine) Run(path, contents, identity string) (string, error) {
	program, err := e.Compile(path)
	if err != nil {
		return "", err
	}

	vm := goja.New()
	bindLogging(vm, path)

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt(fmt.Sprintf("script exceeded %s", timeout))
	})
	defer timer.Stop()

	if _, err := vm.RunProgram(program); err != nil {
		return "", runError(err, path, identity)
	}

	transform, ok := goja.AssertFunction(vm.Get(EntryPoint))
	if !ok {
		return "", errors.Newf(errors.ErrScriptCompile, "script %s does not define %s(contents, file)", path, EntryPoint).
			WithDetail("script", path)
	}
	value, err := transform(goja.Undefined(), vm.ToValue(contents), vm.ToValue(identity))
	if err != nil {
		return "", runError(err, path, identity)
	}

	out, ok := value.Export().(string)
	if !ok {
		return "", errors.Newf(errors.ErrScriptRun, "%s in %s must return a string, got %s", EntryPoint, path, describe(value)).
			WithDetail("script", path).
			WithDetail("file", identity)
	}
	return out, nil
}

func runError(err error, path, identity string) error {
	return errors.Wrapf(err, errors.ErrScriptRun, "script %s failed on %s", path, identity).
		WithDetail("script", path).
		WithDetail("file", identity)
}

func describe(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return strings.ToLower(v.ExportType().Kind().String())
}

func bindLogging(vm *goja.Runtime, path string) {
	logger := logging.GetLogger("script").With().Str("script", path).Logger()
	_ = vm.Set("info", func(msg string) { logger.Info().Msg(msg) })
	_ = vm.Set("warn", func(msg string) { logger.Warn().Msg(msg) })
	_ = vm.Set("error", func(msg string) { logger.Error().Msg(msg) })
}
