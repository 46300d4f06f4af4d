package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "file not found",
			wantStr: "[NOT_FOUND] file not found",
		},
		{
			name:    "manifest_parse_error",
			code:    errors.ErrManifestParse,
			message: "bad yaml",
			wantStr: "[MANIFEST_PARSE] bad yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidInput, "invalid value: %s (%d)", "x", 3)
	assert.Equal(t, "invalid value: x (3)", err.Message)
	assert.Equal(t, errors.ErrInvalidInput, err.Code)
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_stays_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrFileCopy, "copy"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrFileCopy, "copy %s", "a"))
	})

	t.Run("wrapped_error_is_reachable", func(t *testing.T) {
		base := stderrors.New("disk full")
		err := errors.Wrapf(base, errors.ErrFileCopy, "copy %s", "a")

		assert.Equal(t, "[FILE_COPY] copy a: disk full", err.Error())
		assert.True(t, stderrors.Is(err, base))
		assert.Same(t, base, stderrors.Unwrap(err))
	})
}

func TestIsComparesCodes(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrTransport, "clone failed"))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrTransport, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrNotFound, "")))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrFileCopy, "copy failed").
		WithPaths("/src/a", "/dst/a").
		WithDetail("attempt", 1)

	details := errors.GetErrorDetails(fmt.Errorf("wrapped: %w", err))
	require.NotNil(t, details)
	assert.Equal(t, "/src/a", details["source"])
	assert.Equal(t, "/dst/a", details["destination"])
	assert.Equal(t, 1, details["attempt"])

	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestCodeHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode errors.ErrorCode
	}{
		{"greatness_error", errors.New(errors.ErrBackupCreate, "x"), errors.ErrBackupCreate},
		{"wrapped_greatness_error", fmt.Errorf("ctx: %w", errors.New(errors.ErrDirCreate, "x")), errors.ErrDirCreate},
		{"plain_error", stderrors.New("x"), errors.ErrUnknown},
		{"nil_error", nil, errors.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(tt.err))
			if tt.wantCode != errors.ErrUnknown {
				assert.True(t, errors.IsErrorCode(tt.err, tt.wantCode))
			}
		})
	}
}
