package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeConfigError, "missing gml_path"),
			expected: "[CONFIG_ERROR] missing gml_path",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeIOError, "failed to read graph", errors.New("permission denied")),
			expected: "[IO_ERROR] failed to read graph: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeIOError, "read failed", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeConfigError, "error 1")
	err2 := New(CodeConfigError, "error 2")
	err3 := New(CodeIOError, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "config error",
			err:      ErrConfigError,
			expected: true,
		},
		{
			name:     "wrapped config error",
			err:      Wrap(CodeConfigError, "bad value", errors.New("not an integer")),
			expected: true,
		},
		{
			name:     "other error",
			err:      ErrIOError,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConfigError(tt.err))
		})
	}
}

func TestIsIOError(t *testing.T) {
	assert.True(t, IsIOError(ErrIOError))
	assert.False(t, IsIOError(ErrConfigError))
}

func TestIsInvariantViolation(t *testing.T) {
	assert.True(t, IsInvariantViolation(ErrInvariantViolation))
	assert.False(t, IsInvariantViolation(ErrConfigError))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeConfigError, "bad config"),
			expected: CodeConfigError,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeIOError, "read", errors.New("inner")),
			expected: CodeIOError,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeConfigError, "db connection failed"),
			expected: "db connection failed",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}
