package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kilib/pkg/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrSyntax, "unbalanced parentheses")
	assert.Equal(t, errors.ErrSyntax, err.Code)
	assert.Equal(t, "[SYNTAX_ERROR] unbalanced parentheses", err.Error())
	assert.NotNil(t, err.Details)
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrNotFound, "no library named %q", "Custom")
	assert.Equal(t, `[NOT_FOUND] no library named "Custom"`, err.Error())
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.ErrFileAccess, "cannot read table")
	require.NotNil(t, err)
	assert.Equal(t, "[FILE_ACCESS] cannot read table: permission denied", err.Error())
	assert.True(t, stderrors.Is(err, cause))

	assert.Nil(t, errors.Wrap(nil, errors.ErrFileAccess, "ignored"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrConflict, "duplicate symbols")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConflict))
	assert.False(t, errors.IsErrorCode(err, errors.ErrSyntax))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrConflict))

	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrConflict))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrStructure, "missing name field").
		WithDetail("path", "/tmp/lib.kicad_sym")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "/tmp/lib.kicad_sym", details["path"])
}

func TestConflicts(t *testing.T) {
	err := errors.New(errors.ErrConflict, "symbols already present: A, B").
		WithDetail("conflicts", []string{"A", "B"})

	assert.Equal(t, []string{"A", "B"}, errors.Conflicts(err))

	wrapped := fmt.Errorf("import failed: %w", err)
	assert.Equal(t, []string{"A", "B"}, errors.Conflicts(wrapped))

	assert.Nil(t, errors.Conflicts(errors.New(errors.ErrSyntax, "not a conflict")))
	assert.Nil(t, errors.Conflicts(fmt.Errorf("plain")))
}
