package ship_err

import (
	"errors"
	"fmt"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain_error", err: errors.New("boom"), want: 1},
		{name: "repository_open", err: NewRepositoryOpenError("/tmp/x", errors.New("not found")), want: 1},
		{name: "storage", err: NewStorageError("index write failed", errors.New("eperm")), want: 1},
		{name: "config", err: NewConfigError("user.name is not set", nil), want: 1},
		{name: "commit", err: NewCommitError("reference update failed", errors.New("locked")), want: 1},
		{name: "validation", err: NewValidationError("bad flag"), want: 2},
		{name: "internal", err: NewInternalError("bug", nil), want: 3},
		{name: "user_cancelled", err: NewUserCancelledError("commit message prompt"), want: 130},
		{name: "expected", err: NewExpectedError(errors.New("nothing to commit")), want: 0},
		{name: "expected_wrapping_classified", err: NewExpectedError(NewStorageError("x", nil)), want: 0},
		{name: "wrapped_classified", err: cerr.Wrap(NewValidationError("bad"), "outer"), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestClassifiedError_UnwrapAndCategory(t *testing.T) {
	t.Parallel()

	root := errors.New("permission denied")
	err := fmt.Errorf("stage: %w", NewStorageError("failed to persist index", root))

	assert.True(t, errors.Is(err, root))

	cat, ok := CategoryOf(err)
	require.True(t, ok)
	assert.Equal(t, CategoryStorage, cat)
	assert.Equal(t, "storage", cat.String())

	_, ok = CategoryOf(errors.New("unclassified"))
	assert.False(t, ok)
}

func TestClassifiedError_Message(t *testing.T) {
	t.Parallel()

	err := NewConfigError("committer identity is not configured", errors.New("user.email is empty"),
		"git config --global user.email you@example.com")

	msg := err.Error()
	assert.Contains(t, msg, "committer identity is not configured: user.email is empty")
	assert.Contains(t, msg, "How to fix:")
	assert.Contains(t, msg, "1. git config --global user.email you@example.com")
}

func TestExtractSummary(t *testing.T) {
	t.Parallel()

	out := "To origin\n ! [rejected]        main -> main (non-fast-forward)\nerror: failed to push some refs\nhint: pull first"
	assert.Equal(t, "! [rejected]        main -> main (non-fast-forward) - error: failed to push some refs", ExtractSummary(out, 2))
	assert.Equal(t, "No output provided.", ExtractSummary("   ", 2))
	assert.Equal(t, "Everything up-to-date", ExtractSummary("Everything up-to-date\n", 2))
}

func TestWrapWithHint(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapWithHint(nil, "hint"))

	base := errors.New("base")
	wrapped := WrapWithHint(base, "try again")
	assert.True(t, errors.Is(wrapped, base))
	assert.Contains(t, Hints(wrapped), "try again")
}
