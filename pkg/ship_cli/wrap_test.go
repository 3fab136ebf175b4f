package ship_cli

import (
	"context"
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_io"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "ship"}
	cmd.SetContext(context.Background())
	return cmd
}

func TestWrap_PassesThroughSuccess(t *testing.T) {
	logger.SetLogger(zaptest.NewLogger(t))

	called := false
	run := Wrap(func(rc *ship_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		called = true
		require.NotNil(t, rc.Ctx)
		assert.Equal(t, []string{"a"}, args)
		return nil
	})

	require.NoError(t, run(newCmd(), []string{"a"}))
	assert.True(t, called)
}

func TestWrap_RecoversPanic(t *testing.T) {
	logger.SetLogger(zaptest.NewLogger(t))

	run := Wrap(func(rc *ship_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		panic("unexpected")
	})

	err := run(newCmd(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected")
}

func TestWrap_KeepsClassification(t *testing.T) {
	logger.SetLogger(zaptest.NewLogger(t))

	storage := ship_err.NewStorageError("index write failed", errors.New("eacces"))
	run := Wrap(func(rc *ship_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return storage
	})

	err := run(newCmd(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage))
	assert.Equal(t, 1, ship_err.GetExitCode(err))
}

func TestWrap_ExpectedErrorUntouched(t *testing.T) {
	logger.SetLogger(zaptest.NewLogger(t))

	expected := ship_err.NewExpectedError(errors.New("no changes to commit"))
	run := Wrap(func(rc *ship_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return expected
	})

	err := run(newCmd(), nil)
	assert.Same(t, expected, err)
	assert.Equal(t, 0, ship_err.GetExitCode(err))
}
