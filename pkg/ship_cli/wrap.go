// pkg/ship_cli/wrap.go

package ship_cli

import (
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Wrap ensures panic recovery, telemetry and logging around a command handler.
func Wrap(fn func(rc *ship_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := ship_io.NewContext(cmd.Context(), cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		ship_io.LogRuntimeExecutionContext(rc)

		err = fn(rc, cmd, args)
		if err != nil && !ship_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
