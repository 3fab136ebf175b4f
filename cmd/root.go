/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/output"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_cli"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_io"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/supervisor"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cfg is resolved in PersistentPreRunE, before any handler runs.
var cfg *config.Config

// RootCmd is the single ship command.
var RootCmd = &cobra.Command{
	Use:   "ship",
	Short: "Stage every change, commit it, and push in the background",
	Long: `ship stages all new, modified and deleted files in the current repository,
shows what changed, asks for a commit message and commits. The push to the
branch's remote runs in a detached background process so the terminal is
free as soon as the commit exists.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: ship_cli.Wrap(func(rc *ship_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		mode := supervisor.CurrentMode()
		rc.Attributes["mode"] = mode.String()

		if mode == supervisor.BackgroundPush {
			return runBackgroundPush(rc, cfg, os.Getenv)
		}
		return newPipeline(cfg).run(rc)
	}),
}

func init() {
	config.AddFlags(RootCmd.Flags())
}

// setup resolves configuration, then installs the logger and tracer that
// match the invocation mode.
func setup(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return ship_err.NewConfigError("failed to bind flags", err)
	}
	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	level := logger.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	switch supervisor.CurrentMode() {
	case supervisor.BackgroundPush:
		logger.InitializeDetached(level)
		if runID := os.Getenv(supervisor.EnvPushRunID); runID != "" {
			logger.SetLogger(logger.L().With(zap.String("run_id", runID)))
		}
	default:
		logger.InitializeInteractive(level)
	}

	if err := telemetry.Init("ship", cfg.Telemetry); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}

	logger.L().Debug("Configuration loaded",
		zap.String("config_file", cfg.ConfigFile),
		zap.Bool("push", cfg.Push),
		zap.String("remote", cfg.Remote))
	return nil
}

// Execute runs ship and exits with the code for the outcome.
func Execute() {
	code := run(context.Background())
	os.Exit(code)
}

func run(ctx context.Context) int {
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
		// Syncing stderr fails with EINVAL on some platforms.
		_ = logger.Sync()
	}()

	err := RootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	code := ship_err.GetExitCode(err)
	if code != 0 && supervisor.CurrentMode() == supervisor.Interactive {
		printer := output.NewPrinter(os.Stderr)
		printer.Failure("%v", err)
		for _, hint := range ship_err.Hints(err) {
			printer.Notice("hint: %s", hint)
		}
	}
	logger.L().Debug("Exiting", zap.Int("exit_code", code), zap.Error(err))
	return code
}

func shortHash(s fmt.Stringer) string {
	h := s.String()
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
