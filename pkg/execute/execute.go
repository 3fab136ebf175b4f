// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Options describes a single external command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	// Env entries are appended to the inherited environment.
	Env []string
	// Timeout bounds the run; zero means no deadline beyond ctx.
	Timeout time.Duration
	// Output additionally receives combined stdout/stderr as it is produced.
	Output io.Writer
	Logger *zap.Logger
}

// Run executes a command without a shell and returns its combined output.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	ctx, span := telemetry.Start(ctx, "execute.Run",
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)
	defer span.End()

	logger.Debug("Starting execution", zap.String("command", cmdStr), zap.String("dir", opts.Dir))

	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}

	var buf bytes.Buffer
	var writer io.Writer = &buf
	if opts.Output != nil {
		writer = io.MultiWriter(&buf, opts.Output)
	}
	cmd.Stdout = writer
	cmd.Stderr = writer

	err := cmd.Run()
	output := buf.String()
	if err != nil {
		span.RecordError(err)
		logger.Error("Execution failed",
			zap.String("command", cmdStr),
			zap.String("summary", ship_err.ExtractSummary(output, 2)),
			zap.Error(err))
		return output, cerr.Wrapf(err, "%s failed", cmdStr)
	}

	logger.Debug("Execution succeeded", zap.String("command", cmdStr))
	return output, nil
}

// ExitCode returns the process exit code carried by err, or -1.
func ExitCode(err error) int {
	var ee *exec.ExitError
	if cerr.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

func buildCommandString(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
