package supervisor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SpawnOptions configures the detached background push.
type SpawnOptions struct {
	// Executable defaults to the running binary.
	Executable string
	Args       []string
	// Env is the base environment; nil means os.Environ().
	Env     []string
	Request PushRequest
	// LogPath receives the child's stdout and stderr.
	LogPath string
}

// Spawned identifies a started background push.
type Spawned struct {
	PID     int
	RunID   string
	LogPath string
}

// Spawn starts the background push in its own session with stdin closed and
// output appended to LogPath, then releases it. The child is never waited on
// and its outcome is never reported back; ctx only scopes logging and tracing.
func Spawn(ctx context.Context, opts SpawnOptions) (Spawned, error) {
	ctx, span := telemetry.Start(ctx, "supervisor.Spawn")
	defer span.End()
	logger := otelzap.Ctx(ctx)

	exe := opts.Executable
	if exe == "" {
		self, err := os.Executable()
		if err != nil {
			return Spawned{}, ship_err.NewInternalError("cannot locate own executable", err)
		}
		exe = self
	}
	if opts.LogPath == "" {
		return Spawned{}, ship_err.NewValidationError("background push log path is empty")
	}

	req := opts.Request
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	if err := os.MkdirAll(filepath.Dir(opts.LogPath), 0o755); err != nil {
		return Spawned{}, cerr.Wrapf(err, "create push log directory for %s", opts.LogPath)
	}
	logFile, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Spawned{}, cerr.Wrapf(err, "open push log %s", opts.LogPath)
	}
	// The child holds its own descriptor once started.
	defer logFile.Close()

	base := opts.Env
	if base == nil {
		base = os.Environ()
	}

	// exec.Command, not CommandContext: the child must outlive ctx.
	cmd := exec.Command(exe, opts.Args...)
	cmd.Env = append(withoutMarkers(base), req.Env()...)
	cmd.Dir = req.Dir
	cmd.Stdin = nil
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	detach(cmd)

	if err := cmd.Start(); err != nil {
		span.RecordError(err)
		return Spawned{}, cerr.Wrapf(err, "start background push %s", exe)
	}

	spawned := Spawned{PID: cmd.Process.Pid, RunID: req.RunID, LogPath: opts.LogPath}
	if err := cmd.Process.Release(); err != nil {
		logger.Warn("Failed to release background push process", zap.Error(err))
	}

	span.SetAttributes(
		attribute.String("run_id", spawned.RunID),
		attribute.Int("pid", spawned.PID))
	logger.Info("Background push started",
		zap.String("run_id", spawned.RunID),
		zap.Int("pid", spawned.PID),
		zap.String("branch", req.Branch),
		zap.String("log", opts.LogPath))

	return spawned, nil
}

func (s Spawned) String() string {
	return fmt.Sprintf("pid %d (run %s)", s.PID, s.RunID)
}
