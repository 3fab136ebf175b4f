package git

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultRemote is pushed to when the branch has no configured upstream.
const DefaultRemote = "origin"

// PushTarget names one branch ref and the remote it is pushed to.
type PushTarget struct {
	Dir    string
	Remote string
	Ref    plumbing.ReferenceName
}

// Refspec pushes the local ref to the same name on the remote.
func (t PushTarget) Refspec() string {
	return t.Ref.String() + ":" + t.Ref.String()
}

// ResolvePushTarget picks the remote for branch: the override when given,
// else the branch's configured remote, else DefaultRemote.
func (r *Repository) ResolvePushTarget(branch plumbing.ReferenceName, remoteOverride string) (PushTarget, error) {
	if !branch.IsBranch() {
		return PushTarget{}, ship_err.NewPushError("cannot push "+branch.String()+": not a branch", nil)
	}

	remote := strings.TrimSpace(remoteOverride)
	if remote == "" {
		cfg, err := r.repo.Config()
		if err != nil {
			return PushTarget{}, ship_err.NewPushError("failed to read repository config", err)
		}
		if b, ok := cfg.Branches[branch.Short()]; ok && b.Remote != "" {
			remote = b.Remote
		}
	}
	if remote == "" {
		remote = DefaultRemote
	}

	if _, err := r.repo.Remote(remote); err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return PushTarget{}, ship_err.NewPushError("remote "+remote+" is not configured", err,
				"git remote add "+remote+" <url>")
		}
		return PushTarget{}, ship_err.NewPushError("failed to look up remote "+remote, err)
	}

	return PushTarget{Dir: r.root, Remote: remote, Ref: branch}, nil
}

// Push runs `git push` for target, streaming its output to out. Credentials
// come from the user's ambient git setup (credential helpers, ssh-agent);
// terminal prompting is disabled because nobody is attached to answer.
func Push(ctx context.Context, target PushTarget, out io.Writer) error {
	ctx, span := telemetry.Start(ctx, "git.Push",
		attribute.String("remote", target.Remote),
		attribute.String("ref", target.Ref.String()))
	defer span.End()
	logger := otelzap.Ctx(ctx)

	output, err := execute.Run(ctx, execute.Options{
		Command: "git",
		Args:    []string{"push", "--porcelain", target.Remote, target.Refspec()},
		Dir:     target.Dir,
		Env:     []string{"GIT_TERMINAL_PROMPT=0"},
		Output:  out,
		Logger:  logger.ZapLogger(),
	})
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ship_err.NewDependencyError("git", "push",
				"Install git and make sure it is on PATH")
		}
		span.RecordError(err)
		logger.Warn("git push exited",
			zap.String("remote", target.Remote),
			zap.Int("exit_code", execute.ExitCode(err)))
		return ship_err.WrapWithHint(
			ship_err.NewPushError("push to "+target.Remote+" failed: "+ship_err.ExtractSummary(output, 2), err),
			"Push manually with: git push "+target.Remote+" "+target.Ref.Short())
	}

	logger.Info("Push completed",
		zap.String("remote", target.Remote),
		zap.String("ref", target.Ref.String()))
	return nil
}
