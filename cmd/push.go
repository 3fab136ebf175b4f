/* cmd/push.go */

package cmd

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/git"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_io"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/supervisor"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// runBackgroundPush is the whole life of the detached child: push one ref
// and log the outcome to the push log. Nothing is reported to the terminal
// that started it.
func runBackgroundPush(rc *ship_io.RuntimeContext, cfg *config.Config, getenv func(string) string) error {
	log := rc.Log

	req, err := supervisor.RequestFromEnv(getenv)
	if err != nil {
		return err
	}
	rc.Attributes["run_id"] = req.RunID
	log.Info("Background push starting",
		zap.String("run_id", req.RunID),
		zap.String("branch", req.Branch),
		zap.String("dir", req.Dir))

	repo, err := git.Open(rc.Ctx, req.Dir)
	if err != nil {
		return err
	}

	remote := req.Remote
	if remote == "" && cfg != nil {
		remote = cfg.Remote
	}
	target, err := repo.ResolvePushTarget(plumbing.ReferenceName(req.Branch), remote)
	if err != nil {
		return err
	}

	if err := git.Push(rc.Ctx, target, os.Stdout); err != nil {
		log.Error("Background push failed",
			zap.String("run_id", req.RunID),
			zap.String("remote", target.Remote),
			zap.Strings("hints", ship_err.Hints(err)),
			zap.Error(err))
		return err
	}

	log.Info("Background push finished",
		zap.String("run_id", req.RunID),
		zap.String("remote", target.Remote),
		zap.String("ref", target.Ref.String()))
	return nil
}
