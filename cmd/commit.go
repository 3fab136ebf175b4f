/* cmd/commit.go */

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/git"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/git/commit"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/output"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_io"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/supervisor"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// pushLogName is created inside the git directory unless configured.
const pushLogName = "ship-push.log"

type prompter interface {
	PromptLine(ctx context.Context, label string) (string, error)
}

type spawnFunc func(ctx context.Context, opts supervisor.SpawnOptions) (supervisor.Spawned, error)

// pipeline is the interactive run: stage, show, ask, commit, hand off push.
type pipeline struct {
	cfg     *config.Config
	dir     string
	prompt  prompter
	out     *output.Printer
	spawn   spawnFunc
	gitOpts []git.Option
}

func newPipeline(cfg *config.Config) *pipeline {
	return &pipeline{
		cfg:    cfg,
		dir:    ".",
		prompt: interaction.Stdio(),
		out:    output.Stdout(),
		spawn:  supervisor.Spawn,
	}
}

func (p *pipeline) run(rc *ship_io.RuntimeContext) error {
	ctx := rc.Ctx
	log := rc.Log

	repo, err := git.Open(ctx, p.dir, p.gitOpts...)
	if err != nil {
		return err
	}

	changes, err := repo.StageChanges(ctx)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return p.nothingToCommit(rc, repo)
	}

	tree, err := repo.WriteTree(ctx)
	if err != nil {
		return err
	}
	parent, err := repo.ResolveParent(ctx)
	if err != nil {
		return err
	}
	// A path added to the index and then removed from disk is reported but
	// leaves the tree as it was.
	if git.Unchanged(parent, tree) {
		log.Debug("Staged tree matches parent", zap.Int("changes", len(changes)))
		return p.nothingToCommit(rc, repo)
	}
	p.out.Changes(changes)

	stats, err := repo.DiffStats(ctx, parent, tree)
	if err != nil {
		return err
	}
	p.out.Summary(len(changes), stats)

	message, err := p.message(ctx, changes, stats)
	if err != nil {
		return err
	}

	res, err := repo.CommitTree(ctx, tree, parent, message)
	if err != nil {
		return err
	}
	rc.Attributes["commit"] = res.Hash.String()
	p.out.Success("Committed %s on %s", shortHash(res.Hash), res.Parent.Ref().Short())

	p.handOffPush(rc, repo, res)
	return nil
}

// nothingToCommit ends the run early. The index stays as staged.
func (p *pipeline) nothingToCommit(rc *ship_io.RuntimeContext, repo *git.Repository) error {
	p.out.Notice("No changes to commit.")
	rc.Log.Info("Nothing to commit", zap.String("repository", repo.Root()))
	return ship_err.NewExpectedError(git.ErrNothingToCommit)
}

// message returns the configured message, else asks for one. An empty answer
// is replaced by a generated summary; end of input cancels the commit.
func (p *pipeline) message(ctx context.Context, changes []git.Change, stats git.Stats) (string, error) {
	if p.cfg.Message != "" {
		return p.cfg.Message, nil
	}

	answer, err := p.prompt.PromptLine(ctx, "Commit message")
	if errors.Is(err, interaction.ErrCancelled) {
		p.out.Warn("Commit cancelled. Changes remain staged.")
		return "", ship_err.NewUserCancelledError("commit")
	}
	if err != nil {
		return "", cerr.Wrap(err, "read commit message")
	}

	if answer == "" {
		answer = commit.DefaultMessage(changes, stats)
		p.out.Notice("Using generated message: %s", commit.BuildTitle(changes, stats))
	}
	return answer, nil
}

// handOffPush starts the background push for a committed branch. The commit
// already exists, so every problem here is a warning, not a failure.
func (p *pipeline) handOffPush(rc *ship_io.RuntimeContext, repo *git.Repository, res *git.CommitResult) {
	log := rc.Log

	if !p.cfg.Push {
		p.out.Notice("Push disabled; run git push when ready.")
		return
	}
	if git.IsDetached(res.Parent) {
		p.out.Warn("HEAD is detached; not pushing.")
		log.Warn("Skipping push for detached HEAD", zap.String("commit", res.Hash.String()))
		return
	}

	target, err := repo.ResolvePushTarget(res.Parent.Ref(), p.cfg.Remote)
	if err != nil {
		p.out.Warn("Not pushing: %v", err)
		log.Warn("Push target unavailable", zap.Error(err))
		return
	}

	logPath := p.cfg.PushLog
	if logPath == "" {
		logPath = filepath.Join(repo.GitDir(), pushLogName)
	}

	spawned, err := p.spawn(rc.Ctx, supervisor.SpawnOptions{
		Request: supervisor.PushRequest{
			RunID:  uuid.NewString(),
			Branch: target.Ref.String(),
			Remote: target.Remote,
			Dir:    target.Dir,
		},
		LogPath: logPath,
		Env:     pushEnv(),
	})
	if err != nil {
		p.out.Warn("Could not start background push: %v", err)
		log.Warn("Background push not started", zap.Error(err))
		return
	}

	rc.Attributes["push_run_id"] = spawned.RunID
	p.out.Notice("Pushing %s to %s in the background (log: %s)", target.Ref.Short(), target.Remote, spawned.LogPath)
}

// pushEnv is the child's base environment. The child must never prompt.
func pushEnv() []string {
	return append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
}
