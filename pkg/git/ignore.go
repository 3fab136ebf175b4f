package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/xdg"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// userExcludes collects the ignore rules that live outside the working
// tree: /etc/gitconfig's core.excludesfile, ~/.gitconfig's
// core.excludesfile and $XDG_CONFIG_HOME/git/ignore. The XDG file is read
// even when core.excludesfile is set, so a rule in either place is honoured.
// Unreadable sources are logged and skipped.
func userExcludes(ctx context.Context) []gitignore.Pattern {
	logger := otelzap.Ctx(ctx)
	fs := osfs.New("")

	var patterns []gitignore.Pattern
	system, err := gitignore.LoadSystemPatterns(fs)
	if err != nil {
		logger.Debug("System excludes unreadable", zap.Error(err))
	}
	patterns = append(patterns, system...)

	global, err := gitignore.LoadGlobalPatterns(fs)
	if err != nil {
		logger.Debug("Global excludes unreadable", zap.Error(err))
	}
	patterns = append(patterns, global...)

	path := filepath.Join(xdg.ConfigHome(), "git", "ignore")
	defaults, err := readIgnoreFile(fs, path)
	if err != nil && !os.IsNotExist(err) {
		logger.Debug("Default excludes unreadable", zap.String("path", path), zap.Error(err))
	}
	patterns = append(patterns, defaults...)

	logger.Debug("Loaded user excludes",
		zap.Int("system", len(system)),
		zap.Int("global", len(global)),
		zap.Int("default", len(defaults)))
	return patterns
}

// readIgnoreFile parses a gitignore-format file whose patterns apply from
// the top of the working tree.
func readIgnoreFile(fs billy.Filesystem, path string) ([]gitignore.Pattern, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var ps []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, nil))
	}
	return ps, nil
}
