// Package supervisor decides whether ship runs interactively or as the
// detached background push, and starts the background push.
package supervisor

import (
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
)

// Environment markers passed from the interactive run to its detached child.
const (
	EnvBackgroundPush = "SHIP_BACKGROUND_PUSH"
	EnvPushBranch     = "SHIP_PUSH_BRANCH"
	EnvPushRemote     = "SHIP_PUSH_REMOTE"
	EnvPushRunID      = "SHIP_PUSH_RUN_ID"
	EnvPushDir        = "SHIP_PUSH_DIR"
)

// Mode is the invocation mode of the current process.
type Mode int

const (
	Interactive Mode = iota
	BackgroundPush
)

func (m Mode) String() string {
	if m == BackgroundPush {
		return "background-push"
	}
	return "interactive"
}

// DetectMode reads the background-push marker through getenv.
func DetectMode(getenv func(string) string) Mode {
	switch strings.ToLower(strings.TrimSpace(getenv(EnvBackgroundPush))) {
	case "1", "true", "yes":
		return BackgroundPush
	default:
		return Interactive
	}
}

// CurrentMode is DetectMode over the process environment.
func CurrentMode() Mode {
	return DetectMode(os.Getenv)
}

// PushRequest is everything the background process needs to push one ref.
type PushRequest struct {
	RunID  string
	Branch string
	Remote string
	Dir    string
}

// Env renders the request as environment assignments, marker included.
func (r PushRequest) Env() []string {
	env := []string{
		EnvBackgroundPush + "=1",
		EnvPushBranch + "=" + r.Branch,
		EnvPushRunID + "=" + r.RunID,
		EnvPushDir + "=" + r.Dir,
	}
	if r.Remote != "" {
		env = append(env, EnvPushRemote+"="+r.Remote)
	}
	return env
}

// RequestFromEnv rebuilds the request a parent passed through Env.
func RequestFromEnv(getenv func(string) string) (PushRequest, error) {
	req := PushRequest{
		RunID:  strings.TrimSpace(getenv(EnvPushRunID)),
		Branch: strings.TrimSpace(getenv(EnvPushBranch)),
		Remote: strings.TrimSpace(getenv(EnvPushRemote)),
		Dir:    strings.TrimSpace(getenv(EnvPushDir)),
	}
	if req.Branch == "" {
		return PushRequest{}, ship_err.NewValidationError(EnvPushBranch+" is not set",
			"The background push is started by ship itself; run ship without "+EnvBackgroundPush)
	}
	if req.Dir == "" {
		req.Dir = "."
	}
	return req, nil
}

// withoutMarkers drops any inherited push markers so the child sees only
// the values of its own request.
func withoutMarkers(env []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		name, _, _ := strings.Cut(kv, "=")
		switch name {
		case EnvBackgroundPush, EnvPushBranch, EnvPushRemote, EnvPushRunID, EnvPushDir:
			continue
		}
		out = append(out, kv)
	}
	return out
}
