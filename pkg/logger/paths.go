/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/xdg"
)

const appID = xdg.App

// PlatformLogPaths returns candidate log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	var paths []string
	if env := os.Getenv("SHIP_LOG_FILE"); env != "" {
		paths = append(paths, env)
	}

	switch runtime.GOOS {
	case "windows":
		paths = append(paths, filepath.Join(os.Getenv("LOCALAPPDATA"), appID, "ship.log"))
	default:
		paths = append(paths, xdg.StatePath("ship.log"))
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+appID, "ship.log"))
		}
	}

	return append(paths, filepath.Join(os.TempDir(), appID, "ship.log"))
}
