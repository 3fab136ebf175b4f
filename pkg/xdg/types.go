// pkg/xdg/types.go

package xdg

const (
	// App is the directory name used under every base directory.
	App = "ship"

	DirPermPrivate  = 0700
	FilePermPrivate = 0600
)
