// pkg/ship_err/wrap.go

package ship_err

import (
	cerr "github.com/cockroachdb/errors"
)

// WrapWithHint attaches a stack and a user-facing hint to err.
// Wrapping nil returns nil.
func WrapWithHint(err error, hint string) error {
	return cerr.WithHint(cerr.WithStack(err), hint)
}

// Hints returns the hints attached anywhere in err's chain.
func Hints(err error) []string {
	return cerr.GetAllHints(err)
}
