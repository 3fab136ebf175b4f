/*
main.go

ship stages, commits and pushes the current repository in one step.
*/
package main

import (
	"github.com/CodeMonkeyCybersecurity/ship/cmd"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/logger"
)

func main() {
	// Replaced by the mode-specific logger once configuration is loaded.
	logger.InitFallback()

	cmd.Execute()
}
