// pkg/logger/writer.go

package logger

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/xdg"
	"go.uber.org/zap/zapcore"
)

// GetLogFileWriter opens path for appending, creating its directory first.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	file, err := xdg.OpenAppend(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.AddSync(file), nil
}

// FindWritableLogPath returns the first usable log path.
func FindWritableLogPath() (string, error) {
	for _, path := range PlatformLogPaths() {
		file, err := xdg.OpenAppend(path)
		if err != nil {
			continue
		}
		_ = file.Close()
		return path, nil
	}
	return "", fmt.Errorf("no writable log path found")
}
