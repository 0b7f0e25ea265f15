package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If SOCKBOT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.sockbot/logs/sockbot.log
func GetLogFilePath() string {
	if customPath := os.Getenv("SOCKBOT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "sockbot.log"
	}

	return filepath.Join(homeDir, ".sockbot", "logs", "sockbot.log")
}
