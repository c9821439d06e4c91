package config

import (
	"os"
	"path/filepath"
)

const (
	// ReposyncHomeEnv is the environment variable for the reposync home directory.
	ReposyncHomeEnv = "REPOSYNC_HOME"
	// DefaultReposyncDir is the default directory name under user home.
	DefaultReposyncDir = ".reposync"
	// LogsSubdir is the subdirectory for rotating log files.
	LogsSubdir = "logs"
)

// ReposyncHome returns the reposync home directory.
// It checks REPOSYNC_HOME first, then defaults to ~/.reposync.
func ReposyncHome() (string, error) {
	if home := os.Getenv(ReposyncHomeEnv); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultReposyncDir), nil
}

// LogsDir returns the log directory (~/.reposync/logs).
func LogsDir() (string, error) {
	home, err := ReposyncHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LogsSubdir), nil
}
