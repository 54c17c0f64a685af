// Package storage persists board snapshots and analysis statistics in BadgerDB.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "chesscore"
	dbName  = "db"

	// homeEnv names a directory that replaces the platform data directory.
	homeEnv = "CHESSCORE_HOME"
)

// GetDataDir returns the directory chesscore keeps its files in, creating it
// if needed. $CHESSCORE_HOME wins; otherwise the platform's per-user data
// location is used.
func GetDataDir() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return ensureDir(dir)
	}

	base, err := userDataBase(runtime.GOOS)
	if err != nil {
		return "", fmt.Errorf("locate data directory: %w", err)
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the BadgerDB directory inside the data directory.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, dbName))
}

// userDataBase returns the per-user application data root for goos:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME (or ~/.local/share) elsewhere.
func userDataBase(goos string) (string, error) {
	var env string
	var fallback []string

	switch goos {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}
