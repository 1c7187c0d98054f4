package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "go-machinetalk"

// userStateDir returns $XDG_STATE_HOME, or $HOME/.local/state when unset,
// as the freedesktop base directory spec defines. Other systems fall back
// to os.UserConfigDir.
func userStateDir() (string, error) {
	switch runtime.GOOS {
	case "windows", "darwin", "ios", "plan9":
		return os.UserConfigDir()
	}

	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir, nil
	}

	home := os.Getenv("HOME")
	if home == "" {
		return "", errors.New("neither $XDG_STATE_HOME nor $HOME are defined")
	}

	return filepath.Join(home, ".local", "state"), nil
}

func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return "."
}

func defaultStateDir() string {
	if dir, err := userStateDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return defaultConfigDir()
}
