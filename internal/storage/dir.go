// Package storage owns the photo directory, durable file writes and the
// media catalog that makes captures discoverable by other tools.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"anglecam/internal/config"
)

// ErrWrite reports a failed filesystem write. No partial target file is
// ever left behind.
var ErrWrite = errors.New("storage: write failed")

// DefaultPicturesDir returns the platform picture directory for the
// current user.
func DefaultPicturesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures")
}

// appDataDir is the application-private fallback location.
func appDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "."
		}
		base = home
	}
	return filepath.Join(base, strings.ToLower(config.AppName))
}

// Resolve picks the AnglePhotos directory: the given pictures directory
// when it can be created and written, otherwise the application-private
// data directory. The chosen directory exists on return.
func Resolve(picturesDir string) (string, error) {
	if picturesDir == "" {
		picturesDir = DefaultPicturesDir()
	}

	primary := filepath.Join(picturesDir, config.PhotoSubdir)
	if writable(primary) {
		return primary, nil
	}

	fallback := filepath.Join(appDataDir(), config.PhotoSubdir)
	if writable(fallback) {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: neither %s nor %s is writable", ErrWrite, primary, fallback)
}

// writable ensures dir exists and probes it with a throwaway file.
func writable(dir string) bool {
	if err := os.MkdirAll(dir, config.DirPerms); err != nil {
		return false
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true
}
