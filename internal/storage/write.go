package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"anglecam/internal/config"
)

// WritePhoto writes data to dir/name all-or-nothing: bytes land in a
// temp file first and the target appears only via rename. Returns the
// full path of the written file.
func WritePhoto(dir, name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, ".capture-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := os.Chmod(tmpName, config.FilePerms); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	target := filepath.Join(dir, name)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return target, nil
}
