package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Demo {
		t.Error("demo enabled by default")
	}
	if s.Camera.Command != "fswebcam" {
		t.Errorf("camera command = %q, want fswebcam", s.Camera.Command)
	}
	if s.Camera.Width != 1280 || s.Camera.Height != 720 {
		t.Errorf("resolution = %dx%d, want 1280x720", s.Camera.Width, s.Camera.Height)
	}
}

func TestLoadSettings_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
demo: true
camera:
  command: libcamera-still
  device: /dev/video2
storage:
  pictures_dir: /mnt/photos
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	if !s.Demo {
		t.Error("demo = false, want true")
	}
	if s.Camera.Command != "libcamera-still" {
		t.Errorf("camera command = %q, want libcamera-still", s.Camera.Command)
	}
	if s.Camera.Device != "/dev/video2" {
		t.Errorf("camera device = %q, want /dev/video2", s.Camera.Device)
	}
	if s.Storage.PicturesDir != "/mnt/photos" {
		t.Errorf("pictures dir = %q, want /mnt/photos", s.Storage.PicturesDir)
	}
	// untouched fields keep their defaults
	if s.Camera.Width != 1280 || s.Camera.Height != 720 {
		t.Errorf("resolution = %dx%d, want default 1280x720", s.Camera.Width, s.Camera.Height)
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadSettings on a missing file succeeded")
	}
}

func TestLoadSettings_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("camera: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("LoadSettings on bad yaml succeeded")
	}
}
