package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CameraSettings selects and parameterizes the capture device.
type CameraSettings struct {
	Command string `yaml:"command"` // stills program, e.g. "fswebcam"
	Device  string `yaml:"device"`  // device path passed to the command
	Width   int    `yaml:"width"`   // requested sensor resolution
	Height  int    `yaml:"height"`
}

// SensorSettings selects the heading/fix source.
type SensorSettings struct {
	Peripheral string `yaml:"peripheral"` // optional MAC of the GNSS peripheral
}

// StorageSettings controls where photos land.
type StorageSettings struct {
	PicturesDir string `yaml:"pictures_dir"` // primary photo location
}

// Settings is the top-level structure of the optional settings.yaml.
// Every field has a working default; the file may be absent entirely.
type Settings struct {
	Demo    bool            `yaml:"demo"`
	Camera  CameraSettings  `yaml:"camera"`
	Sensors SensorSettings  `yaml:"sensors"`
	Storage StorageSettings `yaml:"storage"`
	LogFile string          `yaml:"log_file"`
}

// DefaultSettings returns the baseline configuration used when no
// settings file is given.
func DefaultSettings() *Settings {
	return &Settings{
		Camera: CameraSettings{
			Command: "fswebcam",
			Device:  "/dev/video0",
			Width:   1280,
			Height:  720,
		},
	}
}

// LoadSettings reads and parses a settings.yaml, layered over defaults.
func LoadSettings(path string) (*Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return cfg, nil
}
