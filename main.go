package main

import (
	"fmt"
	"os"
	"path/filepath"

	"anglecam/internal/app"
	"anglecam/internal/camera"
	"anglecam/internal/capture"
	"anglecam/internal/config"
	"anglecam/internal/logging"
	"anglecam/internal/sensor"
	"anglecam/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagDemo        bool
	flagConfig      string
	flagPicturesDir string
	flagCameraCmd   string
	flagDevice      string
	flagPeripheral  string
	flagLogFile     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "anglecam",
		Short: "AngleCam - terminal capture station for angle-stamped square photos",
		Long: `AngleCam samples a compass heading and GPS fix from a BLE GNSS
peripheral, shows a live compass, and on a keypress captures a photo,
center-crops it square and stamps time, coordinates and bearing into
the filename under an AnglePhotos directory.

Real captures need a webcam stills program (fswebcam by default) and a
peripheral implementing the Bluetooth Location and Navigation service.
Use --demo for simulated sensors and synthetic frames.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run with simulated sensors and a synthetic camera")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Optional settings.yaml path")
	rootCmd.Flags().StringVar(&flagPicturesDir, "pictures-dir", "", "Pictures directory (default: ~/Pictures)")
	rootCmd.Flags().StringVar(&flagCameraCmd, "camera-cmd", "", "Stills program to shell out to")
	rootCmd.Flags().StringVar(&flagDevice, "device", "", "Camera device path")
	rootCmd.Flags().StringVar(&flagPeripheral, "peripheral", "", "MAC of the GNSS peripheral (default: first match)")
	rootCmd.Flags().StringVar(&flagLogFile, "log", "", "Log file path (default: app data dir)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logPath := settings.LogFile
	if logPath == "" {
		if base, err := os.UserConfigDir(); err == nil {
			logPath = filepath.Join(base, "anglecam", "anglecam.log")
		}
	}
	log := logging.Init(logPath)
	log.WithField("version", config.AppVersion).Info("anglecam starting")

	dir, err := storage.Resolve(settings.Storage.PicturesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: no writable photo directory: %v\n", err)
		return err
	}
	log.WithField("dir", dir).Info("photo directory resolved")

	var cam camera.Camera
	var provider sensor.Provider
	if settings.Demo {
		cam = camera.NewMockCamera(settings.Camera.Width, settings.Camera.Height)
		provider = sensor.NewMockProvider()
	} else {
		cam = camera.NewExecCamera(settings.Camera.Command, settings.Camera.Device,
			settings.Camera.Width, settings.Camera.Height)
		provider = sensor.NewBLEProvider(settings.Sensors.Peripheral)
	}

	perms := capture.Permissions{
		Camera:  cam.Available(),
		Storage: true, // Resolve already probed writability
	}
	if !perms.Camera {
		fmt.Fprintf(os.Stderr, "\nWarning: stills program %q not found; captures will be refused.\n", settings.Camera.Command)
		fmt.Fprintln(os.Stderr, "Install it or run with --demo.")
	}

	store := sensor.NewStore()
	catalog := storage.NewCatalog(dir)
	controller := capture.New(cam, store, dir, catalog, perms, log)

	model := app.New(settings.Demo, store, controller, catalog, provider, log)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	if err := model.StartSensors(p); err != nil {
		if !settings.Demo {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "BLE scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./anglecam")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./anglecam")
			fmt.Fprintln(os.Stderr, "  ./anglecam --demo    (demo mode, no hardware needed)")
			return err
		}
	}

	_, err = p.Run()
	return err
}

// loadSettings layers flags over the optional settings file over defaults.
func loadSettings() (*config.Settings, error) {
	settings := config.DefaultSettings()
	if flagConfig != "" {
		loaded, err := config.LoadSettings(flagConfig)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if flagDemo {
		settings.Demo = true
	}
	if flagPicturesDir != "" {
		settings.Storage.PicturesDir = flagPicturesDir
	}
	if flagCameraCmd != "" {
		settings.Camera.Command = flagCameraCmd
	}
	if flagDevice != "" {
		settings.Camera.Device = flagDevice
	}
	if flagPeripheral != "" {
		settings.Sensors.Peripheral = flagPeripheral
	}
	if flagLogFile != "" {
		settings.LogFile = flagLogFile
	}
	return settings, nil
}
