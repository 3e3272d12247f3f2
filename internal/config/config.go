package config

import "time"

const (
	// Capture output
	PhotoSubdir = "AnglePhotos"   // subfolder created under the pictures directory
	CatalogFile = ".catalog.json" // media catalog kept next to the photos
	JPEGQuality = 100             // maximum quality, crop must not visibly degrade pixels
	DirPerms    = 0755
	FilePerms   = 0644

	// Sensors
	HeadingSmoothing = 0.25             // EMA factor for the displayed heading (25% new)
	FixStaleAfter    = 10 * time.Second // fix age shown as stale in the UI past this

	// Demo mode
	MockUpdateInterval = 200 * time.Millisecond
	MockStartLat       = 17.444756 // simulated walk starts here
	MockStartLon       = 78.350030

	// Display
	TargetFPS  = 30              // Target frames per second
	NoticeTime = 4 * time.Second // how long transient notices stay on screen

	// App
	AppName    = "ANGLECAM"
	AppVersion = "1.0"
)
