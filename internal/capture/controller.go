// Package capture orchestrates one photo pipeline: device shot, sensor
// snapshot, square crop, canonical filename, durable write, catalog
// notification.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"anglecam/internal/camera"
	"anglecam/internal/photo"
	"anglecam/internal/sensor"
	"anglecam/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBusy rejects a trigger that arrives while a capture is already
	// running. Triggers are dropped, never queued.
	ErrBusy = errors.New("capture: already in progress")

	// ErrPreconditionFailed rejects a trigger before any device I/O:
	// a permission is missing or no location fix has ever arrived.
	ErrPreconditionFailed = errors.New("capture: preconditions not met")
)

// Permissions records the per-category grants probed at startup.
type Permissions struct {
	Camera  bool // capture device usable
	Storage bool // photo directory writable
}

// Notifier makes a written photo discoverable; failures are logged and
// swallowed because the file itself is the source of truth.
type Notifier interface {
	Add(file string, lat, lon float64, headingDeg int, takenAt time.Time) error
}

// Result describes one successful capture.
type Result struct {
	Filename string
	Path     string
	Snapshot sensor.Snapshot
	Heading  int // whole degrees as stamped in the filename
}

// Controller runs at most one capture pipeline at a time.
type Controller struct {
	cam     camera.Camera
	sensors *sensor.Store
	dir     string
	notify  Notifier
	perms   Permissions
	log     *logrus.Logger

	capturing atomic.Bool
}

// New wires a controller. dir must already exist (storage.Resolve).
func New(cam camera.Camera, sensors *sensor.Store, dir string, notify Notifier, perms Permissions, log *logrus.Logger) *Controller {
	return &Controller{
		cam:     cam,
		sensors: sensors,
		dir:     dir,
		notify:  notify,
		perms:   perms,
		log:     log,
	}
}

// Busy reports whether a capture pipeline is currently running.
func (c *Controller) Busy() bool {
	return c.capturing.Load()
}

// Capture runs one pipeline and returns the produced filename. A second
// trigger while running gets ErrBusy. Preconditions are checked before
// the camera is touched: with no fix ever obtained the device is never
// invoked.
func (c *Controller) Capture(ctx context.Context) (Result, error) {
	if !c.capturing.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer c.capturing.Store(false)

	if !c.perms.Camera {
		return Result{}, fmt.Errorf("%w: camera permission not granted", ErrPreconditionFailed)
	}
	if !c.perms.Storage {
		return Result{}, fmt.Errorf("%w: storage not writable", ErrPreconditionFailed)
	}
	if !c.sensors.HasFix() {
		return Result{}, fmt.Errorf("%w: no location fix yet", ErrPreconditionFailed)
	}

	raw, err := c.cam.Capture(ctx)
	if err != nil {
		c.log.WithError(err).Error("camera capture failed")
		return Result{}, err
	}

	// Snapshot after the shot succeeds, to minimize staleness between
	// the pixels and the stamped heading/fix.
	snap := c.sensors.Latest()
	now := time.Now()

	square, err := photo.Square(raw)
	if err != nil {
		c.log.WithError(err).Error("square crop failed")
		return Result{}, err
	}

	name := photo.Filename(now, snap.Latitude, snap.Longitude, snap.Heading)
	path, err := storage.WritePhoto(c.dir, name, square)
	if err != nil {
		c.log.WithError(err).WithField("file", name).Error("photo write failed")
		return Result{}, err
	}

	deg := photo.FormatHeading(snap.Heading)
	if c.notify != nil {
		if err := c.notify.Add(name, snap.Latitude, snap.Longitude, deg, now); err != nil {
			c.log.WithError(err).Warn("media catalog update failed, photo is still on disk")
		}
	}

	c.log.WithFields(logrus.Fields{
		"file":    name,
		"lat":     snap.Latitude,
		"lon":     snap.Longitude,
		"heading": deg,
	}).Info("photo captured")

	return Result{
		Filename: name,
		Path:     path,
		Snapshot: snap,
		Heading:  deg,
	}, nil
}
