package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"anglecam/internal/photo"
	"anglecam/internal/sensor"
	"anglecam/internal/storage"
	"github.com/sirupsen/logrus"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// fakeCamera returns canned bytes and counts invocations. An optional
// gate channel lets a test hold a capture in flight.
type fakeCamera struct {
	mu    sync.Mutex
	raw   []byte
	err   error
	calls int
	gate  chan struct{}
}

func (f *fakeCamera) Available() bool { return true }

func (f *fakeCamera) Capture(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	return f.raw, f.err
}

func (f *fakeCamera) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	err   error
	added int
}

func (f *fakeNotifier) Add(file string, lat, lon float64, headingDeg int, takenAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.added++
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func readyStore() *sensor.Store {
	s := sensor.NewStore()
	s.SetFix(17.444756, 78.350030, time.Now())
	s.SetHeading(226.4, time.Now())
	return s
}

func allGranted() Permissions {
	return Permissions{Camera: true, Storage: true}
}

func TestCapture_HappyPath(t *testing.T) {
	dir := t.TempDir()
	cam := &fakeCamera{raw: testJPEG(t, 64, 48)}
	note := &fakeNotifier{}
	c := New(cam, readyStore(), dir, note, allGranted(), quietLogger())

	res, err := c.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	if !strings.HasPrefix(res.Filename, "Time_") || !strings.HasSuffix(res.Filename, "_Angle_226.jpg") {
		t.Errorf("filename = %q, want Time_..._Angle_226.jpg", res.Filename)
	}
	if !strings.Contains(res.Filename, "Location_17.444756_78.350030") {
		t.Errorf("filename %q missing coordinates", res.Filename)
	}

	data, err := os.ReadFile(filepath.Join(dir, res.Filename))
	if err != nil {
		t.Fatalf("written photo unreadable: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("written photo not an image: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("written photo = %dx%d, want square 48x48", b.Dx(), b.Dy())
	}

	if note.added != 1 {
		t.Errorf("catalog notified %d times, want 1", note.added)
	}
	if c.Busy() {
		t.Error("controller still busy after capture returned")
	}
}

func TestCapture_NoFixNeverTouchesCamera(t *testing.T) {
	cam := &fakeCamera{raw: testJPEG(t, 8, 8)}
	store := sensor.NewStore() // no fix ever
	c := New(cam, store, t.TempDir(), &fakeNotifier{}, allGranted(), quietLogger())

	_, err := c.Capture(context.Background())
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("err = %v, want ErrPreconditionFailed", err)
	}
	if cam.Calls() != 0 {
		t.Errorf("camera invoked %d times without a fix, want 0", cam.Calls())
	}
}

func TestCapture_MissingPermissionRefused(t *testing.T) {
	cases := []Permissions{
		{Camera: false, Storage: true},
		{Camera: true, Storage: false},
	}
	for _, perms := range cases {
		cam := &fakeCamera{raw: testJPEG(t, 8, 8)}
		c := New(cam, readyStore(), t.TempDir(), &fakeNotifier{}, perms, quietLogger())

		if _, err := c.Capture(context.Background()); !errors.Is(err, ErrPreconditionFailed) {
			t.Errorf("perms %+v: err = %v, want ErrPreconditionFailed", perms, err)
		}
		if cam.Calls() != 0 {
			t.Errorf("perms %+v: camera invoked before precondition check", perms)
		}
	}
}

func TestCapture_SecondTriggerDropped(t *testing.T) {
	dir := t.TempDir()
	gate := make(chan struct{})
	cam := &fakeCamera{raw: testJPEG(t, 16, 12), gate: gate}
	c := New(cam, readyStore(), dir, &fakeNotifier{}, allGranted(), quietLogger())

	firstDone := make(chan error, 1)
	go func() {
		_, err := c.Capture(context.Background())
		firstDone <- err
	}()

	// Wait until the first capture is inside the camera call.
	for i := 0; !c.Busy(); i++ {
		if i > 1000 {
			t.Fatal("first capture never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := c.Capture(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("second trigger err = %v, want ErrBusy", err)
	}

	close(gate)
	if err := <-firstDone; err != nil {
		t.Fatalf("first capture failed: %v", err)
	}

	if cam.Calls() != 1 {
		t.Errorf("camera invoked %d times, want 1", cam.Calls())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("%d files written, want 1", len(entries))
	}
}

func TestCapture_DeviceErrorAborts(t *testing.T) {
	dir := t.TempDir()
	cam := &fakeCamera{err: fmt.Errorf("shutter jammed")}
	c := New(cam, readyStore(), dir, &fakeNotifier{}, allGranted(), quietLogger())

	if _, err := c.Capture(context.Background()); err == nil {
		t.Fatal("capture succeeded with a failing camera")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("file written despite camera failure")
	}
	if c.Busy() {
		t.Error("controller stuck busy after failure")
	}
}

func TestCapture_UndecodableFrameAborts(t *testing.T) {
	dir := t.TempDir()
	cam := &fakeCamera{raw: []byte("not an image")}
	c := New(cam, readyStore(), dir, &fakeNotifier{}, allGranted(), quietLogger())

	_, err := c.Capture(context.Background())
	if !errors.Is(err, photo.ErrDecode) {
		t.Fatalf("err = %v, want photo.ErrDecode", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("file written despite decode failure")
	}
}

func TestCapture_WriteFailureLeavesNoFileAndSkipsCatalog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	cam := &fakeCamera{raw: testJPEG(t, 16, 16)}
	note := &fakeNotifier{}
	c := New(cam, readyStore(), dir, note, allGranted(), quietLogger())

	_, err := c.Capture(context.Background())
	if !errors.Is(err, storage.ErrWrite) {
		t.Fatalf("err = %v, want storage.ErrWrite", err)
	}
	if note.added != 0 {
		t.Error("catalog notified after a failed write")
	}
}

func TestCapture_CatalogFailureIsNonFatal(t *testing.T) {
	cam := &fakeCamera{raw: testJPEG(t, 16, 16)}
	note := &fakeNotifier{err: fmt.Errorf("index store offline")}
	c := New(cam, readyStore(), t.TempDir(), note, allGranted(), quietLogger())

	if _, err := c.Capture(context.Background()); err != nil {
		t.Fatalf("Capture: %v, want success despite catalog failure", err)
	}
}

func TestCapture_SnapshotTakenAfterShot(t *testing.T) {
	dir := t.TempDir()
	store := readyStore()
	gate := make(chan struct{})
	cam := &fakeCamera{raw: testJPEG(t, 16, 16), gate: gate}
	c := New(cam, store, dir, &fakeNotifier{}, allGranted(), quietLogger())

	done := make(chan Result, 1)
	go func() {
		res, err := c.Capture(context.Background())
		if err != nil {
			t.Error(err)
		}
		done <- res
	}()

	for i := 0; !c.Busy(); i++ {
		if i > 1000 {
			t.Fatal("capture never started")
		}
		time.Sleep(time.Millisecond)
	}

	// Sensors move while the shutter is open; the stamp must use the
	// post-shot values.
	store.SetHeading(90, time.Now())
	store.SetFix(-1.000001, 2.000002, time.Now())
	close(gate)

	res := <-done
	if res.Heading != 90 {
		t.Errorf("stamped heading = %d, want 90", res.Heading)
	}
	if !strings.Contains(res.Filename, "Location_-1.000001_2.000002") {
		t.Errorf("filename %q does not carry the post-shot fix", res.Filename)
	}
}
