package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"anglecam/internal/capture"
	"anglecam/internal/config"
	"anglecam/internal/photo"
	"anglecam/internal/sensor"
	"anglecam/internal/storage"
	"anglecam/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// notice is a transient on-screen message.
type notice struct {
	text    string
	expires time.Time
}

// shared holds state shared between the Bubble Tea model copies and
// main.go. Because Bubble Tea uses value receivers, pointer fields
// ensure all copies see the same underlying data.
type shared struct {
	store      *sensor.Store
	controller *capture.Controller
	catalog    *storage.Catalog
	provider   sensor.Provider
	log        *logrus.Logger
}

// AppModel is the root Bubble Tea model for AngleCam.
type AppModel struct {
	width  int
	height int

	demoMode bool
	source   string

	// Display-only smoothed bearing for the compass rose; the capture
	// pipeline always stamps the raw latest heading.
	smoothed    float64
	smoothedSet bool

	lastPhoto string
	photos    int
	notices   []notice

	shared *shared
}

// New creates a new AppModel around an assembled capture pipeline.
func New(demoMode bool, store *sensor.Store, controller *capture.Controller, catalog *storage.Catalog, provider sensor.Provider, log *logrus.Logger) AppModel {
	return AppModel{
		demoMode: demoMode,
		source:   "searching...",
		photos:   catalog.Count(),
		shared: &shared{
			store:      store,
			controller: controller,
			catalog:    catalog,
			provider:   provider,
			log:        log,
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.notices = pruneNotices(m.notices, time.Time(msg))
		return m, tickCmd()

	case sensor.UpdateMsg:
		m.applyReading(msg)
		return m, nil

	case sensor.ConnectedMsg:
		m.source = msg.Source
		m.shared.log.WithField("source", msg.Source).Info("sensor source connected")
		return m, nil

	case sensor.ErrorMsg:
		m.shared.log.WithError(msg.Err).Warn("sensor provider error")
		m = m.pushNotice(msg.Err.Error())
		return m, nil

	case CaptureDoneMsg:
		m.lastPhoto = msg.Result.Filename
		m.photos++
		return m, nil

	case CaptureFailedMsg:
		// A trigger during a running capture is dropped silently by
		// design; everything else surfaces as a transient notice.
		if !errors.Is(msg.Err, capture.ErrBusy) {
			m = m.pushNotice(msg.Err.Error())
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.shared.provider.Stop()
		return m, tea.Quit

	case "c", "C", " ", "enter":
		return m, m.captureCmd()
	}

	return m, nil
}

// applyReading feeds a decoded sensor reading into the store and the
// display smoothing.
func (m *AppModel) applyReading(msg sensor.UpdateMsg) {
	if msg.Reading.HasLocation {
		m.shared.store.SetFix(msg.Reading.Latitude, msg.Reading.Longitude, msg.At)
	}
	if msg.Reading.HasHeading {
		m.shared.store.SetHeading(msg.Reading.Heading, msg.At)

		if !m.smoothedSet {
			m.smoothed = msg.Reading.Heading
			m.smoothedSet = true
			return
		}
		// EMA across the 0/360 seam
		delta := msg.Reading.Heading - m.smoothed
		for delta > 180 {
			delta -= 360
		}
		for delta < -180 {
			delta += 360
		}
		m.smoothed = math.Mod(m.smoothed+delta*config.HeadingSmoothing+360, 360)
	}
}

func (m AppModel) pushNotice(text string) AppModel {
	m.notices = append(m.notices, notice{
		text:    text,
		expires: time.Now().Add(config.NoticeTime),
	})
	// keep the panel short
	if len(m.notices) > 3 {
		m.notices = m.notices[len(m.notices)-3:]
	}
	return m
}

func pruneNotices(ns []notice, now time.Time) []notice {
	kept := ns[:0]
	for _, n := range ns {
		if n.expires.After(now) {
			kept = append(kept, n)
		}
	}
	return kept
}

func (m AppModel) captureCmd() tea.Cmd {
	ctrl := m.shared.controller
	return func() tea.Msg {
		res, err := ctrl.Capture(context.Background())
		if err != nil {
			return CaptureFailedMsg{Err: err}
		}
		return CaptureDoneMsg{Result: res}
	}
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing AngleCam..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 7 {
		bodyH = 7
	}

	compassW := m.width * 3 / 5
	if compassW < 24 {
		compassW = 24
	}
	infoW := m.width - compassW
	if infoW < 24 {
		infoW = 24
		compassW = m.width - infoW
	}

	snap := m.shared.store.Latest()
	capturing := m.shared.controller.Busy()

	deg := photo.FormatHeading(snap.Heading)
	card := photo.Cardinal(snap.Heading)

	menuBar := ui.RenderMenuBar(m.width, m.source, capturing, m.demoMode)
	compassPanel := ui.RenderCompassPanel(compassW, bodyH, deg, card, snap.HasHeading, m.smoothed)
	infoPanel := ui.RenderInfoPanel(infoW, bodyH, snap, m.source, m.lastPhoto, m.photos, noticeTexts(m.notices))

	state := "READY"
	switch {
	case capturing:
		state = "CAPTURING"
	case !snap.HasFix:
		state = "NO FIX"
	}
	statusBar := ui.RenderStatusBar(m.width, state, deg, card, snap.HasHeading, snap.HasFix,
		snap.Latitude, snap.Longitude, m.photos)

	return ui.ComposeLayout(menuBar, compassPanel, infoPanel, statusBar, m.width)
}

func noticeTexts(ns []notice) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.text)
	}
	return out
}

// StartSensors launches the configured provider. Must be called before
// p.Run() so updates have somewhere to land.
func (m *AppModel) StartSensors(p *tea.Program) error {
	if err := m.shared.provider.Start(p); err != nil {
		return fmt.Errorf("start sensor provider: %w", err)
	}
	return nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
