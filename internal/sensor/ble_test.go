package sensor

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func capturingProvider() (*BLEProvider, *[]tea.Msg) {
	var msgs []tea.Msg
	p := &BLEProvider{}
	p.sender = func(msg tea.Msg) { msgs = append(msgs, msg) }
	p.running = true
	return p, &msgs
}

func TestHandleNotification_ForwardsReading(t *testing.T) {
	p, msgs := capturingProvider()
	at := time.Now()

	p.handleNotification(lnsPacket(lnsFlagLocation|lnsFlagHeading, locBytes(1.5, 2.5), headingBytes(90)), at)

	if len(*msgs) != 1 {
		t.Fatalf("%d messages sent, want 1", len(*msgs))
	}
	upd, ok := (*msgs)[0].(UpdateMsg)
	if !ok {
		t.Fatalf("message = %T, want UpdateMsg", (*msgs)[0])
	}
	if !upd.Reading.HasLocation || !upd.Reading.HasHeading {
		t.Errorf("reading missing fields: %+v", upd.Reading)
	}
	if !upd.At.Equal(at) {
		t.Errorf("At = %v, want %v", upd.At, at)
	}
}

func TestHandleNotification_MissingHeadingReportedOnce(t *testing.T) {
	p, msgs := capturingProvider()

	// Two heading-less packets: one degraded-compass report, two updates.
	p.handleNotification(lnsPacket(lnsFlagLocation, locBytes(1, 2)), time.Now())
	p.handleNotification(lnsPacket(lnsFlagLocation, locBytes(1, 2)), time.Now())

	var errCount, updCount int
	for _, msg := range *msgs {
		switch m := msg.(type) {
		case ErrorMsg:
			if !errors.Is(m.Err, ErrSensorUnavailable) {
				t.Errorf("error = %v, want ErrSensorUnavailable", m.Err)
			}
			errCount++
		case UpdateMsg:
			if m.Reading.HasHeading {
				t.Error("heading-less packet produced a heading")
			}
			updCount++
		}
	}
	if errCount != 1 {
		t.Errorf("compass report sent %d times, want 1", errCount)
	}
	if updCount != 2 {
		t.Errorf("%d updates sent, want 2; fixes must flow in degraded mode", updCount)
	}
}

func TestHandleNotification_HeadingPresentNoReport(t *testing.T) {
	p, msgs := capturingProvider()

	p.handleNotification(lnsPacket(lnsFlagLocation|lnsFlagHeading, locBytes(1, 2), headingBytes(45)), time.Now())

	for _, msg := range *msgs {
		if _, ok := msg.(ErrorMsg); ok {
			t.Errorf("spurious error message: %v", msg)
		}
	}
}

func TestHandleNotification_DropsMalformedPacket(t *testing.T) {
	p, msgs := capturingProvider()

	p.handleNotification([]byte{0x04}, time.Now()) // truncated flags

	if len(*msgs) != 0 {
		t.Errorf("%d messages from a malformed packet, want 0", len(*msgs))
	}
}
