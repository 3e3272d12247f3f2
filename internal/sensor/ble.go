package sensor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"tinygo.org/x/bluetooth"
)

// BLEProvider sources heading and fix data from a GNSS peripheral that
// implements the Bluetooth Location and Navigation service. It scans for
// the first matching peripheral (or a configured MAC), subscribes to
// Location and Speed notifications, and pushes decoded readings into the
// UI event loop via program.Send.
type BLEProvider struct {
	adapter    *bluetooth.Adapter
	sender     func(tea.Msg)
	peripheral string // optional MAC filter, empty means first match
	running    bool
	device     bluetooth.Device
	connected  bool
	noCompass  bool // peripheral already reported without a heading bit
}

// NewBLEProvider creates a provider on the default adapter.
func NewBLEProvider(peripheral string) *BLEProvider {
	return &BLEProvider{
		adapter:    bluetooth.DefaultAdapter,
		peripheral: strings.ToUpper(peripheral),
	}
}

// Start enables the adapter and begins scanning in a goroutine.
// Decoded readings arrive as UpdateMsg via program.Send().
func (p *BLEProvider) Start(prog *tea.Program) error {
	p.sender = prog.Send

	if err := p.adapter.Enable(); err != nil {
		return fmt.Errorf("enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	p.running = true
	go p.scan()
	return nil
}

func (p *BLEProvider) scan() {
	err := p.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if !p.running {
			return
		}
		if !result.HasServiceUUID(bluetooth.ServiceUUIDLocationAndNavigation) {
			return
		}
		if p.peripheral != "" && strings.ToUpper(result.Address.String()) != p.peripheral {
			return
		}

		_ = adapter.StopScan()
		p.connect(result)
	})
	if err != nil && p.running {
		p.send(ErrorMsg{Err: fmt.Errorf("%w: scan failed: %v", ErrLocationUnavailable, err)})
	}
}

func (p *BLEProvider) connect(result bluetooth.ScanResult) {
	dev, err := p.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		p.send(ErrorMsg{Err: fmt.Errorf("%w: connect %s: %v", ErrLocationUnavailable, result.Address, err)})
		return
	}
	p.device = dev
	p.connected = true

	srvs, err := dev.DiscoverServices([]bluetooth.UUID{bluetooth.ServiceUUIDLocationAndNavigation})
	if err != nil || len(srvs) == 0 {
		p.send(ErrorMsg{Err: fmt.Errorf("%w: discover services: %v", ErrLocationUnavailable, err)})
		return
	}

	chars, err := srvs[0].DiscoverCharacteristics([]bluetooth.UUID{bluetooth.CharacteristicUUIDLocationAndSpeed})
	if err != nil || len(chars) == 0 {
		p.send(ErrorMsg{Err: fmt.Errorf("%w: discover characteristics: %v", ErrLocationUnavailable, err)})
		return
	}

	err = chars[0].EnableNotifications(func(buf []byte) {
		if !p.running {
			return
		}
		p.handleNotification(buf, time.Now())
	})
	if err != nil {
		p.send(ErrorMsg{Err: fmt.Errorf("%w: enable notifications: %v", ErrLocationUnavailable, err)})
		return
	}

	name := result.LocalName()
	if name == "" {
		name = result.Address.String()
	}
	p.send(ConnectedMsg{Source: name})
}

// handleNotification decodes one Location and Speed packet. A peripheral
// whose readings omit the heading bit has no compass: that degrades the
// heading, reported once, and captures continue with last-known values.
func (p *BLEProvider) handleNotification(buf []byte, at time.Time) {
	r, err := decodeLocationAndSpeed(buf)
	if err != nil {
		return // malformed packet, wait for the next one
	}

	if !r.HasHeading && !p.noCompass {
		p.noCompass = true
		p.send(ErrorMsg{Err: fmt.Errorf("%w: peripheral reports no heading", ErrSensorUnavailable)})
	}

	p.send(UpdateMsg{Reading: r, At: at})
}

func (p *BLEProvider) send(msg tea.Msg) {
	if p.sender != nil {
		p.sender(msg)
	}
}

// Stop halts scanning and disconnects the peripheral.
func (p *BLEProvider) Stop() {
	p.running = false
	_ = p.adapter.StopScan()
	if p.connected {
		_ = p.device.Disconnect()
	}
}
