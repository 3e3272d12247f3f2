package sensor

import (
	"context"
	"math"
	"math/rand"
	"time"

	"anglecam/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// MockProvider simulates a walk with a wandering compass for demo mode:
// the fix drifts north-east at strolling pace and the heading oscillates
// around a slowly turning base bearing.
type MockProvider struct {
	send    func(tea.Msg)
	running bool
	cancel  context.CancelFunc
}

// NewMockProvider creates a demo sensor source.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Start begins emitting simulated readings.
func (p *MockProvider) Start(prog *tea.Program) error {
	return p.startSender(prog.Send)
}

// startSender wires the message sink and launches the simulation loop.
func (p *MockProvider) startSender(send func(tea.Msg)) error {
	p.send = send
	p.running = true

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	go p.loop(ctx)
	return nil
}

func (p *MockProvider) loop(ctx context.Context) {
	ticker := time.NewTicker(config.MockUpdateInterval)
	defer ticker.Stop()

	lat, lon := config.MockStartLat, config.MockStartLon
	base := rand.Float64() * 360
	t := 0.0

	p.send(ConnectedMsg{Source: "demo"})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.running {
				return
			}
			t += config.MockUpdateInterval.Seconds()

			// ~1.2 m/s drift north-east with jitter
			lat += 0.000002 + rand.Float64()*0.000001
			lon += 0.000002 + rand.Float64()*0.000001

			// base bearing turns slowly, hand wobble on top
			base += (rand.Float64() - 0.5) * 2
			heading := math.Mod(base+12*math.Sin(t*0.8)+(rand.Float64()-0.5)*3, 360)
			if heading < 0 {
				heading += 360
			}

			p.send(UpdateMsg{
				Reading: Reading{
					HasLocation: true,
					Latitude:    lat,
					Longitude:   lon,
					HasHeading:  true,
					Heading:     heading,
				},
				At: time.Now(),
			})
		}
	}
}

// Stop halts the simulation.
func (p *MockProvider) Stop() {
	p.running = false
	if p.cancel != nil {
		p.cancel()
	}
}
