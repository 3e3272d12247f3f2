package sensor

import "time"

// UpdateMsg carries one decoded sensor reading into the UI event loop.
type UpdateMsg struct {
	Reading Reading
	At      time.Time
}

// ErrorMsg reports a provider failure.
type ErrorMsg struct {
	Err error
}

// ConnectedMsg is sent once a provider has a live data source.
type ConnectedMsg struct {
	Source string // peripheral name or "demo"
}
