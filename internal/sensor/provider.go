package sensor

import tea "github.com/charmbracelet/bubbletea"

// Provider is a heading/fix source. Implementations push UpdateMsg,
// ErrorMsg and ConnectedMsg into the program from their own goroutines.
type Provider interface {
	Start(p *tea.Program) error
	Stop()
}
