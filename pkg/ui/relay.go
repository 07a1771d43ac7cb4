package ui

import (
	"sync"

	"github.com/r-bassi/SteamVista/pkg/model"

	tea "github.com/charmbracelet/bubbletea"
)

// DataMsg carries a fresh filtered pool into the running program.
type DataMsg struct {
	Games []*model.Game
}

// SelectionMsg carries a selection broadcast into the running program.
type SelectionMsg struct {
	SelectedID string
	RelatedIDs []string
}

// Relay bridges dashboard broadcasts onto the bubbletea message loop. It
// drops messages until a program is attached; the model seeds its initial
// state from the dashboard directly, so nothing is lost.
type Relay struct {
	mu sync.Mutex
	p  *tea.Program
}

func NewRelay() *Relay { return &Relay{} }

// Attach binds the relay to a running program. Safe to call once the
// program exists, before Run.
func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

func (r *Relay) OnFilteredDataChanged(games []*model.Game) {
	r.send(DataMsg{Games: games})
}

func (r *Relay) OnSelectionChanged(selectedID string, relatedIDs []string) {
	r.send(SelectionMsg{SelectedID: selectedID, RelatedIDs: relatedIDs})
}

func (r *Relay) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
