// Package selection holds the single-selection state machine: at most one
// record is selected at any observable instant, and every transition is
// broadcast to registered listeners together with a capped random sample
// of the records related to the selection.
package selection

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/r-bassi/SteamVista/pkg/analysis"
	"github.com/r-bassi/SteamVista/pkg/model"
)

// Shuffler supplies the randomness for related sampling. *rand.Rand
// satisfies it; tests inject a deterministic implementation.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Event is one selection broadcast. A zero SelectedID means no selection.
type Event struct {
	SelectedID string   `json:"selected_id,omitempty"`
	RelatedIDs []string `json:"related_ids,omitempty"`
}

// Listener receives every selection broadcast in order.
type Listener func(Event)

// NotFoundError reports a select on an id absent from the current pool.
// The record may simply be filtered out; this is an expected state, and
// the controller has already broadcast the cleared selection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q not in the current pool", e.ID)
}

// Controller owns the selection. It is not safe for concurrent use; the
// dashboard serializes access to it.
type Controller struct {
	shuffler  Shuffler
	limit     int
	selected  string
	listeners []Listener
}

// NewController creates an idle controller sampling up to limit related
// records per selection. A nil shuffler gets a time-seeded source.
func NewController(limit int, shuffler Shuffler) *Controller {
	if limit <= 0 {
		limit = analysis.DefaultRelatedCap
	}
	if shuffler == nil {
		shuffler = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{shuffler: shuffler, limit: limit}
}

// Subscribe registers a listener for selection broadcasts.
func (c *Controller) Subscribe(fn Listener) {
	c.listeners = append(c.listeners, fn)
}

// SetLimit changes the related-sample cap for subsequent selections.
func (c *Controller) SetLimit(limit int) {
	if limit > 0 {
		c.limit = limit
	}
}

// SelectedID returns the selected record id, empty when idle.
func (c *Controller) SelectedID() string { return c.selected }

// Active reports whether a record is selected.
func (c *Controller) Active() bool { return c.selected != "" }

// Select transitions the selection given a click on id, resolving the
// target against pool (the current filtered pool, so selection reflects
// live filtering):
//
//   - idle, id present: select id and broadcast it with its related sample;
//   - id already selected: toggle off, broadcast the cleared selection;
//   - another record selected: broadcast a clear for it, then select id;
//   - id empty: equivalent to ResetAll, no error;
//   - id absent from pool: clear any selection, broadcast, and return
//     NotFoundError as a soft signal.
func (c *Controller) Select(id string, pool []*model.Game) error {
	if id == "" {
		c.ResetAll()
		return nil
	}
	if c.selected == id {
		c.selected = ""
		c.broadcast(Event{})
		return nil
	}

	target := findByID(pool, id)
	if target == nil {
		c.selected = ""
		c.broadcast(Event{})
		return &NotFoundError{ID: id}
	}

	if c.selected != "" {
		c.selected = ""
		c.broadcast(Event{})
	}

	c.selected = id
	c.broadcast(Event{SelectedID: id, RelatedIDs: c.sampleRelated(target, pool)})
	return nil
}

// ResetAll clears any selection and broadcasts a global clear. Safe to
// call while idle; the clear is broadcast either way so every adapter
// drops stale highlights.
func (c *Controller) ResetAll() {
	c.selected = ""
	c.broadcast(Event{})
}

// sampleRelated computes the related subset of pool, shuffles it, and
// truncates to the configured cap. Tiny or empty pools yield an empty
// sample rather than an error.
func (c *Controller) sampleRelated(target *model.Game, pool []*model.Game) []string {
	related := analysis.RelatedTo(target, pool)
	c.shuffler.Shuffle(len(related), func(i, j int) {
		related[i], related[j] = related[j], related[i]
	})
	if len(related) > c.limit {
		related = related[:c.limit]
	}
	out := make([]string, len(related))
	for i, g := range related {
		out[i] = g.ID
	}
	return out
}

func (c *Controller) broadcast(ev Event) {
	for _, fn := range c.listeners {
		fn(ev)
	}
}

func findByID(pool []*model.Game, id string) *model.Game {
	for _, g := range pool {
		if g.ID == id {
			return g
		}
	}
	return nil
}
