// Package dashboard coordinates the filter store, the selection
// controller, and the registered view adapters. It is the single entry
// point for user-driven mutations: every handler runs to completion under
// one mutex, so adapters never observe a half-updated pool and a selection
// arriving during a filter change is serialized after it.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/r-bassi/SteamVista/pkg/analysis"
	"github.com/r-bassi/SteamVista/pkg/filter"
	"github.com/r-bassi/SteamVista/pkg/loader"
	"github.com/r-bassi/SteamVista/pkg/model"
	"github.com/r-bassi/SteamVista/pkg/selection"
)

// ViewAdapter is the contract every view implements. Both callbacks hand
// over read-only data that fully replaces the adapter's prior state.
type ViewAdapter interface {
	// OnFilteredDataChanged delivers the new filtered pool after any
	// predicate change or data reload.
	OnFilteredDataChanged(records []*model.Game)
	// OnSelectionChanged delivers every select, deselect, and reset. An
	// empty selectedID means no selection.
	OnSelectionChanged(selectedID string, relatedIDs []string)
}

// Options tunes the coordinator.
type Options struct {
	// RelatedLimit caps the related sample per selection. Zero means the
	// standard cap; wide surfaces pass analysis.WideRelatedCap.
	RelatedLimit int
	// Shuffler overrides the random source for related sampling.
	Shuffler selection.Shuffler
}

// Dashboard owns the session state built over one loaded catalog.
type Dashboard struct {
	mu       sync.Mutex
	store    *filter.Store
	sel      *selection.Controller
	taxonomy model.Taxonomy
	adapters []ViewAdapter
}

// New builds a dashboard over a loaded catalog. The relationship index is
// computed here, once, before any adapter can observe the records.
func New(ctx context.Context, cat *loader.Catalog, opts Options) (*Dashboard, error) {
	if err := analysis.BuildRelatedIndex(ctx, cat.Games); err != nil {
		return nil, fmt.Errorf("building related index: %w", err)
	}

	d := &Dashboard{
		store:    filter.NewStore(cat.Games),
		sel:      selection.NewController(opts.RelatedLimit, opts.Shuffler),
		taxonomy: cat.Taxonomy,
	}
	d.store.Subscribe(func(pool []*model.Game) {
		for _, a := range d.adapters {
			a.OnFilteredDataChanged(pool)
		}
	})
	d.sel.Subscribe(func(ev selection.Event) {
		for _, a := range d.adapters {
			a.OnSelectionChanged(ev.SelectedID, ev.RelatedIDs)
		}
	})
	return d, nil
}

// Register adds a view adapter and immediately pushes the current pool so
// the adapter never renders empty while data exists.
func (d *Dashboard) Register(a ViewAdapter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.adapters = append(d.adapters, a)
	a.OnFilteredDataChanged(d.store.Filtered())
}

// UpdateFilter installs or replaces one predicate and broadcasts the
// recomputed pool. A nil predicate clears the key.
func (d *Dashboard) UpdateFilter(key string, p filter.Predicate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Set(key, p)
}

// ResetFilters drops every predicate and rebroadcasts the canonical set.
func (d *Dashboard) ResetFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.store.Reset()
}

// SelectByID forwards a click on a record to the selection controller,
// resolved against the current filtered pool. A NotFoundError return is a
// soft signal, not a failure; the cleared selection has been broadcast.
func (d *Dashboard) SelectByID(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sel.Select(id, d.store.Filtered())
}

// ResetSelection clears any selection and broadcasts a global clear.
func (d *Dashboard) ResetSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sel.ResetAll()
}

// Filtered returns the current filtered pool.
func (d *Dashboard) Filtered() []*model.Game {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Filtered()
}

// Canonical returns the full record set.
func (d *Dashboard) Canonical() []*model.Game {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Canonical()
}

// Taxonomy returns the genre taxonomy computed at load time.
func (d *Dashboard) Taxonomy() model.Taxonomy {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.taxonomy
}

// SelectedID returns the selected record id, empty when idle.
func (d *Dashboard) SelectedID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sel.SelectedID()
}

// Describe returns the active predicates, for robot output.
func (d *Dashboard) Describe() []filter.Description {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Describe()
}

// Reload replaces the whole catalog: the related index is rebuilt, active
// predicates are re-applied against the new canonical set, and any
// selection is cleared since record identity may not survive the swap.
func (d *Dashboard) Reload(ctx context.Context, cat *loader.Catalog) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := analysis.BuildRelatedIndex(ctx, cat.Games); err != nil {
		return fmt.Errorf("building related index: %w", err)
	}
	d.taxonomy = cat.Taxonomy
	d.sel.ResetAll()
	d.store.Replace(cat.Games)
	return nil
}
