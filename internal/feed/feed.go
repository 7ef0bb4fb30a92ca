// Package feed composes the query state, a report source and the displayed
// result set.
package feed

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
)

// Fetcher returns the reports matching a filter set.
type Fetcher interface {
	ListReports(ctx context.Context, f query.Filters) ([]model.Report, error)
}

// ViewMode selects how results are laid out.
type ViewMode string

// View modes.
const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// View is a snapshot of what the presentation layer should display.
type View struct {
	Items   []model.Report
	Filters query.Filters
	Search  string // staged, not yet committed
	Loading bool
	Err     error
	Mode    ViewMode
}

// Empty reports whether there is nothing to show. It is a displayable state,
// not an error.
func (v View) Empty() bool {
	return !v.Loading && len(v.Items) == 0
}

// Feed re-fetches whenever the effective filters change and displays only the
// response to the most recently issued request.
type Feed struct {
	// OnUpdate, if set, is called with the new view after each applied response.
	OnUpdate func(View)

	state *query.State
	src   Fetcher
	base  context.Context

	mu          sync.Mutex
	seq         uint64
	items       []model.Report
	err         error
	loading     bool
	mode        ViewMode
	cancel      context.CancelFunc
	inflightKey string
	wg          sync.WaitGroup
}

// New returns a feed over state and src. Requests inherit ctx.
func New(ctx context.Context, state *query.State, src Fetcher) *Feed {
	return &Feed{
		state: state,
		src:   src,
		base:  ctx,
		mode:  ViewGrid,
	}
}

// SetFilter changes one filter field and re-fetches if the effective filters changed.
func (f *Feed) SetFilter(k query.Key, value string) {
	if f.state.SetFilter(k, value) {
		f.Refresh()
	}
}

// SetSearchText stages search text. It never issues a request.
func (f *Feed) SetSearchText(value string) {
	f.state.SetSearchText(value)
}

// CommitSearch applies the staged search text.
func (f *Feed) CommitSearch() {
	if f.state.CommitSearch() {
		f.Refresh()
	}
}

// ResetAll clears every filter and the staged search text.
func (f *Feed) ResetAll() {
	if f.state.ResetAll() {
		f.Refresh()
	}
}

// SetViewMode switches the layout without fetching.
func (f *Feed) SetViewMode(m ViewMode) {
	f.mu.Lock()
	f.mode = m
	f.mu.Unlock()
}

// Refresh issues a request for the current filters. It returns immediately.
func (f *Feed) Refresh() {
	f.mu.Lock()
	filters := f.state.Effective()
	key := filters.Encode()

	f.seq++
	id := f.seq
	// A superseded request for different filters is aborted; one for the same
	// filters is left to finish since the new request may share it.
	if f.cancel != nil && f.inflightKey != key {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(f.base)
	f.cancel = cancel
	f.inflightKey = key
	f.loading = true
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		defer cancel()
		items, err := f.src.ListReports(ctx, filters)
		f.apply(id, items, err)
	}()
}

// apply installs a response if it belongs to the latest request.
func (f *Feed) apply(id uint64, items []model.Report, err error) {
	f.mu.Lock()
	if id != f.seq {
		latest := f.seq
		f.mu.Unlock()
		slog.Debug("discarding superseded response", "request", id, "latest", latest)
		return
	}

	f.loading = false
	if err != nil {
		// Keep what is already displayed.
		f.err = err
		slog.Warn("fetching reports failed", "error", err)
	} else {
		f.items = items
		f.err = nil
	}
	view := f.viewLocked()
	cb := f.OnUpdate
	f.mu.Unlock()

	if cb != nil {
		cb(view)
	}
}

// View returns the current display state.
func (f *Feed) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *Feed) viewLocked() View {
	return View{
		Items:   slices.Clone(f.items),
		Filters: f.state.Effective(),
		Search:  f.state.SearchText(),
		Loading: f.loading,
		Err:     f.err,
		Mode:    f.mode,
	}
}

// Wait blocks until every issued request has returned.
func (f *Feed) Wait() {
	f.wg.Wait()
}

// Close aborts the outstanding request and waits for all requests to return.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.seq++ // nothing in flight may update the view any more
	f.mu.Unlock()
	f.wg.Wait()
}
