// Package browser holds the state of the artwork browser: the page window,
// the records of the current page, the cross-page selection and the bulk
// selector. State is only mutated from the UI update loop; fetches run
// elsewhere and hand their results back through ApplyPage and ApplyBulk.
package browser

import (
	"fmt"

	"github.com/mmcdole/gallery/internal/domain"
)

// PageRequest identifies an issued page fetch
type PageRequest struct {
	Page int    // zero-based
	Seq  uint64 // increases with every request
}

// BulkRequest is a bulk selection that needs a fetch
type BulkRequest struct {
	Target int // limit recorded once applied
	Count  int // records to fetch, capped at the known total
}

// State is the application state of the browser
type State struct {
	Window    Window
	Records   []domain.Artwork
	Selection *Selection
	BulkLimit int
	Loading   bool

	seq   uint64 // sequence of the latest page request
	shown int    // page the current records belong to
}

// NewState creates the initial state
func NewState() *State {
	return &State{
		Window:    NewWindow(),
		Selection: NewSelection(),
	}
}

// RequestPage moves the window to page and marks the fetcher busy
func (s *State) RequestPage(page int) PageRequest {
	page = s.Window.Clamp(page)
	s.seq++
	s.Window.Page = page
	s.Loading = true
	return PageRequest{Page: page, Seq: s.seq}
}

// IsLatest reports whether req is the most recently issued page request
func (s *State) IsLatest(req PageRequest) bool {
	return req.Seq == s.seq
}

// ApplyPage stores the records of a settled page fetch.
// Responses to superseded requests are dropped; returns false in that case.
func (s *State) ApplyPage(req PageRequest, page domain.Page) bool {
	if !s.IsLatest(req) {
		return false
	}
	s.Records = page.Records
	s.shown = req.Page
	if page.Total != nil {
		s.Window.Total = *page.Total
	}
	s.Loading = false
	return true
}

// FailPage settles a failed page fetch. The records on screen stay, and the
// window moves back to the page they belong to.
func (s *State) FailPage(req PageRequest) bool {
	if !s.IsLatest(req) {
		return false
	}
	s.Window.Page = s.shown
	s.Loading = false
	return true
}

// PlanBulk validates a bulk selection target.
// It returns domain.ErrInvalidBulkCount for a missing or non-positive target,
// and ok=false when the target needs no fetch.
func (s *State) PlanBulk(target int, provided bool) (req BulkRequest, ok bool, err error) {
	if !provided || target <= 0 {
		return BulkRequest{}, false, domain.ErrInvalidBulkCount
	}
	if target == s.BulkLimit {
		return BulkRequest{}, false, nil
	}
	if target < s.Selection.Len() {
		return BulkRequest{}, false, nil
	}
	count := target
	if s.Window.Total > 0 && count > s.Window.Total {
		count = s.Window.Total
	}
	return BulkRequest{Target: target, Count: count}, true, nil
}

// ApplyBulk merges fetched records into the selection and records target
// as the applied bulk limit. Returns the number of records added.
func (s *State) ApplyBulk(target int, records []domain.Artwork) int {
	added := s.Selection.Merge(records)
	s.BulkLimit = target
	return added
}

// ClearSelection empties the selection and forgets the applied bulk limit
func (s *State) ClearSelection() {
	s.Selection.Clear()
	s.BulkLimit = 0
}

// Restore loads a persisted selection
func (s *State) Restore(snap domain.SelectionSnapshot) {
	s.Selection.Replace(snap.Records)
	s.BulkLimit = snap.BulkLimit
}

// Snapshot returns the persistable part of the state
func (s *State) Snapshot() domain.SelectionSnapshot {
	return domain.SelectionSnapshot{
		Records:   s.Selection.Records(),
		BulkLimit: s.BulkLimit,
	}
}

// Summary describes the window for the paginator footer
func (s *State) Summary() string {
	if len(s.Records) == 0 {
		return "no records"
	}
	if s.Window.Total == 0 {
		return fmt.Sprintf("%d–%d", s.Window.First()+1, s.Window.Last(len(s.Records)))
	}
	return fmt.Sprintf("%d–%d of %d", s.Window.First()+1, s.Window.Last(len(s.Records)), s.Window.Total)
}
