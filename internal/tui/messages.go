package tui

import (
	"github.com/mmcdole/gallery/internal/browser"
	"github.com/mmcdole/gallery/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg signals that a page fetch settled successfully
type PageLoadedMsg struct {
	Request browser.PageRequest
	Page    domain.Page
}

// PageFailedMsg signals that a page fetch failed
type PageFailedMsg struct {
	Request browser.PageRequest
	Err     error
}

// BulkLoadedMsg carries the first Target records of the catalog
type BulkLoadedMsg struct {
	Target  int
	Records []domain.Artwork
}

// BulkFailedMsg signals that a bulk fetch failed
type BulkFailedMsg struct {
	Target int
	Err    error
}

// SelectionSavedMsg signals that a selection snapshot was written
type SelectionSavedMsg struct {
	Version uint64
	Err     error
}

// ClearStatusMsg clears the status bar message set with sequence Seq.
// A newer message makes it a no-op.
type ClearStatusMsg struct {
	Seq uint64
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
