package domain

// SelectionSnapshot is the persisted state of a selection
type SelectionSnapshot struct {
	Records   []Artwork `json:"records"`
	BulkLimit int       `json:"bulk_limit"`
}

// SelectionStore handles the local selection store (BoltDB + memory).
type SelectionStore interface {
	// LoadSelection returns the saved selection, false if nothing was saved
	LoadSelection() (SelectionSnapshot, bool)

	// SaveSelection replaces the saved selection
	SaveSelection(snap SelectionSnapshot) error

	// ClearSelection removes the saved selection
	ClearSelection() error

	Close() error
}
