package browser

import "github.com/mmcdole/gallery/internal/domain"

// Window is the visible slice of the catalog
type Window struct {
	Page  int // zero-based
	Size  int
	Total int // 0 when the source has not reported a total
}

// NewWindow creates a window on the first page
func NewWindow() Window {
	return Window{Size: domain.PageSize}
}

// First returns the offset of the first record on the current page
func (w Window) First() int {
	return w.Page * w.Size
}

// Last returns the one-based index of the last record on the current page,
// clamped to the total when it is known
func (w Window) Last(rows int) int {
	last := w.First() + rows
	if w.Total > 0 && last > w.Total {
		last = w.Total
	}
	return last
}

// PageCount returns the number of pages (0 when the total is unknown)
func (w Window) PageCount() int {
	if w.Total <= 0 || w.Size <= 0 {
		return 0
	}
	return (w.Total + w.Size - 1) / w.Size
}

// HasNext reports whether a page follows the current one.
// With an unknown total the next page is always allowed.
func (w Window) HasNext() bool {
	count := w.PageCount()
	return count == 0 || w.Page+1 < count
}

// HasPrev reports whether a page precedes the current one
func (w Window) HasPrev() bool {
	return w.Page > 0
}

// Clamp bounds a zero-based page index to the known page range
func (w Window) Clamp(page int) int {
	if page < 0 {
		return 0
	}
	if count := w.PageCount(); count > 0 && page >= count {
		return count - 1
	}
	return page
}
