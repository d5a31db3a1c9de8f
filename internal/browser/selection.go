package browser

import "github.com/mmcdole/gallery/internal/domain"

// Selection is an insertion-ordered set of records keyed by ID.
// Membership spans pages.
type Selection struct {
	records []domain.Artwork
	index   map[int]int // id -> position in records
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{index: make(map[int]int)}
}

// Len returns the number of selected records
func (s *Selection) Len() int {
	return len(s.records)
}

// Contains reports whether the record with id is selected
func (s *Selection) Contains(id int) bool {
	_, ok := s.index[id]
	return ok
}

// Records returns a copy of the selected records in insertion order
func (s *Selection) Records() []domain.Artwork {
	out := make([]domain.Artwork, len(s.records))
	copy(out, s.records)
	return out
}

// Check adds rec, returns false if it was already selected
func (s *Selection) Check(rec domain.Artwork) bool {
	if s.Contains(rec.ID) {
		return false
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return true
}

// Uncheck removes the record with id, returns false if it was not selected
func (s *Selection) Uncheck(id int) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.records = append(s.records[:pos], s.records[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.records); i++ {
		s.index[s.records[i].ID] = i
	}
	return true
}

// Toggle flips the checked state of rec and returns the new state
func (s *Selection) Toggle(rec domain.Artwork) bool {
	if s.Uncheck(rec.ID) {
		return false
	}
	s.Check(rec)
	return true
}

// TogglePage unchecks every record of the page when all are selected,
// otherwise checks the missing ones in page order. Returns the new state.
func (s *Selection) TogglePage(records []domain.Artwork) bool {
	if len(records) == 0 {
		return false
	}
	all := true
	for _, rec := range records {
		if !s.Contains(rec.ID) {
			all = false
			break
		}
	}
	if all {
		for _, rec := range records {
			s.Uncheck(rec.ID)
		}
		return false
	}
	for _, rec := range records {
		s.Check(rec)
	}
	return true
}

// Merge appends the records that are not yet selected, in source order,
// and returns how many were added
func (s *Selection) Merge(records []domain.Artwork) int {
	added := 0
	for _, rec := range records {
		if s.Check(rec) {
			added++
		}
	}
	return added
}

// Replace swaps the whole selection, dropping duplicate IDs
func (s *Selection) Replace(records []domain.Artwork) {
	s.Clear()
	s.Merge(records)
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.records = nil
	s.index = make(map[int]int)
}
