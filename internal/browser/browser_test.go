package browser

import (
	"testing"

	"github.com/mmcdole/gallery/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artworks(ids ...int) []domain.Artwork {
	out := make([]domain.Artwork, len(ids))
	for i, id := range ids {
		out[i] = domain.Artwork{ID: id, Artist: "artist", DateStart: 1900 + id}
	}
	return out
}

func idsOf(records []domain.Artwork) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func intPtr(n int) *int { return &n }

func TestWindow(t *testing.T) {
	w := NewWindow()
	assert.Equal(t, 0, w.First())
	assert.Equal(t, 0, w.PageCount())
	assert.True(t, w.HasNext(), "unknown total allows next")
	assert.False(t, w.HasPrev())

	w.Total = 120
	assert.Equal(t, 10, w.PageCount())

	w.Total = 121
	assert.Equal(t, 11, w.PageCount())

	w.Page = 10
	assert.False(t, w.HasNext())
	assert.Equal(t, 120, w.First())
	assert.Equal(t, 121, w.Last(1))

	assert.Equal(t, 0, w.Clamp(-4))
	assert.Equal(t, 10, w.Clamp(99))
}

func TestWindow_FirstIsMultipleOfSize(t *testing.T) {
	w := NewWindow()
	w.Total = 1000
	for page := 0; page < w.PageCount(); page++ {
		w.Page = page
		assert.Zero(t, w.First()%w.Size)
		assert.GreaterOrEqual(t, w.First(), 0)
	}
}

func TestSelection_Dedup(t *testing.T) {
	s := NewSelection()
	assert.True(t, s.Check(artworks(1)[0]))
	assert.False(t, s.Check(artworks(1)[0]))
	assert.Equal(t, 1, s.Len())

	added := s.Merge(artworks(1, 2, 3, 2))
	assert.Equal(t, 2, added)
	assert.Equal(t, []int{1, 2, 3}, idsOf(s.Records()))
}

func TestSelection_UncheckKeepsOrder(t *testing.T) {
	s := NewSelection()
	s.Merge(artworks(5, 6, 7, 8))

	require.True(t, s.Uncheck(6))
	assert.False(t, s.Uncheck(6))
	assert.Equal(t, []int{5, 7, 8}, idsOf(s.Records()))
	assert.True(t, s.Contains(8))

	// the index must follow the shifted positions
	require.True(t, s.Uncheck(8))
	assert.Equal(t, []int{5, 7}, idsOf(s.Records()))
}

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()
	rec := artworks(9)[0]
	assert.True(t, s.Toggle(rec))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Toggle(rec))
	assert.False(t, s.Contains(9))
}

func TestSelection_TogglePage(t *testing.T) {
	s := NewSelection()
	s.Check(artworks(2)[0])
	page := artworks(1, 2, 3)

	assert.True(t, s.TogglePage(page))
	assert.Equal(t, []int{2, 1, 3}, idsOf(s.Records()))

	assert.False(t, s.TogglePage(page))
	assert.Zero(t, s.Len())

	assert.False(t, s.TogglePage(nil))
}

func TestSelection_RecordsIsCopy(t *testing.T) {
	s := NewSelection()
	s.Merge(artworks(1, 2))
	recs := s.Records()
	recs[0].ID = 99
	assert.True(t, s.Contains(1))
	assert.Equal(t, 1, s.Records()[0].ID)
}

func TestState_PageFlow(t *testing.T) {
	st := NewState()
	req := st.RequestPage(0)
	assert.True(t, st.Loading)

	ok := st.ApplyPage(req, domain.Page{Records: artworks(1, 2, 3), Total: intPtr(120)})
	require.True(t, ok)
	assert.False(t, st.Loading)
	assert.Equal(t, 10, st.Window.PageCount())

	req = st.RequestPage(3)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 36, st.Window.First())

	// absent total leaves the known total alone
	st.ApplyPage(req, domain.Page{Records: artworks(40)})
	assert.Equal(t, 120, st.Window.Total)
	assert.Equal(t, []int{40}, idsOf(st.Records))
}

func TestState_StaleResponseDropped(t *testing.T) {
	st := NewState()
	first := st.RequestPage(0)
	second := st.RequestPage(1)

	assert.True(t, st.ApplyPage(second, domain.Page{Records: artworks(13)}))
	assert.False(t, st.ApplyPage(first, domain.Page{Records: artworks(1)}))
	assert.Equal(t, []int{13}, idsOf(st.Records))
	assert.False(t, st.Loading)

	// a late failure of the superseded request keeps the latest state
	third := st.RequestPage(2)
	assert.False(t, st.FailPage(second))
	assert.True(t, st.Loading)
	assert.True(t, st.FailPage(third))
	assert.False(t, st.Loading)
	assert.Equal(t, []int{13}, idsOf(st.Records), "stale records stay on failure")
}

func TestState_FailPageRestoresWindow(t *testing.T) {
	st := NewState()
	req := st.RequestPage(0)
	st.ApplyPage(req, domain.Page{Records: artworks(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12), Total: intPtr(30)})

	req = st.RequestPage(1)
	assert.Equal(t, 1, st.Window.Page)
	require.True(t, st.FailPage(req))

	assert.Equal(t, 0, st.Window.Page)
	assert.Equal(t, 0, st.Window.First())
	assert.Equal(t, "1–12 of 30", st.Summary())
}

func TestState_PlanBulk(t *testing.T) {
	st := NewState()

	_, ok, err := st.PlanBulk(0, true)
	assert.ErrorIs(t, err, domain.ErrInvalidBulkCount)
	assert.False(t, ok)

	_, ok, err = st.PlanBulk(5, false)
	assert.ErrorIs(t, err, domain.ErrInvalidBulkCount)
	assert.False(t, ok)

	_, _, err = st.PlanBulk(-3, true)
	assert.ErrorIs(t, err, domain.ErrInvalidBulkCount)
	assert.Zero(t, st.Selection.Len())

	req, ok, err := st.PlanBulk(5, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, req.Target)
	assert.Equal(t, 5, req.Count, "unknown total leaves the count alone")

	st.ApplyBulk(5, artworks(1, 2, 3, 4, 5))
	_, ok, err = st.PlanBulk(5, true)
	require.NoError(t, err)
	assert.False(t, ok, "same limit is a no-op")

	_, ok, err = st.PlanBulk(4, true)
	require.NoError(t, err)
	assert.False(t, ok, "cannot shrink through bulk select")
}

func TestState_PlanBulkCapsAtTotal(t *testing.T) {
	st := NewState()
	req := st.RequestPage(0)
	st.ApplyPage(req, domain.Page{Records: artworks(1, 2, 3), Total: intPtr(30)})

	bulk, ok, err := st.PlanBulk(9999999, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 9999999, bulk.Target)
	assert.Equal(t, 30, bulk.Count)
}

func TestState_BulkOverlapScenario(t *testing.T) {
	st := NewState()
	st.ApplyBulk(5, artworks(100, 101, 102, 103, 104))
	require.Equal(t, 5, st.Selection.Len())
	require.Equal(t, 5, st.BulkLimit)

	req, ok, err := st.PlanBulk(10, true)
	require.NoError(t, err)
	require.True(t, ok)

	// three of the ten fetched ids are already selected
	fetched := artworks(100, 1, 101, 2, 3, 102, 4, 5, 6, 7)
	added := st.ApplyBulk(req.Target, fetched)

	assert.Equal(t, 7, added)
	assert.Equal(t, 12, st.Selection.Len())
	assert.Equal(t, 10, st.BulkLimit)
	assert.Equal(t, []int{100, 101, 102, 103, 104, 1, 2, 3, 4, 5, 6, 7}, idsOf(st.Selection.Records()))
}

func TestState_ClearSelectionResetsLimit(t *testing.T) {
	st := NewState()
	st.ApplyBulk(3, artworks(1, 2, 3))
	st.ClearSelection()
	assert.Zero(t, st.Selection.Len())

	_, ok, err := st.PlanBulk(3, true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestState_SnapshotRestore(t *testing.T) {
	st := NewState()
	st.ApplyBulk(4, artworks(4, 3, 2, 1))

	other := NewState()
	other.Restore(st.Snapshot())
	assert.Equal(t, []int{4, 3, 2, 1}, idsOf(other.Selection.Records()))
	assert.Equal(t, 4, other.BulkLimit)

	other.Restore(domain.SelectionSnapshot{Records: artworks(1, 1, 2)})
	assert.Equal(t, []int{1, 2}, idsOf(other.Selection.Records()))
}

func TestState_Summary(t *testing.T) {
	st := NewState()
	assert.Equal(t, "no records", st.Summary())

	req := st.RequestPage(0)
	st.ApplyPage(req, domain.Page{Records: artworks(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12), Total: intPtr(30)})
	assert.Equal(t, "1–12 of 30", st.Summary())

	req = st.RequestPage(2)
	st.ApplyPage(req, domain.Page{Records: artworks(25, 26, 27, 28, 29, 30)})
	assert.Equal(t, "25–30 of 30", st.Summary())
}
