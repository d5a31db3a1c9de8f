package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmcdole/gallery/internal/adapter"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeRepo serves ids 1..total and records every call
type fakeRepo struct {
	mu       sync.Mutex
	total    int
	failPage int // chunk page that fails (0 = none)
	pages    []int
	limits   []int
	chunks   [][2]int
}

func (f *fakeRepo) slice(start, n int) []domain.Artwork {
	var out []domain.Artwork
	for id := start + 1; id <= start+n && id <= f.total; id++ {
		out = append(out, domain.Artwork{ID: id})
	}
	return out
}

func (f *fakeRepo) FetchPage(_ context.Context, page int) (domain.Page, error) {
	f.mu.Lock()
	f.pages = append(f.pages, page)
	f.mu.Unlock()
	total := f.total
	return domain.Page{Records: f.slice((page-1)*domain.PageSize, domain.PageSize), Total: &total}, nil
}

func (f *fakeRepo) FetchLimit(_ context.Context, limit int) ([]domain.Artwork, error) {
	f.mu.Lock()
	f.limits = append(f.limits, limit)
	f.mu.Unlock()
	return f.slice(0, limit), nil
}

func (f *fakeRepo) FetchChunk(ctx context.Context, page, limit int) ([]domain.Artwork, error) {
	f.mu.Lock()
	f.chunks = append(f.chunks, [2]int{page, limit})
	f.mu.Unlock()
	if page == f.failPage {
		return nil, domain.ErrCatalogUnreachable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.slice((page-1)*limit, limit), nil
}

func ids(records []domain.Artwork) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestCatalogService_FetchPageIsOneBased(t *testing.T) {
	repo := &fakeRepo{total: 120}
	svc := NewCatalogService(repo, adapter.NullLogger(), 100, 2)

	page, err := svc.FetchPage(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, repo.pages)
	assert.Equal(t, 37, page.Records[0].ID)

	_, err = svc.FetchPage(context.Background(), -1)
	assert.Error(t, err)
}

func TestCatalogService_FetchFirstSingleRequest(t *testing.T) {
	repo := &fakeRepo{total: 500}
	svc := NewCatalogService(repo, adapter.NullLogger(), 100, 2)

	recs, err := svc.FetchFirst(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, recs, 100)
	assert.Equal(t, []int{100}, repo.limits)
	assert.Empty(t, repo.chunks)
}

func TestCatalogService_FetchFirstUncapped(t *testing.T) {
	repo := &fakeRepo{total: 500}
	svc := NewCatalogService(repo, adapter.NullLogger(), 0, 1)

	recs, err := svc.FetchFirst(context.Background(), 350)
	require.NoError(t, err)
	assert.Len(t, recs, 350)
	assert.Equal(t, []int{350}, repo.limits)
}

func TestCatalogService_FetchFirstChunked(t *testing.T) {
	repo := &fakeRepo{total: 500}
	svc := NewCatalogService(repo, adapter.NullLogger(), 100, 3)

	recs, err := svc.FetchFirst(context.Background(), 250)
	require.NoError(t, err)

	require.Len(t, recs, 250)
	want := make([]int, 250)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, ids(recs), "source order survives concurrent chunks")
	assert.Len(t, repo.chunks, 3)
	assert.Empty(t, repo.limits)
}

func TestCatalogService_FetchFirstShortCatalog(t *testing.T) {
	repo := &fakeRepo{total: 130}
	svc := NewCatalogService(repo, adapter.NullLogger(), 100, 2)

	recs, err := svc.FetchFirst(context.Background(), 300)
	require.NoError(t, err)
	assert.Len(t, recs, 130)
}

func TestCatalogService_FetchFirstStopsAtEndOfCatalog(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		target      int
		concurrency int
		records     int
		requests    int
	}{
		{"target far past a tiny catalog", 30, 9999999, 2, 30, 2},
		{"one chunk per wave", 250, 1000, 1, 250, 3},
		{"catalog ends inside the second wave", 450, 2000, 3, 450, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{total: tt.total}
			svc := NewCatalogService(repo, adapter.NullLogger(), 100, tt.concurrency)

			recs, err := svc.FetchFirst(context.Background(), tt.target)
			require.NoError(t, err)
			assert.Len(t, recs, tt.records)
			assert.Len(t, repo.chunks, tt.requests)
		})
	}
}

func TestCatalogService_FetchFirstChunkError(t *testing.T) {
	repo := &fakeRepo{total: 500, failPage: 2}
	svc := NewCatalogService(repo, adapter.NullLogger(), 100, 2)

	_, err := svc.FetchFirst(context.Background(), 300)
	assert.ErrorIs(t, err, domain.ErrCatalogUnreachable)
}

func TestCatalogService_FetchFirstInvalid(t *testing.T) {
	svc := NewCatalogService(&fakeRepo{}, nil, 100, 0)
	_, err := svc.FetchFirst(context.Background(), 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidBulkCount))
}
