package artic

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/mmcdole/gallery/internal/adapter"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, mock *testutil.MockCatalog, opts ...Option) *Client {
	t.Helper()
	t.Cleanup(mock.Close)
	opts = append([]Option{WithHTTPClient(mock.Client())}, opts...)
	return NewClient(mock.URL(), adapter.NullLogger(), opts...)
}

func TestFetchPage(t *testing.T) {
	mock := testutil.NewMockCatalog(120)
	c := newTestClient(t, mock)

	page, err := c.FetchPage(context.Background(), 4)
	require.NoError(t, err)

	require.Len(t, page.Records, 12)
	assert.Equal(t, 37, page.Records[0].ID)
	assert.Equal(t, "Artist 37", page.Records[0].Artist)
	assert.Equal(t, 1837, page.Records[0].DateStart)
	require.NotNil(t, page.Total)
	assert.Equal(t, 120, *page.Total)

	q, err := url.ParseQuery(mock.Queries()[0])
	require.NoError(t, err)
	assert.Equal(t, "4", q.Get("page"))
	assert.Empty(t, q.Get("limit"))
	assert.Empty(t, q.Get("fields"))
}

func TestFetchPage_NullFieldsAndMissingTotal(t *testing.T) {
	mock := testutil.NewMockCatalog(20)
	mock.OmitTotal()
	c := newTestClient(t, mock)

	page, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, page.Total)
	// record 7 has a null artist
	assert.Equal(t, "", page.Records[6].Artist)
	assert.Equal(t, 7, page.Records[6].ID)
}

func TestFetchLimit(t *testing.T) {
	mock := testutil.NewMockCatalog(500)
	c := newTestClient(t, mock, WithFields(true))

	recs, err := c.FetchLimit(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, recs, 30)
	assert.Equal(t, 1, recs[0].ID)
	assert.Equal(t, 30, recs[29].ID)

	q, err := url.ParseQuery(mock.Queries()[0])
	require.NoError(t, err)
	assert.Equal(t, "30", q.Get("limit"))
	assert.Empty(t, q.Get("page"))
	assert.Equal(t, displayFields, q.Get("fields"))
}

func TestFetchChunk(t *testing.T) {
	mock := testutil.NewMockCatalog(500)
	c := newTestClient(t, mock)

	recs, err := c.FetchChunk(context.Background(), 3, 100)
	require.NoError(t, err)
	require.Len(t, recs, 100)
	assert.Equal(t, 201, recs[0].ID)
}

func TestFetch_StatusError(t *testing.T) {
	mock := testutil.NewMockCatalog(10)
	mock.FailWith(http.StatusForbidden)
	c := newTestClient(t, mock)

	_, err := c.FetchPage(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogStatus)
	assert.Len(t, mock.Queries(), 1, "no retry")
}

func TestFetch_Unreachable(t *testing.T) {
	mock := testutil.NewMockCatalog(10)
	u := mock.URL()
	mock.Close()

	c := NewClient(u, adapter.NullLogger())
	_, err := c.FetchLimit(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrCatalogUnreachable)
}

func TestFetch_ContextCanceled(t *testing.T) {
	mock := testutil.NewMockCatalog(10)
	mock.SetDelay(2 * time.Second)
	c := newTestClient(t, mock)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchPage(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMapPage_ZeroTotalIsAbsent(t *testing.T) {
	zero := 0
	page := MapPage(ArtworksResponse{Pagination: &Pagination{Total: &zero}})
	assert.Nil(t, page.Total)
}
