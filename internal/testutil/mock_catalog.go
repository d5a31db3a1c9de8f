// Package testutil provides a fake artworks API for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockCatalog is an in-memory artworks API serving ids 1..Total in order.
type MockCatalog struct {
	server *httptest.Server

	mu       sync.Mutex
	total    int
	pageSize int
	status   int
	delay    time.Duration
	omitTot  bool
	queries  []string
}

// NewMockCatalog starts a fake catalog holding total records
func NewMockCatalog(total int) *MockCatalog {
	m := &MockCatalog{total: total, pageSize: 12, status: http.StatusOK}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// URL returns the artworks endpoint URL
func (m *MockCatalog) URL() string {
	return m.server.URL + "/api/v1/artworks"
}

// Client returns an HTTP client wired to the server
func (m *MockCatalog) Client() *http.Client {
	return m.server.Client()
}

// Close shuts the server down
func (m *MockCatalog) Close() {
	m.server.Close()
}

// FailWith makes every following request answer with status
func (m *MockCatalog) FailWith(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

// SetDelay delays every response
func (m *MockCatalog) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// OmitTotal drops pagination.total from page responses
func (m *MockCatalog) OmitTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.omitTot = true
}

// Queries returns the raw query strings received so far
func (m *MockCatalog) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

func (m *MockCatalog) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.queries = append(m.queries, r.URL.RawQuery)
	status, delay, total, pageSize, omit := m.status, m.delay, m.total, m.pageSize, m.omitTot
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if status != http.StatusOK {
		http.Error(w, `{"error":"boom"}`, status)
		return
	}

	q := r.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	limit := atoiDefault(q.Get("limit"), pageSize)

	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	data := make([]map[string]any, 0, limit)
	for id := start + 1; id <= end; id++ {
		data = append(data, Record(id))
	}

	body := map[string]any{"data": data}
	if !omit {
		body["pagination"] = map[string]any{
			"total":        total,
			"limit":        limit,
			"offset":       start,
			"current_page": page,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// Record returns the wire representation of the record with id
func Record(id int) map[string]any {
	rec := map[string]any{
		"id":                   id,
		"artist_title":         fmt.Sprintf("Artist %d", id),
		"department_title":     "Department",
		"classification_title": "painting",
		"date_start":           1800 + id,
	}
	if id%7 == 0 {
		rec["artist_title"] = nil
	}
	return rec
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
