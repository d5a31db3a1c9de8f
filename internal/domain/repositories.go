package domain

import (
	"context"
)

// CatalogRepository provides read access to the artwork catalog
type CatalogRepository interface {
	// FetchPage returns the one-based page of the catalog
	FetchPage(ctx context.Context, page int) (Page, error)

	// FetchLimit returns the first limit records of the catalog
	FetchLimit(ctx context.Context, limit int) ([]Artwork, error)

	// FetchChunk returns the one-based page of the catalog using a custom page size
	FetchChunk(ctx context.Context, page, limit int) ([]Artwork, error)
}
