package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/gallery/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CatalogService reads pages and bulk selections from the catalog
type CatalogService struct {
	repo        domain.CatalogRepository
	logger      *slog.Logger
	maxLimit    int
	concurrency int
}

// NewCatalogService creates a new catalog service.
// maxLimit is the largest limit the source accepts in a single request
// (0 = unlimited); larger bulk fetches are split into chunks fetched with
// at most concurrency requests in flight.
func NewCatalogService(repo domain.CatalogRepository, logger *slog.Logger, maxLimit, concurrency int) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &CatalogService{
		repo:        repo,
		logger:      logger,
		maxLimit:    maxLimit,
		concurrency: concurrency,
	}
}

// FetchPage returns the zero-based page of the catalog
func (s *CatalogService) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	if page < 0 {
		return domain.Page{}, fmt.Errorf("invalid page index %d", page)
	}
	result, err := s.repo.FetchPage(ctx, page+1)
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetching page %d: %w", page+1, err)
	}
	s.logger.Debug("page fetched", "page", page, "records", len(result.Records))
	return result, nil
}

// FetchFirst returns the first n records of the catalog in source order
func (s *CatalogService) FetchFirst(ctx context.Context, n int) ([]domain.Artwork, error) {
	if n <= 0 {
		return nil, domain.ErrInvalidBulkCount
	}

	if s.maxLimit <= 0 || n <= s.maxLimit {
		records, err := s.repo.FetchLimit(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("fetching first %d records: %w", n, err)
		}
		return records, nil
	}

	return s.fetchChunked(ctx, n)
}

// fetchChunked gathers n records from maxLimit-sized pages. Chunks are
// requested in waves of concurrency; a short chunk marks the end of the
// catalog and no further waves are issued.
func (s *CatalogService) fetchChunked(ctx context.Context, n int) ([]domain.Artwork, error) {
	chunks := (n + s.maxLimit - 1) / s.maxLimit

	s.logger.Info("bulk fetch split into chunks", "target", n, "chunks", chunks, "chunkSize", s.maxLimit)

	out := make([]domain.Artwork, 0, min(n, s.maxLimit*s.concurrency))
waves:
	for start := 0; start < chunks; start += s.concurrency {
		wave := make([][]domain.Artwork, min(s.concurrency, chunks-start))

		g, gctx := errgroup.WithContext(ctx)
		for i := range wave {
			page := start + i + 1
			g.Go(func() error {
				records, err := s.repo.FetchChunk(gctx, page, s.maxLimit)
				if err != nil {
					return fmt.Errorf("fetching chunk %d: %w", page, err)
				}
				wave[i] = records
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, chunk := range wave {
			out = append(out, chunk...)
			if len(chunk) < s.maxLimit {
				s.logger.Debug("catalog ended before the last chunk", "target", n, "fetched", len(out))
				break waves
			}
		}
	}

	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
