package artic

import "github.com/mmcdole/gallery/internal/domain"

// MapArtworks converts API artworks to domain artworks
func MapArtworks(items []Artwork) []domain.Artwork {
	out := make([]domain.Artwork, 0, len(items))
	for _, item := range items {
		out = append(out, MapArtwork(item))
	}
	return out
}

// MapArtwork converts a single API artwork
func MapArtwork(item Artwork) domain.Artwork {
	return domain.Artwork{
		ID:             item.ID,
		Artist:         deref(item.ArtistTitle),
		Department:     deref(item.DepartmentTitle),
		Classification: deref(item.ClassificationTitle),
		DateStart:      derefInt(item.DateStart),
	}
}

// MapPage converts a list response to a domain page
func MapPage(resp ArtworksResponse) domain.Page {
	page := domain.Page{Records: MapArtworks(resp.Data)}
	// A zero total is treated like an absent one
	if resp.Pagination != nil && resp.Pagination.Total != nil && *resp.Pagination.Total > 0 {
		total := *resp.Pagination.Total
		page.Total = &total
	}
	return page
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
