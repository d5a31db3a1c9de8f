package artic

// ArtworksResponse represents a list response from the artworks endpoint
type ArtworksResponse struct {
	Data       []Artwork   `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination represents the paging block of a list response
type Pagination struct {
	Total       *int `json:"total,omitempty"`
	Limit       int  `json:"limit"`
	Offset      int  `json:"offset"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
}

// Artwork represents an artwork as returned by the API.
// Every display field may be null.
type Artwork struct {
	ID                  int     `json:"id"`
	ArtistTitle         *string `json:"artist_title"`
	DepartmentTitle     *string `json:"department_title"`
	ClassificationTitle *string `json:"classification_title"`
	DateStart           *int    `json:"date_start"`
}

// displayFields are the fields requested when field filtering is on
const displayFields = "id,artist_title,department_title,classification_title,date_start"
