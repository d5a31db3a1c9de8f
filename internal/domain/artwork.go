package domain

import "strconv"

// PageSize is the number of records the catalog returns per page
const PageSize = 12

// Artwork is a single catalog record
type Artwork struct {
	ID             int    `json:"id"`
	Artist         string `json:"artist"`
	Department     string `json:"department"`
	Classification string `json:"classification"`
	DateStart      int    `json:"date_start"`
}

// StartYear returns the start date for display ("" when unknown)
func (a Artwork) StartYear() string {
	if a.DateStart == 0 {
		return ""
	}
	return strconv.Itoa(a.DateStart)
}

// SearchText returns the text used when filtering records
func (a Artwork) SearchText() string {
	return a.Artist + " " + a.Department + " " + a.Classification
}

// Page is one page of catalog records
type Page struct {
	Records []Artwork
	// Total is the record count reported by the source; nil when absent
	Total *int
}
