package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrInvalidBulkCount indicates the bulk selection target is missing or not positive
	ErrInvalidBulkCount = errors.New("provide a valid value")

	// ErrCatalogUnreachable indicates the catalog API could not be reached
	ErrCatalogUnreachable = errors.New("catalog is unreachable")

	// ErrCatalogStatus indicates the catalog answered with a non-success status
	ErrCatalogStatus = errors.New("unexpected catalog status")

	// ErrCatalogDecode indicates the catalog response could not be parsed
	ErrCatalogDecode = errors.New("malformed catalog response")
)
