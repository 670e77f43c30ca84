package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrCatalogUnreachable indicates the catalog endpoint could not be reached
	ErrCatalogUnreachable = errors.New("catalog is unreachable")

	// ErrUnexpectedStatus indicates the catalog answered with a non-success status
	ErrUnexpectedStatus = errors.New("unexpected catalog status")

	// ErrMalformedResponse indicates the catalog body could not be decoded
	ErrMalformedResponse = errors.New("malformed catalog response")

	// ErrItemNotFound indicates a lookup returned no record
	ErrItemNotFound = errors.New("catalog item not found")
)
