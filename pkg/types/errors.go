package types

import "errors"

// Domain errors shared across packages
var (
	// Enrichment error classification. Transient errors are retried with
	// backoff; permanent errors fail the file immediately.
	ErrTransient = errors.New("transient enrichment error")
	ErrPermanent = errors.New("permanent enrichment error")

	// ErrNoProvider indicates no enrichment provider could be configured
	ErrNoProvider = errors.New("no enrichment provider configured")

	// ErrEmptyContent indicates a request with nothing to enrich
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrRunInProgress indicates another generation run holds the run lock
	ErrRunInProgress = errors.New("generation already in progress")
)
