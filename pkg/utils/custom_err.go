package utils

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrPOINotFound          = errors.New("poi not found")
	ErrDatabaseError        = errors.New("database error")
	ErrCatalogUnavailable   = errors.New("catalog unavailable")
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
