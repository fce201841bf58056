package matchruns

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrDocumentInvalid = errors.New("document failed validation")
)

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeAITimeout  = "AI_TIMEOUT"
	ErrorCodeNoCatalog  = "NO_CATALOG_AVAILABLE"
	ErrorCodeStorage    = "STORAGE_ERROR"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)
