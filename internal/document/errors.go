package document

import "errors"

// Load errors. They can be compared with errors.Is.
var (
	ErrInvalidEncoding = errors.New("document is not valid UTF-8")
	ErrInvalidJSON     = errors.New("document is not valid JSON")
	ErrNotArray        = errors.New("document must be a JSON array")
	ErrNotObject       = errors.New("document entries must be JSON objects")
	ErrTooLarge        = errors.New("document exceeds the size limit")
)
