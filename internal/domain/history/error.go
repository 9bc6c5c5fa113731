package history

import "errors"

var (
	ErrEntryNotFound  = errors.New("historical entry not found")
	ErrNoDataInWindow = errors.New("no historical data in window")
	ErrMalformedQuote = errors.New("malformed quote string")
)
