package stock

import "errors"

var (
	ErrStockNotFound = errors.New("stock not found")
	ErrMissingCode   = errors.New("stock code is required")
	ErrDuplicateCode = errors.New("stock code already tracked")
)
