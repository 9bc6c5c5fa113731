package news

import "errors"

var (
	ErrArticleNotFound = errors.New("news article not found")
	ErrEmptyContent    = errors.New("article page yielded no content or date")
)
