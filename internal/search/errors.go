package search

import "errors"

// ErrEmptyQuery means the request carried neither text nor image data.
var ErrEmptyQuery = errors.New("query must contain text or image data")
