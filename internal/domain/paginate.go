package domain

import "fmt"

const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

// Paginate cuts one page out of items. Cursors are the id of the first item
// of the page they start; next is empty when hasMore is false.
func Paginate[T any](items []T, idOf func(T) string, startCursor string, pageSize int) (page []T, next string, hasMore bool, err error) {
	switch {
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize < 0 || pageSize > MaxPageSize:
		return nil, "", false, ErrInvalidPageSize
	}

	start := 0
	if startCursor != "" {
		start = -1
		for i, item := range items {
			if idOf(item) == startCursor {
				start = i
				break
			}
		}
		if start < 0 {
			return nil, "", false, fmt.Errorf("%w: %s", ErrInvalidCursor, startCursor)
		}
	}

	end := start + pageSize
	if end >= len(items) {
		return items[start:], "", false, nil
	}
	return items[start:end], idOf(items[end]), true, nil
}
