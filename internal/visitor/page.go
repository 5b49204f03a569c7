package visitor

// DefaultPageSize is the number of rows per table page.
const DefaultPageSize = 10

// Window is one page of an ordered sequence.
type Window[T any] struct {
	Visible    []T `json:"visible"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// HasPrev reports whether a previous page exists.
func (w Window[T]) HasPrev() bool { return w.Page > 1 }

// HasNext reports whether a following page exists.
func (w Window[T]) HasNext() bool { return w.Page < w.TotalPages }

// Paginate returns page (1-based) of items. TotalPages is never below 1,
// so an empty sequence is "page 1 of 1". The visible slice is
// items[(page-1)*size : page*size] clamped to the bounds of items; pages
// past the end are empty. A page below 1 is treated as 1 and a
// non-positive size as DefaultPageSize.
func Paginate[T any](items []T, page, size int) Window[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}

	// Bounds are compared before multiplying so huge pages and sizes
	// cannot overflow.
	start := total
	if page <= pages {
		start = (page - 1) * size
	}
	end := total
	if total-start > size {
		end = start + size
	}

	return Window[T]{
		Visible:    items[start:end:end],
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		Total:      total,
	}
}
