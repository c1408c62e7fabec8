package types

// Page is the paginated envelope the voucher backend wraps every listing
// in. PageNumber is 0-based. First and Last are derived from PageNumber
// and TotalPages and regenerated on every query.
type Page[T any] struct {
	Content       []T  `json:"content"`
	PageNumber    int  `json:"page_number"`
	PageSize      int  `json:"page_size"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// NewPage builds a page envelope with the derived fields computed. An
// empty result set still has one (empty) page so that First and Last
// stay meaningful.
func NewPage[T any](content []T, pageNumber, pageSize, totalElements int) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalElements + pageSize - 1) / pageSize
	}

	return Page[T]{
		Content:       content,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         pageNumber == 0,
		Last:          pageNumber >= totalPages-1,
	}
}

// MapPage converts a page of one element type into another while keeping
// the envelope untouched.
func MapPage[T any, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}
	return Page[U]{
		Content:       content,
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}
