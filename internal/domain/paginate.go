package domain

// Page is a bounded window over an ordered row sequence plus page-count
// metadata. TotalPages is the exact ceil(len/size); DisplayTotalPages maps
// the empty case to 1 for presentation.
type Page[T any] struct {
	Rows       []T `json:"rows"`
	TotalPages int `json:"totalPages"`
}

// DisplayTotalPages never reports fewer than one page.
func (p Page[T]) DisplayTotalPages() int {
	if p.TotalPages < 1 {
		return 1
	}
	return p.TotalPages
}

// Paginate windows rows into the half-open slice
// [(page-1)*size, page*size), clipped to the available length.
//
// Page numbers are 1-based. Paginate never errors: an out-of-range page (or
// a non-positive size) simply yields an empty Rows slice. Clamping the page
// to [1, TotalPages] — and gating prev/next transitions at the boundaries —
// is the caller's job; see ClampPage.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if size <= 0 {
		return Page[T]{}
	}

	p := Page[T]{TotalPages: (len(rows) + size - 1) / size}

	start := (page - 1) * size
	if page < 1 || start >= len(rows) {
		return p
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	p.Rows = rows[start:end]
	return p
}

// ClampPage restricts a requested page number to [1, totalPages], treating
// an empty result set (totalPages < 1) as a single page.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages computes the page count for a row count without materializing a
// page, for callers that clamp before paginating.
func TotalPages(rowCount, size int) int {
	if size <= 0 {
		return 0
	}
	return (rowCount + size - 1) / size
}
