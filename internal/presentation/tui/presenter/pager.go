// Package presenter derives view models for the TUI from digest results.
package presenter

// PageSize is the fixed number of articles shown per page.
const PageSize = 6

// Pager windows an article list into fixed-size pages. It is derived
// state: resetting with a new item count always lands on page one.
type Pager struct {
	current int
	items   int
}

// NewPager creates a pager positioned on the first page.
func NewPager(totalItems int) Pager {
	if totalItems < 0 {
		totalItems = 0
	}
	return Pager{current: 1, items: totalItems}
}

// Current returns the 1-based current page.
func (p Pager) Current() int { return p.current }

// TotalItems returns the number of items being paged.
func (p Pager) TotalItems() int { return p.items }

// TotalPages returns ceil(totalItems / PageSize).
func (p Pager) TotalPages() int {
	return (p.items + PageSize - 1) / PageSize
}

// Bounds returns the half-open [start, end) window of the current page.
func (p Pager) Bounds() (int, int) {
	start := (p.current - 1) * PageSize
	if start > p.items {
		start = p.items
	}
	end := start + PageSize
	if end > p.items {
		end = p.items
	}
	return start, end
}

// GoToPage moves to page n, clamped into the valid range.
func (p *Pager) GoToPage(n int) {
	total := p.TotalPages()
	if total == 0 {
		p.current = 1
		return
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	p.current = n
}

// Next advances one page; a no-op on the last page.
func (p *Pager) Next() {
	if p.current < p.TotalPages() {
		p.current++
	}
}

// Prev goes back one page; a no-op on the first page.
func (p *Pager) Prev() {
	if p.current > 1 {
		p.current--
	}
}
