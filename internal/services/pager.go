package services

// Pager slices an ordered collection into fixed-size pages. Pages are
// 1-based. Out-of-range requests clamp to the nearest valid page.
// Pager is not safe for concurrent use; its owner serializes access.
type Pager[T any] struct {
	items []T
	size  int
	page  int
}

func NewPager[T any](size int) *Pager[T] {
	if size < 1 {
		size = 10
	}
	return &Pager[T]{size: size, page: 1}
}

// Replace swaps in a freshly fetched collection and re-clamps the current
// page, so shrinking the collection never leaves the page past the end.
func (p *Pager[T]) Replace(items []T) {
	p.items = items
	p.clamp()
}

func (p *Pager[T]) Items() []T { return p.items }
func (p *Pager[T]) Len() int   { return len(p.items) }
func (p *Pager[T]) Size() int  { return p.size }
func (p *Pager[T]) Page() int  { return p.page }

// TotalPages is ceil(len/size); 0 for an empty collection.
func (p *Pager[T]) TotalPages() int {
	return (len(p.items) + p.size - 1) / p.size
}

// Goto moves to page n, clamped into [1, max(1, TotalPages)].
func (p *Pager[T]) Goto(n int) int {
	p.page = n
	p.clamp()
	return p.page
}

func (p *Pager[T]) Next() int { return p.Goto(p.page + 1) }
func (p *Pager[T]) Prev() int { return p.Goto(p.page - 1) }

// Visible returns items[(page-1)*size : page*size], bounded by the length.
func (p *Pager[T]) Visible() []T {
	start := (p.page - 1) * p.size
	if start >= len(p.items) {
		return nil
	}
	end := min(start+p.size, len(p.items))
	return p.items[start:end]
}

func (p *Pager[T]) clamp() {
	last := max(p.TotalPages(), 1)
	if p.page > last {
		p.page = last
	}
	if p.page < 1 {
		p.page = 1
	}
}
