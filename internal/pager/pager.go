// Package pager implements the cursor/page state machine behind every list
// screen. Invariants held at all times:
//
//	0 <= cursor < len(current page)   (cursor == 0 when empty)
//	0 <= page   < ceil(n/k)           (page == 0 when empty)
package pager

// PagedList tracks pagination state over an ordered list of items.
type PagedList[T any] struct {
	items    []T
	pageSize int
	page     int
	cursor   int
}

// New creates an empty list with the given page size. Page sizes below 1 are
// raised to 1.
func New[T any](pageSize int) *PagedList[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &PagedList[T]{pageSize: pageSize}
}

// SetItems replaces the items and re-clamps the cursor and page. After a
// shrink that empties the current page the cursor lands on the previous
// page; otherwise it clamps to the last valid index of the shorter page.
func (p *PagedList[T]) SetItems(items []T) {
	p.items = items
	p.clamp()
}

// SetPageSize changes the page size (terminal resize) and re-clamps.
func (p *PagedList[T]) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	p.pageSize = size
	p.clamp()
}

// Len returns the total item count.
func (p *PagedList[T]) Len() int {
	return len(p.items)
}

// PageSize returns the configured page size.
func (p *PagedList[T]) PageSize() int {
	return p.pageSize
}

// PageCount returns ceil(n/k); 0 for an empty list.
func (p *PagedList[T]) PageCount() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// Page returns the current page index.
func (p *PagedList[T]) Page() int {
	return p.page
}

// Cursor returns the cursor position within the current page.
func (p *PagedList[T]) Cursor() int {
	return p.cursor
}

// Index returns the absolute index of the selected item, or -1 when empty.
func (p *PagedList[T]) Index() int {
	if len(p.items) == 0 {
		return -1
	}
	return p.page*p.pageSize + p.cursor
}

// Selected returns the item under the cursor.
func (p *PagedList[T]) Selected() (T, bool) {
	idx := p.Index()
	if idx < 0 {
		var zero T
		return zero, false
	}
	return p.items[idx], true
}

// Select moves directly to the item at the given absolute index. Out-of-range
// indices are ignored.
func (p *PagedList[T]) Select(idx int) {
	if idx < 0 || idx >= len(p.items) {
		return
	}
	p.page = idx / p.pageSize
	p.cursor = idx % p.pageSize
}

// PageItems returns the slice of items visible on the current page.
func (p *PagedList[T]) PageItems() []T {
	if len(p.items) == 0 {
		return nil
	}
	start := p.page * p.pageSize
	end := start + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// pageLen returns the number of items on the given page.
func (p *PagedList[T]) pageLen(page int) int {
	start := page * p.pageSize
	if start >= len(p.items) {
		return 0
	}
	remaining := len(p.items) - start
	if remaining > p.pageSize {
		return p.pageSize
	}
	return remaining
}

// CursorUp moves the cursor one item up. Crossing the top of a page retreats
// to the last item of the previous page; at the very top it is a no-op.
func (p *PagedList[T]) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
		return
	}
	if p.page > 0 {
		p.page--
		p.cursor = p.pageLen(p.page) - 1
	}
}

// CursorDown moves the cursor one item down. Crossing the bottom of a page
// advances to the first item of the next page; at the very bottom it is a
// no-op.
func (p *PagedList[T]) CursorDown() {
	if p.cursor < p.pageLen(p.page)-1 {
		p.cursor++
		return
	}
	if p.page+1 < p.PageCount() {
		p.page++
		p.cursor = 0
	}
}

// PageBack moves one page back, keeping the cursor position where possible.
func (p *PagedList[T]) PageBack() {
	if p.page == 0 {
		return
	}
	p.page--
	p.clampCursor()
}

// PageForward moves one page forward, keeping the cursor position where
// possible.
func (p *PagedList[T]) PageForward() {
	if p.page+1 >= p.PageCount() {
		return
	}
	p.page++
	p.clampCursor()
}

func (p *PagedList[T]) clamp() {
	if len(p.items) == 0 {
		p.page = 0
		p.cursor = 0
		return
	}
	if last := p.PageCount() - 1; p.page > last {
		p.page = last
	}
	p.clampCursor()
}

func (p *PagedList[T]) clampCursor() {
	if n := p.pageLen(p.page); p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}
