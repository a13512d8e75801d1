package pager

import "testing"

func newWithItems(pageSize, n int) *PagedList[int] {
	p := New[int](pageSize)
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	p.SetItems(items)
	return p
}

// TestPageCount checks page count = ceil(n/k) for a grid of sizes.
func TestPageCount(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{0, 1, 0},
		{0, 5, 0},
		{1, 1, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{10, 5, 2},
		{11, 5, 3},
		{100, 7, 15},
	}

	for _, tt := range tests {
		p := newWithItems(tt.k, tt.n)
		if got := p.PageCount(); got != tt.want {
			t.Errorf("n=%d k=%d: PageCount = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}

// TestCursorInvariant walks the full list in both directions and checks the
// cursor never leaves [0, len(current page)).
func TestCursorInvariant(t *testing.T) {
	for _, k := range []int{1, 2, 3, 5} {
		for _, n := range []int{0, 1, 4, 7, 12} {
			p := newWithItems(k, n)
			for i := 0; i < n+3; i++ {
				p.CursorDown()
				checkInvariant(t, p, n, k)
			}
			for i := 0; i < n+3; i++ {
				p.CursorUp()
				checkInvariant(t, p, n, k)
			}
		}
	}
}

func checkInvariant(t *testing.T, p *PagedList[int], n, k int) {
	t.Helper()
	if n == 0 {
		if p.Page() != 0 || p.Cursor() != 0 {
			t.Fatalf("empty list: page=%d cursor=%d, want 0/0", p.Page(), p.Cursor())
		}
		return
	}
	if p.Page() < 0 || p.Page() >= p.PageCount() {
		t.Fatalf("n=%d k=%d: page %d out of [0,%d)", n, k, p.Page(), p.PageCount())
	}
	if p.Cursor() < 0 || p.Cursor() >= p.pageLen(p.Page()) {
		t.Fatalf("n=%d k=%d: cursor %d out of [0,%d)", n, k, p.Cursor(), p.pageLen(p.Page()))
	}
}

// TestCursorCrossesPages checks that moving past a page edge advances or
// retreats a page and lands on the right item.
func TestCursorCrossesPages(t *testing.T) {
	p := newWithItems(3, 7) // pages: [0 1 2] [3 4 5] [6]

	for i := 0; i < 3; i++ {
		p.CursorDown()
	}
	if p.Page() != 1 || p.Cursor() != 0 || p.Index() != 3 {
		t.Errorf("after crossing forward: page=%d cursor=%d index=%d", p.Page(), p.Cursor(), p.Index())
	}

	p.CursorUp()
	if p.Page() != 0 || p.Cursor() != 2 || p.Index() != 2 {
		t.Errorf("after crossing back: page=%d cursor=%d index=%d", p.Page(), p.Cursor(), p.Index())
	}
}

// TestEndsAreNoOps checks that motion past the absolute ends does nothing.
func TestEndsAreNoOps(t *testing.T) {
	p := newWithItems(3, 7)

	p.CursorUp()
	if p.Index() != 0 {
		t.Errorf("CursorUp at top moved to %d", p.Index())
	}
	p.PageBack()
	if p.Page() != 0 {
		t.Errorf("PageBack at first page moved to %d", p.Page())
	}

	p.Select(6)
	p.CursorDown()
	if p.Index() != 6 {
		t.Errorf("CursorDown at bottom moved to %d", p.Index())
	}
	p.PageForward()
	if p.Page() != 2 {
		t.Errorf("PageForward at last page moved to %d", p.Page())
	}
}

// TestPageMotion checks PageBack/PageForward keep the cursor where possible
// and clamp it on short pages.
func TestPageMotion(t *testing.T) {
	p := newWithItems(3, 7)
	p.Select(2) // page 0, cursor 2

	p.PageForward()
	if p.Page() != 1 || p.Cursor() != 2 {
		t.Errorf("PageForward: page=%d cursor=%d, want 1/2", p.Page(), p.Cursor())
	}

	p.PageForward() // last page holds one item, cursor must clamp
	if p.Page() != 2 || p.Cursor() != 0 {
		t.Errorf("PageForward to short page: page=%d cursor=%d, want 2/0", p.Page(), p.Cursor())
	}

	p.PageBack()
	if p.Page() != 1 || p.Cursor() != 0 {
		t.Errorf("PageBack: page=%d cursor=%d, want 1/0", p.Page(), p.Cursor())
	}
}

// TestClampAfterShrink simulates deletions and checks the documented
// re-clamp rules.
func TestClampAfterShrink(t *testing.T) {
	// Cursor past the end of a shorter list clamps to the last item.
	p := newWithItems(5, 5)
	p.Select(4)
	p.SetItems([]int{0, 1, 2})
	if p.Page() != 0 || p.Cursor() != 2 {
		t.Errorf("shrink within page: page=%d cursor=%d, want 0/2", p.Page(), p.Cursor())
	}

	// Emptying the current page moves to the previous page.
	p = newWithItems(3, 7)
	p.Select(6) // page 2
	p.SetItems([]int{0, 1, 2, 3, 4, 5})
	if p.Page() != 1 || p.Cursor() != 0 {
		t.Errorf("shrink emptying page: page=%d cursor=%d, want 1/0", p.Page(), p.Cursor())
	}

	// Emptying the whole list resets to zero.
	p.SetItems(nil)
	if p.Page() != 0 || p.Cursor() != 0 || p.Index() != -1 {
		t.Errorf("empty: page=%d cursor=%d index=%d", p.Page(), p.Cursor(), p.Index())
	}
}

// TestSelectOutOfRange checks that Select ignores invalid indices.
func TestSelectOutOfRange(t *testing.T) {
	p := newWithItems(3, 4)
	p.Select(2)
	p.Select(-1)
	p.Select(4)
	if p.Index() != 2 {
		t.Errorf("Select out of range moved cursor to %d", p.Index())
	}
}

// TestPageItems checks the visible slice for full and partial pages.
func TestPageItems(t *testing.T) {
	p := newWithItems(3, 7)

	got := p.PageItems()
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("page 0 items = %v", got)
	}

	p.Select(6)
	got = p.PageItems()
	if len(got) != 1 || got[0] != 6 {
		t.Errorf("last page items = %v", got)
	}

	p.SetItems(nil)
	if got := p.PageItems(); got != nil {
		t.Errorf("empty list items = %v", got)
	}
}

// TestSetPageSize checks re-clamping when the page size changes.
func TestSetPageSize(t *testing.T) {
	p := newWithItems(5, 10)
	p.Select(9)

	p.SetPageSize(3) // index 9 lives on page 3
	if p.PageCount() != 4 {
		t.Errorf("PageCount = %d, want 4", p.PageCount())
	}
	checkInvariant(t, p, 10, 3)

	p.SetPageSize(0) // clamped to 1
	if p.PageSize() != 1 {
		t.Errorf("PageSize = %d, want 1", p.PageSize())
	}
	checkInvariant(t, p, 10, 1)
}
