package chesscrypt

// table is the side x side permutation grid, stored row-major. It starts as
// the identity permutation and is only ever mutated by pairwise swaps, so the
// multiset of cell values stays {0..side*side-1} throughout generation.
type table struct {
	side  int
	cells []int
}

func newTable(side int) *table {
	t := &table{
		side:  side,
		cells: make([]int, side*side),
	}
	for i := range t.cells {
		t.cells[i] = i
	}
	return t
}

func (t *table) at(c Coord) int {
	return t.cells[c.Row*t.side+c.Col]
}

// swap exchanges the values at a and b. A self-swap is a no-op.
func (t *table) swap(a, b Coord) {
	i := a.Row*t.side + a.Col
	j := b.Row*t.side + b.Col
	t.cells[i], t.cells[j] = t.cells[j], t.cells[i]
}

// flatten returns a copy of the cell values in row-major order.
func (t *table) flatten() []int {
	out := make([]int, len(t.cells))
	copy(out, t.cells)
	return out
}
