package chesscrypt

import "fmt"

// Coord is a position on the cyclic board, row-major.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// wrap reduces v into [0, side) using true mathematical modulo, so
// negative offsets wrap to the opposite edge instead of truncating.
func wrap(v, side int) int {
	return ((v % side) + side) % side
}

func (c Coord) wrap(side int) Coord {
	return Coord{Row: wrap(c.Row, side), Col: wrap(c.Col, side)}
}
