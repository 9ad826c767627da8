package chesscrypt

type Piece int

const (
	Knight Piece = iota
	King
	Bishop
)

func (p Piece) String() string {
	return []string{"Knight", "King", "Bishop"}[p]
}

var knightOffsets = [8]Coord{
	{+2, +1}, {+2, -1},
	{-2, +1}, {-2, -1},
	{+1, +2}, {+1, -2},
	{-1, +2}, {-1, -2},
}

// knightMoves returns the 8 knight destinations from pos, wrapped onto the
// board. Destinations are not deduplicated: on small boards two offsets can
// land on the same square, and the repeat weights the random draw toward it.
// That bias is part of the generation scheme and must stay.
func knightMoves(pos Coord, side int) []Coord {
	moves := make([]Coord, 0, len(knightOffsets))
	for _, off := range knightOffsets {
		moves = append(moves, Coord{pos.Row + off.Row, pos.Col + off.Col}.wrap(side))
	}
	return moves
}

// kingMoves returns the 8 one-step destinations from pos, wrapped.
func kingMoves(pos Coord, side int) []Coord {
	moves := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			moves = append(moves, Coord{pos.Row + dr, pos.Col + dc}.wrap(side))
		}
	}
	return moves
}

var bishopDirections = [4]Coord{
	{+1, +1}, {+1, -1}, {-1, +1}, {-1, -1},
}

// bishopMoves walks side steps along each of the four diagonals, wrapping
// after every step and continuing from the wrapped square. The cumulative
// walk deliberately revisits squares once a diagonal cycles; every
// intermediate square is included, so the move set always has 4*side entries.
func bishopMoves(pos Coord, side int) []Coord {
	moves := make([]Coord, 0, 4*side)
	for _, dir := range bishopDirections {
		curr := pos
		for i := 0; i < side; i++ {
			curr = Coord{curr.Row + dir.Row, curr.Col + dir.Col}.wrap(side)
			moves = append(moves, curr)
		}
	}
	return moves
}

func (p Piece) moves(pos Coord, side int) []Coord {
	switch p {
	case Knight:
		return knightMoves(pos, side)
	case King:
		return kingMoves(pos, side)
	default:
		return bishopMoves(pos, side)
	}
}
