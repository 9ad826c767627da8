package chesscrypt

import (
	"log/slog"
	"math/rand"
	"time"
)

var log = slog.Default().With("package", "chesscrypt")

// Rand draws the uniform move selection. *math/rand.Rand satisfies it; tests
// and reproducible runs inject a seeded instance via WithRand or WithSeed.
type Rand interface {
	Intn(n int) int
}

type EngineOptions struct {
	Seed int64 // used when Rand is nil; 0 means time-based
	Rand Rand
}

type EngineOption func(*EngineOptions)

func WithSeed(seed int64) EngineOption {
	return func(opts *EngineOptions) {
		opts.Seed = seed
	}
}

func WithRand(r Rand) EngineOption {
	return func(opts *EngineOptions) {
		opts.Rand = r
	}
}

// walkOrder is the fixed per-iteration piece order. Each piece's swap lands
// on the shared table before the next piece draws, so reordering would change
// the generated permutation for a given seed.
var walkOrder = [3]Piece{Knight, King, Bishop}

// Engine wanders three chess pieces over a cyclic board, swapping permutation
// table cells as they go. One engine owns one table; Run may be called again
// to keep walking from the current cursors and table state, it never resets.
type Engine struct {
	side    int
	tbl     *table
	rng     Rand
	cursors [3]Coord // indexed by Piece
}

// NewEngine creates an engine over a size x size table initialized to the
// identity permutation. Sizes below 3 are rejected: knight and bishop walks
// degenerate on smaller boards.
func NewEngine(size int, opts ...EngineOption) (*Engine, error) {
	if size < 3 {
		return nil, ErrBoardTooSmall
	}

	engineOpts := EngineOptions{}
	for _, opt := range opts {
		opt(&engineOpts)
	}

	rng := engineOpts.Rand
	if rng == nil {
		seed := engineOpts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	e := &Engine{
		side: size,
		tbl:  newTable(size),
		rng:  rng,
	}
	e.cursors[Knight] = Coord{size / 2, size / 2}
	e.cursors[King] = Coord{0, 0}
	e.cursors[Bishop] = Coord{size - 1, size - 1}
	return e, nil
}

func (e *Engine) Size() int {
	return e.side
}

// Run performs iterations walk steps, each moving Knight, King and Bishop in
// that order. It mutates the table in place and leaves the cursors where the
// pieces stopped.
func (e *Engine) Run(iterations int) error {
	return e.run(iterations, nil)
}

func (e *Engine) run(iterations int, emit func(*SwapEvent)) error {
	if iterations < 0 {
		return ErrNegativeIterations
	}
	for i := 0; i < iterations; i++ {
		for _, piece := range walkOrder {
			ev := e.step(piece)
			if emit != nil {
				ev.Iteration = i
				emit(&ev)
			}
		}
	}
	return nil
}

// step enumerates the piece's moves from its cursor, draws one uniformly
// (duplicate destinations stay in the draw and weight it accordingly), swaps
// the two cells and advances the cursor.
func (e *Engine) step(piece Piece) SwapEvent {
	from := e.cursors[piece]
	moves := piece.moves(from, e.side)
	to := moves[e.rng.Intn(len(moves))]
	e.tbl.swap(from, to)
	e.cursors[piece] = to
	return SwapEvent{
		Piece: piece,
		From:  from,
		To:    to,
		A:     e.tbl.at(from),
		B:     e.tbl.at(to),
	}
}

// SBox returns a read-only snapshot of the current table. The snapshot is
// detached: further Run calls do not affect it.
func (e *Engine) SBox() *SBox {
	return &SBox{side: e.side, cells: e.tbl.flatten()}
}
