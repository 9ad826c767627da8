package chesscrypt

import (
	"encoding/json"
	"fmt"
	"math"
)

// SBox is a finished substitution table. It is immutable: the generating
// engine hands over a detached copy of its cells.
type SBox struct {
	side  int
	cells []int
}

func (s *SBox) Size() int {
	return s.side
}

// Domain returns the number of values the table maps, side squared.
func (s *SBox) Domain() int {
	return s.side * s.side
}

func (s *SBox) At(row, col int) int {
	return s.cells[row*s.side+col]
}

// Substitute maps in through the table: the input indexes the table row-major.
func (s *SBox) Substitute(in int) (int, error) {
	if in < 0 || in >= s.side*s.side {
		return 0, fmt.Errorf("substitute %d: %w", in, ErrOutOfRange)
	}
	return s.cells[(in/s.side)*s.side+in%s.side], nil
}

// Flatten returns the table values in row-major order.
func (s *SBox) Flatten() []int {
	out := make([]int, len(s.cells))
	copy(out, s.cells)
	return out
}

type SBoxStats struct {
	IsBijective bool
	Min         int
	Max         int
	Mean        float64
	StdDev      float64
}

func (st SBoxStats) String() string {
	return fmt.Sprintf("bijective=%t min=%d max=%d mean=%.2f stddev=%.2f",
		st.IsBijective, st.Min, st.Max, st.Mean, st.StdDev)
}

type sboxStatsJSON struct {
	IsBijective bool    `json:"isBijective"`
	Min         int     `json:"minValue"`
	Max         int     `json:"maxValue"`
	Mean        float64 `json:"meanValue"`
	StdDev      float64 `json:"stdDev"`
}

// MarshalJSON implements custom JSON serialization for SBoxStats
func (st SBoxStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(sboxStatsJSON{
		IsBijective: st.IsBijective,
		Min:         st.Min,
		Max:         st.Max,
		Mean:        st.Mean,
		StdDev:      st.StdDev,
	})
}

// Stats summarizes the flattened table. A table produced only through engine
// swaps is always bijective; a non-bijective result means something outside
// the engine corrupted the cells, so it is reported as ErrBijectivityViolation
// alongside the computed stats rather than as a normal outcome.
func (s *SBox) Stats() (SBoxStats, error) {
	flat := s.cells
	seen := make([]bool, len(flat))
	distinct := 0

	min, max := flat[0], flat[0]
	sum := 0.0
	for _, v := range flat {
		if v >= 0 && v < len(seen) && !seen[v] {
			seen[v] = true
			distinct++
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += float64(v)
	}
	mean := sum / float64(len(flat))

	variance := 0.0
	for _, v := range flat {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(flat))

	stats := SBoxStats{
		IsBijective: distinct == len(flat),
		Min:         min,
		Max:         max,
		Mean:        mean,
		StdDev:      math.Sqrt(variance),
	}
	if !stats.IsBijective {
		return stats, fmt.Errorf("%d distinct values in %d cells: %w",
			distinct, len(flat), ErrBijectivityViolation)
	}
	return stats, nil
}
