// Package engine implements the 2048 grid transformation rules.
// It holds no state between calls: every operation takes a grid and
// returns a new one, so callers own the game session.
package engine

import (
	"fmt"
	"strings"
)

// DefaultSize is the default grid dimension.
const DefaultSize = 4

// Grid is a board of cell values stored row by row. Zero means empty.
// Rows normally share one length, but every operation tolerates ragged rows.
type Grid [][]int

// Cell addresses a single grid position.
type Cell struct {
	Row, Col int
}

// NewGrid returns an n x n grid of zeros.
// n <= 0 yields an empty grid.
func NewGrid(n int) Grid {
	if n <= 0 {
		return Grid{}
	}
	g := make(Grid, n)
	for i := range g {
		g[i] = make([]int, n)
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether both grids have the same shape and values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns the positions of all zero cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for i, row := range g {
		for j, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: i, Col: j})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if at least one cell is zero.
func (g Grid) HasEmptyCell() bool {
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, row := range g {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// TileCount returns the number of non-empty cells.
func (g Grid) TileCount() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// String formats the grid as right-aligned columns, one row per line.
func (g Grid) String() string {
	var sb strings.Builder
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				sb.WriteString("     .")
				continue
			}
			fmt.Fprintf(&sb, "%6d", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
