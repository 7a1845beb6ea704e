package engine

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all valid directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a name such as "left" or "L" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("engine: unknown direction %q", s)
}

// collapseRow compacts a row to the left and merges equal neighbours in one
// left-to-right pass. A merged tile never merges again in the same move.
// Returns the new row, the score gained and whether anything changed.
func collapseRow(row []int) (result []int, score int, changed bool) {
	result = make([]int, len(row))
	writePos := 0
	merged := false // result[writePos-1] was produced by a merge

	for _, v := range row {
		if v == 0 {
			continue
		}

		if writePos > 0 && !merged && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = true
			continue
		}

		result[writePos] = v
		writePos++
		merged = false
	}

	for i := range row {
		if row[i] != result[i] {
			changed = true
			break
		}
	}

	return result, score, changed
}

// reverseRows returns a copy of the grid with every row reversed.
func reverseRows(g Grid) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		rev := make([]int, len(row))
		for j, v := range row {
			rev[len(row)-1-j] = v
		}
		out[i] = rev
	}
	return out
}

// transpose turns columns into rows. Column j holds, top to bottom, the
// cells of every row long enough to have index j, so ragged grids keep
// all their tiles.
func transpose(g Grid) Grid {
	w := g.Width()
	out := make(Grid, w)
	for j := range w {
		col := make([]int, 0, len(g))
		for _, row := range g {
			if j < len(row) {
				col = append(col, row[j])
			}
		}
		out[j] = col
	}
	return out
}

// untranspose is the inverse of transpose for a grid shaped like shape.
func untranspose(t Grid, shape Grid) Grid {
	out := make(Grid, len(shape))
	for i, row := range shape {
		out[i] = make([]int, len(row))
	}
	for j, col := range t {
		k := 0
		for i := range out {
			if j < len(out[i]) {
				out[i][j] = col[k]
				k++
			}
		}
	}
	return out
}

// collapseLeft collapses every row leftward.
func collapseLeft(g Grid) (Grid, int, bool) {
	out := make(Grid, len(g))
	total := 0
	changed := false

	for i, row := range g {
		newRow, score, rowChanged := collapseRow(row)
		out[i] = newRow
		total += score
		changed = changed || rowChanged
	}

	return out, total, changed
}

// SlideLeft slides all tiles left and merges.
// Returns the new grid, score gained, and whether the grid changed.
func SlideLeft(g Grid) (Grid, int, bool) {
	return collapseLeft(g)
}

// SlideRight slides all tiles right and merges.
func SlideRight(g Grid) (Grid, int, bool) {
	// Reverse, slide left, reverse back
	slid, score, changed := collapseLeft(reverseRows(g))
	return reverseRows(slid), score, changed
}

// SlideUp slides all tiles up and merges.
func SlideUp(g Grid) (Grid, int, bool) {
	// Transpose, slide left, transpose back
	slid, score, changed := collapseLeft(transpose(g))
	return untranspose(slid, g), score, changed
}

// SlideDown slides all tiles down and merges.
func SlideDown(g Grid) (Grid, int, bool) {
	// Transpose, slide right, transpose back
	slid, score, changed := SlideRight(transpose(g))
	return untranspose(slid, g), score, changed
}

// Slide performs a move in the given direction without spawning a tile.
// Returns the new grid, score gained, and whether the grid changed.
// It panics on an invalid direction: a silent no-op would look exactly
// like a blocked move.
func Slide(g Grid, dir Direction) (Grid, int, bool) {
	switch dir {
	case DirLeft:
		return SlideLeft(g)
	case DirRight:
		return SlideRight(g)
	case DirUp:
		return SlideUp(g)
	case DirDown:
		return SlideDown(g)
	default:
		panic(fmt.Sprintf("engine: invalid direction %d", int(dir)))
	}
}
