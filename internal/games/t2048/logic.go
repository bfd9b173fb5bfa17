package t2048

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

// Directions lists every valid direction in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the canonical token for the direction.
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

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a direction token ("up", "l", "RIGHT", ...) to a Direction.
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
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
}

// horizontal reports whether the move runs along rows.
func (d Direction) horizontal() bool {
	return d == DirLeft || d == DirRight
}

// towardHigh reports whether tiles travel toward increasing indices.
func (d Direction) towardHigh() bool {
	return d == DirRight || d == DirDown
}

// Cell addresses a grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is a square board of tile values. Zero marks an empty cell.
// Rows share one backing array so a clone is a single allocation.
type Grid [][]int

// NewGrid returns an empty size x size grid.
func NewGrid(size int) Grid {
	if size <= 0 {
		return Grid{}
	}
	backing := make([]int, size*size)
	g := make(Grid, size)
	for r := range size {
		g[r] = backing[r*size : (r+1)*size : (r+1)*size]
	}
	return g
}

// GridFromRows copies rows into a new grid. Rows must form a square.
func GridFromRows(rows [][]int) (Grid, error) {
	n := len(rows)
	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidArgument, r, len(row), n)
		}
		copy(g[r], row)
	}
	return g, nil
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := NewGrid(len(g))
	for r := range g {
		copy(c[r], g[r])
	}
	return c
}

// Equal reports whether both grids hold the same values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two adjacent tiles hold the same value.
func (g Grid) HasPossibleMerge() bool {
	n := len(g)
	for r := range n {
		for c := range n {
			val := g[r][c]
			if c < n-1 && g[r][c+1] == val {
				return true
			}
			if r < n-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func (g Grid) CanMove() bool {
	return g.HasEmptyCell() || g.HasPossibleMerge()
}

// MaxTile returns the largest tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range g {
		for _, v := range g[r] {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// Contains reports whether any cell holds value.
func (g Grid) Contains(value int) bool {
	for r := range g {
		for _, v := range g[r] {
			if v == value {
				return true
			}
		}
	}
	return false
}

// TileCount returns the number of non-empty cells.
func (g Grid) TileCount() int {
	count := 0
	for r := range g {
		for _, v := range g[r] {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// Valid reports whether every non-zero cell is a power of two >= 2.
func (g Grid) Valid() bool {
	for r := range g {
		for _, v := range g[r] {
			if v != 0 && !isTileValue(v) {
				return false
			}
		}
	}
	return true
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// lineCell maps the i-th cell of line k to grid coordinates. Index 0 is the
// cell on the edge the tiles travel toward.
func lineCell(dir Direction, n, k, i int) (row, col int) {
	pos := i
	if dir.towardHigh() {
		pos = n - 1 - i
	}
	if dir.horizontal() {
		return k, pos
	}
	return pos, k
}

// slide moves every tile toward dir in place and merges equal neighbours.
// Each line is walked from the destination edge outward: a tile first slides
// through empty cells, then merges into the adjacent destination-side tile
// if the values match and that tile was not itself created by a merge in
// this move. Returns the score gained and whether any cell changed.
func slide(g Grid, dir Direction) (score int, moved bool) {
	n := len(g)
	merged := make([]bool, n)

	for k := range n {
		clear(merged)
		for i := 1; i < n; i++ {
			r, c := lineCell(dir, n, k, i)
			v := g[r][c]
			if v == 0 {
				continue
			}

			j := i
			for j > 0 {
				pr, pc := lineCell(dir, n, k, j-1)
				if g[pr][pc] != 0 {
					break
				}
				j--
			}

			tr, tc := lineCell(dir, n, k, j)
			if j != i {
				g[tr][tc] = v
				g[r][c] = 0
				moved = true
			}

			if j == 0 || merged[j-1] {
				continue
			}
			nr, nc := lineCell(dir, n, k, j-1)
			if g[nr][nc] == v {
				g[nr][nc] = v * 2
				g[tr][tc] = 0
				merged[j-1] = true
				score += v * 2
				moved = true
			}
		}
	}

	return score, moved
}

// Slide performs a move on a copy of grid.
// Returns the new grid, score gained, and whether the grid changed.
func Slide(grid Grid, dir Direction) (Grid, int, bool) {
	if !dir.Valid() {
		return grid.Clone(), 0, false
	}
	next := grid.Clone()
	score, moved := slide(next, dir)
	return next, score, moved
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(grid Grid) bool {
	return !grid.CanMove()
}
