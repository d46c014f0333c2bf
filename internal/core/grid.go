package core

import "github.com/pkg/errors"

// Sentinel errors for grid construction, in the gridgraph style: a
// package-prefixed message per failure mode so callers can match with
// errors.Is without parsing strings.
var (
	// ErrEmptyGrid indicates zero rows or zero columns were requested.
	ErrEmptyGrid = errors.New("core: grid must have at least one row and one column")
	// ErrNonRectangular indicates the supplied cell rows have differing
	// lengths.
	ErrNonRectangular = errors.New("core: all grid rows must have the same length")
)

// Grid is an immutable H x W matrix of cell statuses. It is built once per
// planning call and never mutated afterwards; every planner in
// internal/algo takes a read-only view of it.
type Grid struct {
	height, width int
	cellSideM     float64
	cells         []CellStatus // row-major, length height*width
}

// NewGrid constructs an all-Free grid of the given dimensions. cellSideM is
// the physical side length of a cell in meters, used only by CellCenter;
// pass 0 if physical coordinates are not needed.
func NewGrid(height, width int, cellSideM float64) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, ErrEmptyGrid
	}
	return &Grid{
		height:    height,
		width:     width,
		cellSideM: cellSideM,
		cells:     make([]CellStatus, height*width),
	}, nil
}

// NewGridFromRows builds a grid from a rectangular slice of per-cell
// statuses, deep-copying the input so later mutation by the caller cannot
// affect the planner (mirrors the immutability contract of §3).
func NewGridFromRows(rows [][]CellStatus, cellSideM float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g := &Grid{height: h, width: w, cellSideM: cellSideM, cells: make([]CellStatus, h*w)}
	for r, row := range rows {
		copy(g.cells[r*w:(r+1)*w], row)
	}
	return g, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// CellSideM returns the physical side length of one grid cell, in metres.
func (g *Grid) CellSideM() float64 { return g.cellSideM }

// InBounds reports whether c lies within [0,H) x [0,W).
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

func (g *Grid) index(c Cell) int {
	return c.Row*g.width + c.Col
}

// StatusAt returns the status of cell c. Callers must check InBounds first;
// out-of-bounds queries return PermanentObstacle defensively.
func (g *Grid) StatusAt(c Cell) CellStatus {
	if !g.InBounds(c) {
		return PermanentObstacle
	}
	return g.cells[g.index(c)]
}

// IsOpen reports whether c is in bounds and Free.
func (g *Grid) IsOpen(c Cell) bool {
	return g.InBounds(c) && g.StatusAt(c) == Free
}

// SetStatus marks a cell's status. Intended for use only while a grid is
// being constructed (e.g. by the peripheral instance generator); planning
// code never calls this, preserving the "immutable during a planning call"
// invariant of §3.
func (g *Grid) SetStatus(c Cell, status CellStatus) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = status
	}
}

// OpenNeighbors4 returns the 4-connected, in-bounds, Free neighbours of c,
// in a fixed order (up, right, down, left) so that results are
// deterministic across runs — required for the reproducibility property
// of §8 item 7.
func (g *Grid) OpenNeighbors4(c Cell) []Cell {
	candidates := [4]Cell{
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col + 1},
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
	}
	out := make([]Cell, 0, 4)
	for _, n := range candidates {
		if g.IsOpen(n) {
			out = append(out, n)
		}
	}
	return out
}

// CellCenter returns the world-space (x, y) coordinates of the cell's
// midpoint in meters, given the grid's cell side length. Row 0 is at the
// bottom of the world, so y grows with row and x grows with column —
// matching basic_grid_environment.py's grid_to_coord convention. This is
// informational only; the planning core never calls it.
func (g *Grid) CellCenter(c Cell) (x, y float64) {
	x = float64(c.Col)*g.cellSideM + g.cellSideM/2
	y = float64(c.Row)*g.cellSideM + g.cellSideM/2
	return x, y
}

// CellAt returns the grid cell containing the given world-space
// coordinates, the inverse of CellCenter (coord_to_grid in the original
// prototype).
func (g *Grid) CellAt(x, y float64) Cell {
	if g.cellSideM == 0 {
		return Cell{}
	}
	return Cell{Row: int(y / g.cellSideM), Col: int(x / g.cellSideM)}
}
