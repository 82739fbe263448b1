package mda

import "fmt"

// RelativeTo selects the point of the grid the tile offsets are relative to.
type RelativeTo string

const (
	// GridCenter centers the grid around the active position.
	GridCenter RelativeTo = "center"

	// GridTopLeft places the first tile at the active position.
	GridTopLeft RelativeTo = "top_left"
)

// OrderMode selects the traversal order of grid tiles.
type OrderMode string

const (
	OrderRowWise         OrderMode = "row_wise"
	OrderColumnWise      OrderMode = "column_wise"
	OrderRowWiseSnake    OrderMode = "row_wise_snake"
	OrderColumnWiseSnake OrderMode = "column_wise_snake"
	OrderSpiral          OrderMode = "spiral"
)

// ValidOrderModes defines the allowed traversal modes.
var ValidOrderModes = map[OrderMode]bool{
	OrderRowWise:         true,
	OrderColumnWise:      true,
	OrderRowWiseSnake:    true,
	OrderColumnWiseSnake: true,
	OrderSpiral:          true,
}

// GridTile is the per-step value of the grid axis: one field of view within
// the grid, as an x/y displacement from the active stage position.
type GridTile struct {
	// Row and Col locate the tile within the grid.
	Row, Col int

	// DX and DY are the tile's offsets from the active position.
	DX, DY float64

	// Name is the zero-padded enumeration name of the tile ("0000", ...).
	Name string
}

// GridPlan describes the grid-tile axis: a rows x columns raster of fields of
// view visited in a configurable order. Tile offsets are relative to the
// active stage position.
type GridPlan struct {
	// Rows and Columns define the raster. Both must be >= 1.
	Rows, Columns int

	// RelativeTo selects whether the raster is centered on the active
	// position or anchored at its top-left tile. Empty means centered.
	RelativeTo RelativeTo

	// OverlapX and OverlapY are the percent overlap between neighboring
	// fields of view along each dimension.
	OverlapX, OverlapY float64

	// FOVWidth and FOVHeight are the field-of-view dimensions. When zero, a
	// unit field of view is assumed and acquisition engines substitute the
	// camera's real dimensions downstream.
	FOVWidth, FOVHeight float64

	// Mode is the traversal order. Empty means row-wise snake.
	Mode OrderMode
}

// NumTiles returns the number of tiles in the raster.
func (p *GridPlan) NumTiles() int {
	if p.Rows < 1 || p.Columns < 1 {
		return 0
	}
	return p.Rows * p.Columns
}

// stepSize returns the center-to-center spacing of neighboring tiles.
func (p *GridPlan) stepSize() (dx, dy float64) {
	w, h := p.FOVWidth, p.FOVHeight
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w - w*p.OverlapX/100, h - h*p.OverlapY/100
}

// Tiles returns every tile of the raster in traversal order. The result is a
// pure function of the plan's parameters.
func (p *GridPlan) Tiles() []GridTile {
	dx, dy := p.stepSize()

	x0, y0 := 0.0, 0.0
	if p.RelativeTo == "" || p.RelativeTo == GridCenter {
		x0 = -(float64(p.Columns-1) * dx) / 2
		y0 = (float64(p.Rows-1) * dy) / 2
	}

	order := p.Mode
	if order == "" {
		order = OrderRowWiseSnake
	}

	rcs := traversalIndices(order, p.Rows, p.Columns)
	tiles := make([]GridTile, len(rcs))
	for i, rc := range rcs {
		tiles[i] = GridTile{
			Row:  rc[0],
			Col:  rc[1],
			DX:   x0 + float64(rc[1])*dx,
			DY:   y0 - float64(rc[0])*dy,
			Name: fmt.Sprintf("%04d", i),
		}
	}
	return tiles
}

// TileAt returns the tile at a step in traversal order.
func (p *GridPlan) TileAt(step int) (GridTile, error) {
	n := p.NumTiles()
	if step < 0 || step >= n {
		return GridTile{}, NewStepError(AxisGrid, step, n)
	}
	return p.Tiles()[step], nil
}

// traversalIndices yields (row, col) pairs for each traversal mode.
func traversalIndices(mode OrderMode, rows, cols int) [][2]int {
	out := make([][2]int, 0, rows*cols)
	switch mode {
	case OrderRowWise, OrderRowWiseSnake:
		for r := 0; r < rows; r++ {
			if mode == OrderRowWiseSnake && r%2 == 1 {
				for c := cols - 1; c >= 0; c-- {
					out = append(out, [2]int{r, c})
				}
			} else {
				for c := 0; c < cols; c++ {
					out = append(out, [2]int{r, c})
				}
			}
		}
	case OrderColumnWise, OrderColumnWiseSnake:
		for c := 0; c < cols; c++ {
			if mode == OrderColumnWiseSnake && c%2 == 1 {
				for r := rows - 1; r >= 0; r-- {
					out = append(out, [2]int{r, c})
				}
			} else {
				for r := 0; r < rows; r++ {
					out = append(out, [2]int{r, c})
				}
			}
		}
	case OrderSpiral:
		out = spiralIndices(rows, cols)
	}
	return out
}

// spiralIndices walks outward from the grid center in a clockwise square
// spiral, keeping only in-bounds cells, until every cell is visited.
func spiralIndices(rows, cols int) [][2]int {
	total := rows * cols
	out := make([][2]int, 0, total)

	r, c := (rows-1)/2, (cols-1)/2
	// direction cycle: right, down, left, up; run length grows every two turns
	dirs := [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	dir, run := 0, 1

	appendIfInBounds := func(r, c int) {
		if r >= 0 && r < rows && c >= 0 && c < cols {
			out = append(out, [2]int{r, c})
		}
	}

	appendIfInBounds(r, c)
	for len(out) < total {
		for leg := 0; leg < 2 && len(out) < total; leg++ {
			for i := 0; i < run && len(out) < total; i++ {
				r += dirs[dir][0]
				c += dirs[dir][1]
				appendIfInBounds(r, c)
			}
			dir = (dir + 1) % 4
		}
		run++
	}
	return out
}
