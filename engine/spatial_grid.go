package engine

import (
	"github.com/ohade/strategy-game/core"
)

// SpatialGrid buckets entities into square cells for broad-phase collision
// queries. Cell size must be at least twice the largest collision radius so
// every overlapping pair lands in the same or an adjacent cell
type SpatialGrid struct {
	CellSize float64
	Cols     int
	Rows     int
	cells    [][]core.Entity
}

// NewSpatialGrid creates a grid covering a world of the given dimensions
func NewSpatialGrid(worldWidth, worldHeight, cellSize float64) *SpatialGrid {
	cols := int(worldWidth/cellSize) + 1
	rows := int(worldHeight/cellSize) + 1
	return &SpatialGrid{
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		cells:    make([][]core.Entity, cols*rows),
	}
}

// cellIndex clamps world coordinates into grid bounds; units off the map
// edge still participate in collision
func (g *SpatialGrid) cellIndex(x, y float64) int {
	cx := int(x / g.CellSize)
	cy := int(y / g.CellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= g.Cols {
		cx = g.Cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.Rows {
		cy = g.Rows - 1
	}
	return cy*g.Cols + cx
}

// Insert adds an entity at its world position
func (g *SpatialGrid) Insert(e core.Entity, x, y float64) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], e)
}

// Neighbors appends every entity in the 3x3 cell block around (x, y) to
// out and returns it. Callers own deduplication and the self check.
// The center cell is clamped exactly like Insert, so units off the map
// edge query the same edge cell they were bucketed into
func (g *SpatialGrid) Neighbors(x, y float64, out []core.Entity) []core.Entity {
	cx := int(x / g.CellSize)
	cy := int(y / g.CellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= g.Cols {
		cx = g.Cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.Rows {
		cy = g.Rows - 1
	}

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := cx+dx, cy+dy
			if nx < 0 || nx >= g.Cols || ny < 0 || ny >= g.Rows {
				continue
			}
			out = append(out, g.cells[ny*g.Cols+nx]...)
		}
	}
	return out
}

// Clear empties all cells but keeps their backing arrays, so the per-tick
// rebuild does not reallocate
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}
