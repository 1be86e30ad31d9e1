package lattice

import (
	"github.com/zyedidia/generic/mapset"

	"blobdungeon/pkg/engine/world"
)

// Frontier is an insertion-ordered set of cells. Carving walks heads in the
// order they were reached so that a seed always replays the same dungeon.
type Frontier struct {
	cells []world.Cell
	seen  mapset.Set[world.Cell]
}

// NewFrontier creates a frontier holding the given cells
func NewFrontier(cells ...world.Cell) *Frontier {
	f := &Frontier{seen: mapset.New[world.Cell]()}
	for _, c := range cells {
		f.Add(c)
	}
	return f
}

// Add appends a cell unless it is already present
func (f *Frontier) Add(c world.Cell) {
	if f.seen.Has(c) {
		return
	}
	f.seen.Put(c)
	f.cells = append(f.cells, c)
}

// Has reports whether the cell is in the frontier
func (f *Frontier) Has(c world.Cell) bool {
	return f.seen.Has(c)
}

// Len returns the number of cells
func (f *Frontier) Len() int {
	return len(f.cells)
}

// Cells returns the cells in insertion order
func (f *Frontier) Cells() []world.Cell {
	return f.cells
}
