// Package world provides generic 3D lattice primitives: directions, cell
// coordinates and bounding dimensions. These are engine-level constructs
// with no knowledge of what a cell contains.
package world

import "fmt"

// Cell is an integer coordinate in the lattice. Y is the vertical level;
// X and Z span the horizontal plane of a level.
type Cell struct {
	X, Y, Z int
}

// NewCell creates a cell at the given position
func NewCell(x, y, z int) Cell {
	return Cell{X: x, Y: y, Z: z}
}

// String returns the cell as "x,y,z", the form used by the layout format
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// Step returns the adjacent cell in the given direction
func (c Cell) Step(dir Direction) Cell {
	return c.StepN(dir, 1)
}

// StepN returns the cell n steps away in the given direction
func (c Cell) StepN(dir Direction, n int) Cell {
	dx, dy, dz := dir.Delta()
	return Cell{X: c.X + n*dx, Y: c.Y + n*dy, Z: c.Z + n*dz}
}

// Add returns the component-wise sum of two cells
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Sub returns the component-wise difference of two cells
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// DirectionTo returns the direction leading from c to an adjacent cell o.
// ok is false when o is not one of the six neighbours of c.
func (c Cell) DirectionTo(o Cell) (dir Direction, ok bool) {
	for _, d := range AllDirections() {
		if c.Step(d) == o {
			return d, true
		}
	}
	return 0, false
}

// Neighbors returns the planar neighbours of the cell, in the order of
// PlanarDirections. Bounds are not checked.
func (c Cell) Neighbors() []Cell {
	dirs := PlanarDirections()
	neighbors := make([]Cell, 0, len(dirs))
	for _, d := range dirs {
		neighbors = append(neighbors, c.Step(d))
	}
	return neighbors
}
