package world

import "fmt"

// Dims is the size of a lattice along each axis
type Dims struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// NewDims creates dims with the given sizes
func NewDims(x, y, z int) Dims {
	return Dims{X: x, Y: y, Z: z}
}

// String returns the dims as "x,y,z", the form used by the layout header
func (d Dims) String() string {
	return fmt.Sprintf("%d,%d,%d", d.X, d.Y, d.Z)
}

// MaxExtent bounds each dimension and MaxVolume the cell count of a lattice
const (
	MaxExtent = 1 << 12
	MaxVolume = 1 << 24
)

// Validate returns an error if any dimension is not positive or the
// lattice would be too large to allocate
func (d Dims) Validate() error {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return fmt.Errorf("dimensions must be positive, got %v", d)
	}
	if d.X > MaxExtent || d.Y > MaxExtent || d.Z > MaxExtent {
		return fmt.Errorf("dimensions must not exceed %d, got %v", MaxExtent, d)
	}
	if d.Volume() > MaxVolume {
		return fmt.Errorf("%v holds %d cells, more than %d", d, d.Volume(), MaxVolume)
	}
	return nil
}

// Volume returns the number of cells in the lattice
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// LevelSize returns the number of cells in one horizontal level
func (d Dims) LevelSize() int {
	return d.X * d.Z
}

// Contains checks if a cell is within bounds
func (d Dims) Contains(c Cell) bool {
	return c.X >= 0 && c.X < d.X &&
		c.Y >= 0 && c.Y < d.Y &&
		c.Z >= 0 && c.Z < d.Z
}

// Index returns the row-major flat index of a cell (x slowest, z fastest).
// The cell must be in bounds.
func (d Dims) Index(c Cell) int {
	return (c.X*d.Y+c.Y)*d.Z + c.Z
}

// CellAt is the inverse of Index
func (d Dims) CellAt(index int) Cell {
	z := index % d.Z
	index /= d.Z
	y := index % d.Y
	x := index / d.Y
	return Cell{X: x, Y: y, Z: z}
}

// ForEachCell iterates over all cells in row-major order, calling the
// provided function for each
func (d Dims) ForEachCell(fn func(c Cell)) {
	for x := 0; x < d.X; x++ {
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				fn(Cell{X: x, Y: y, Z: z})
			}
		}
	}
}

// ForEachInLevel iterates over the cells of a single level, x slowest
func (d Dims) ForEachInLevel(y int, fn func(c Cell)) {
	for x := 0; x < d.X; x++ {
		for z := 0; z < d.Z; z++ {
			fn(Cell{X: x, Y: y, Z: z})
		}
	}
}
