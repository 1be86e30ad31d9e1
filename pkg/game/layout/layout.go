// Package layout holds a finished dungeon as a grid of classified tiles and
// reads and writes it in the line-oriented layout text format:
//
//	dimX,dimY,dimZ [#comment]
//	rootX,rootY,rootZ          optional
//	<tile name> <rotation>     one line per cell, x slowest, z fastest
//
// Cells outside the dungeon are written as "none".
package layout

import (
	"fmt"

	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/lattice"
)

// Placed is a tile at a cell
type Placed struct {
	Cell world.Cell
	Tile lattice.Tile
}

// Layout is a read-only grid of tiles plus the root cell world positions
// are measured from
type Layout struct {
	dims  world.Dims
	root  world.Cell
	tiles []lattice.Tile
}

func newLayout(dims world.Dims) (*Layout, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	tiles := make([]lattice.Tile, dims.Volume())
	for i := range tiles {
		tiles[i] = lattice.Tile{Archetype: lattice.None, Rotation: world.Forward}
	}
	return &Layout{dims: dims, tiles: tiles}, nil
}

// FromLattice classifies every cell of a carved lattice
func FromLattice(l *lattice.Lattice, root world.Cell) (*Layout, error) {
	out, err := newLayout(l.Dims())
	if err != nil {
		return nil, err
	}
	if !out.dims.Contains(root) {
		return nil, fmt.Errorf("root %v outside %v", root, out.dims)
	}
	out.root = root

	var classifyErr error
	l.ForEachCell(func(c world.Cell, m lattice.WallMask) {
		if classifyErr != nil {
			return
		}
		t, err := lattice.Classify(m)
		if err != nil {
			classifyErr = fmt.Errorf("%v: %w", c, err)
			return
		}
		out.tiles[out.dims.Index(c)] = t
	})
	if classifyErr != nil {
		return nil, classifyErr
	}
	return out, nil
}

// Dims returns the size of the layout
func (l *Layout) Dims() world.Dims {
	return l.dims
}

// Root returns the cell placed at the world origin
func (l *Layout) Root() world.Cell {
	return l.root
}

// At returns the tile at a cell; cells out of bounds are None
func (l *Layout) At(c world.Cell) lattice.Tile {
	if !l.dims.Contains(c) {
		return lattice.Tile{Archetype: lattice.None, Rotation: world.Forward}
	}
	return l.tiles[l.dims.Index(c)]
}

// Occupied returns true if a tile other than None is at the cell
func (l *Layout) Occupied(c world.Cell) bool {
	return l.At(c).Archetype != lattice.None
}

// Tiles returns every tile other than None in row-major order
func (l *Layout) Tiles() []Placed {
	var placed []Placed
	for i, t := range l.tiles {
		if t.Archetype == lattice.None {
			continue
		}
		placed = append(placed, Placed{Cell: l.dims.CellAt(i), Tile: t})
	}
	return placed
}

// Find returns the first cell in row-major order holding the archetype
func (l *Layout) Find(a lattice.Archetype) (world.Cell, bool) {
	for i, t := range l.tiles {
		if t.Archetype == a {
			return l.dims.CellAt(i), true
		}
	}
	return world.Cell{}, false
}

// FindInLevel is like Find but only searches level y
func (l *Layout) FindInLevel(y int, a lattice.Archetype) (world.Cell, bool) {
	var found world.Cell
	ok := false
	l.dims.ForEachInLevel(y, func(c world.Cell) {
		if !ok && l.At(c).Archetype == a {
			found, ok = c, true
		}
	})
	return found, ok
}
