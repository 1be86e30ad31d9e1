// Package lattice holds the 3D grid of per-cell opening masks that the
// dungeon generator carves, and the fixed table that turns a finished mask
// into a tile archetype and rotation.
package lattice

import (
	"strings"

	"blobdungeon/pkg/engine/world"
)

// WallMask records which of the six directions of a cell are open, whether
// carving has reached the cell and whether its openings are final.
// A set direction bit means a passage exists in that direction.
type WallMask uint8

// Mask bits. The six opening bits follow the order of world.Direction.
const (
	OpenForward WallMask = 1 << iota
	OpenRight
	OpenBack
	OpenLeft
	OpenUp
	OpenDown
	Set
	Locked
)

const (
	openPlanar   = OpenForward | OpenRight | OpenBack | OpenLeft
	openVertical = OpenUp | OpenDown
	openAll      = openPlanar | openVertical
)

// DirMask returns the opening bit for a direction
func DirMask(dir world.Direction) WallMask {
	if !dir.IsValid() {
		return 0
	}
	return OpenForward << uint(dir)
}

// Of builds a set mask open in the given directions
func Of(dirs ...world.Direction) WallMask {
	m := Set
	for _, d := range dirs {
		m |= DirMask(d)
	}
	return m
}

// IsSet returns true once carving has visited the cell
func (m WallMask) IsSet() bool {
	return m&Set != 0
}

// IsLocked returns true if the openings of the cell may no longer change
func (m WallMask) IsLocked() bool {
	return m&Locked != 0
}

// IsOpen returns true if there is a passage in the given direction
func (m WallMask) IsOpen(dir world.Direction) bool {
	return m&DirMask(dir) != 0
}

// Openings returns only the six direction bits
func (m WallMask) Openings() WallMask {
	return m & openAll
}

// OpenCount returns the number of open planar directions
func (m WallMask) OpenCount() int {
	n := 0
	for _, d := range world.PlanarDirections() {
		if m.IsOpen(d) {
			n++
		}
	}
	return n
}

// String renders the mask as flags followed by the open direction codes,
// e.g. "set|locked:fu"
func (m WallMask) String() string {
	var flags []string
	if m.IsSet() {
		flags = append(flags, "set")
	}
	if m.IsLocked() {
		flags = append(flags, "locked")
	}
	if len(flags) == 0 {
		flags = append(flags, "unset")
	}

	var open strings.Builder
	for _, d := range world.AllDirections() {
		if m.IsOpen(d) {
			open.WriteByte(d.Char())
		}
	}
	if open.Len() == 0 {
		return strings.Join(flags, "|")
	}
	return strings.Join(flags, "|") + ":" + open.String()
}
