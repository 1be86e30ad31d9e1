package lattice

import (
	"errors"
	"fmt"
	"strings"

	"blobdungeon/pkg/engine/world"
)

// ErrUnmappedMask is returned when a mask has no entry in the tile table.
// Carving never produces such a mask, so seeing it means the lattice is broken.
var ErrUnmappedMask = errors.New("lattice: wall mask has no tile")

// ErrUnknownArchetype is returned when parsing an unrecognized tile name
var ErrUnknownArchetype = errors.New("lattice: unknown tile name")

// Archetype is the named shape of a corridor tile
type Archetype int

// Tile archetypes
const (
	None Archetype = iota
	Hallway
	Corner
	Junction
	Crossing
	DeadEnd
	StairsUp
	StairsDown
	Entrance
)

var archetypeNames = []string{
	None:       "none",
	Hallway:    "hallway",
	Corner:     "corner",
	Junction:   "junction",
	Crossing:   "crossing",
	DeadEnd:    "dead_end",
	StairsUp:   "stairs_up",
	StairsDown: "stairs_down",
	Entrance:   "entrance",
}

// Archetypes returns every archetype, None first
func Archetypes() []Archetype {
	return []Archetype{None, Hallway, Corner, Junction, Crossing, DeadEnd, StairsUp, StairsDown, Entrance}
}

// String returns the lower-case tile name used by the layout format
func (a Archetype) String() string {
	if a < None || int(a) >= len(archetypeNames) {
		return "unknown"
	}
	return archetypeNames[a]
}

// IsStairs returns true for both stair archetypes
func (a Archetype) IsStairs() bool {
	return a == StairsUp || a == StairsDown
}

// ParseArchetype looks up a tile name, ignoring case
func ParseArchetype(name string) (Archetype, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range archetypeNames {
		if n == name {
			return Archetype(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
}

// Tile is a classified cell: an archetype turned to face one of the four
// planar directions
type Tile struct {
	Archetype Archetype
	Rotation  world.Direction
}

// String returns e.g. "corner/right"
func (t Tile) String() string {
	return t.Archetype.String() + "/" + t.Rotation.String()
}

type tileEntry struct {
	tile  Tile
	glyph rune
}

var (
	// classification maps the opening bits of a mask (plus Locked for the
	// entrance) to its tile
	classification map[WallMask]tileEntry
	// masks is the inverse of classification
	masks map[Tile]WallMask
)

func init() {
	classification = make(map[WallMask]tileEntry)
	masks = make(map[Tile]WallMask)

	add := func(key WallMask, a Archetype, r world.Direction, glyph rune) {
		t := Tile{Archetype: a, Rotation: r}
		classification[key] = tileEntry{tile: t, glyph: glyph}
		masks[t] = key | Set
	}
	open := func(dirs ...world.Direction) WallMask {
		return Of(dirs...).Openings()
	}

	add(0, None, world.Forward, 'O')
	add(openPlanar, Crossing, world.Forward, '┼')
	add(open(world.Forward, world.Back), Hallway, world.Forward, '│')
	add(open(world.Right, world.Left), Hallway, world.Right, '─')

	junctionGlyphs := map[world.Direction]rune{world.Forward: '┴', world.Right: '├', world.Back: '┬', world.Left: '┤'}
	cornerGlyphs := map[world.Direction]rune{world.Forward: '┘', world.Right: '└', world.Back: '┌', world.Left: '┐'}
	deadEndGlyphs := map[world.Direction]rune{world.Forward: '╵', world.Right: '╶', world.Back: '╷', world.Left: '╴'}
	entranceGlyphs := map[world.Direction]rune{world.Forward: '╻', world.Right: '╸', world.Back: '╹', world.Left: '╺'}
	upGlyphs := map[world.Direction]rune{world.Forward: '┆', world.Right: '┄', world.Back: '┆', world.Left: '┄'}
	downGlyphs := map[world.Direction]rune{world.Forward: '┊', world.Right: '┈', world.Back: '┊', world.Left: '┈'}

	for _, r := range world.PlanarDirections() {
		add(openPlanar&^DirMask(r.Opposite()), Junction, r, junctionGlyphs[r])
		add(open(r, r.CounterClockwise()), Corner, r, cornerGlyphs[r])
		add(open(r), DeadEnd, r, deadEndGlyphs[r])
		add(open(r.Opposite())|Locked, Entrance, r, entranceGlyphs[r])
		add(open(r.Opposite(), world.Up), StairsUp, r, upGlyphs[r])
		add(open(r, world.Down), StairsDown, r, downGlyphs[r])
	}
}

func lookup(m WallMask) (tileEntry, bool) {
	key := m & (openAll | Locked)
	if e, ok := classification[key]; ok {
		return e, true
	}
	e, ok := classification[key&^Locked]
	return e, ok
}

// Classify maps a finished mask to its tile. Cells that carving never
// reached classify as None.
func Classify(m WallMask) (Tile, error) {
	e, ok := lookup(m)
	if !ok {
		return Tile{}, fmt.Errorf("%w: %v", ErrUnmappedMask, m)
	}
	return e.tile, nil
}

// MustClassify is like Classify but panics on an unmapped mask
func MustClassify(m WallMask) Tile {
	t, err := Classify(m)
	if err != nil {
		panic(err)
	}
	return t
}

// MaskFor returns the canonical set mask of a tile
func MaskFor(t Tile) (WallMask, error) {
	m, ok := masks[t]
	if !ok {
		return 0, fmt.Errorf("%w: no mask for %v", ErrUnmappedMask, t)
	}
	return m, nil
}

// Glyph returns the box-drawing character for a mask, '?' if unmapped and
// a space for cells carving never reached
func Glyph(m WallMask) rune {
	if !m.IsSet() {
		return ' '
	}
	e, ok := lookup(m)
	if !ok {
		return '?'
	}
	return e.glyph
}

// GlyphOf returns the box-drawing character for a tile
func GlyphOf(t Tile) rune {
	m, err := MaskFor(t)
	if err != nil {
		return '?'
	}
	return Glyph(m)
}
