// Package dungeon turns a layout into placed tiles: world positions,
// rotations, names and the links between neighbouring tiles. It also
// answers which tiles should be shown while the player is on a level.
package dungeon

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"blobdungeon/pkg/engine/logging"
	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/generator"
	"blobdungeon/pkg/game/lattice"
	"blobdungeon/pkg/game/layout"
)

// Config describes how dungeons are generated and placed in the world
type Config struct {
	// Name prefixes every tile name
	Name string `yaml:"name"`
	// Spacing is the world size of one cell along each axis
	Spacing Vec3 `yaml:"spacing"`
	// MinDims and MaxDims bound the size of random dungeons, inclusive
	MinDims   world.Dims       `yaml:"min_dims"`
	MaxDims   world.Dims       `yaml:"max_dims"`
	Generator generator.Params `yaml:"generator"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() Config {
	return Config{
		Name:      "dungeon",
		Spacing:   Vec3{X: 10, Y: 20, Z: 10},
		MinDims:   world.NewDims(5, 5, 5),
		MaxDims:   world.NewDims(20, 20, 20),
		Generator: generator.DefaultParams(),
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("dungeon name must not be empty")
	}
	if c.Spacing.X <= 0 || c.Spacing.Y <= 0 || c.Spacing.Z <= 0 {
		return fmt.Errorf("spacing must be positive, got %v", c.Spacing)
	}
	if err := c.MinDims.Validate(); err != nil {
		return fmt.Errorf("min_dims: %w", err)
	}
	if c.MaxDims.X < c.MinDims.X || c.MaxDims.Y < c.MinDims.Y || c.MaxDims.Z < c.MinDims.Z {
		return fmt.Errorf("max_dims %v must not be below min_dims %v", c.MaxDims, c.MinDims)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

// Tile is a placed dungeon tile
type Tile struct {
	Cell      world.Cell
	Position  Vec3
	Archetype lattice.Archetype
	Rotation  world.Direction
	Quat      Quaternion
	Name      string

	neighbors [6]*Tile
}

// Neighbor returns the adjacent tile in a direction, or nil
func (t *Tile) Neighbor(d world.Direction) *Tile {
	if !d.IsValid() {
		return nil
	}
	return t.neighbors[d]
}

// Neighbors returns every adjacent tile with the direction leading to it
func (t *Tile) Neighbors() map[world.Direction]*Tile {
	out := make(map[world.Direction]*Tile)
	for _, d := range world.AllDirections() {
		if n := t.neighbors[d]; n != nil {
			out[d] = n
		}
	}
	return out
}

// Dungeon is a built, read-only dungeon
type Dungeon struct {
	cfg    Config
	layout *layout.Layout
	tiles  []*Tile
	byCell map[world.Cell]*Tile

	// stairs cells per level, if the level has them
	stairsUp   map[int]world.Cell
	stairsDown map[int]world.Cell
}

// Build places the tiles of a layout
func Build(l *layout.Layout, cfg Config) (*Dungeon, error) {
	if cfg.Spacing.X <= 0 || cfg.Spacing.Y <= 0 || cfg.Spacing.Z <= 0 {
		return nil, fmt.Errorf("spacing must be positive, got %v", cfg.Spacing)
	}

	d := &Dungeon{
		cfg:        cfg,
		layout:     l,
		byCell:     make(map[world.Cell]*Tile),
		stairsUp:   make(map[int]world.Cell),
		stairsDown: make(map[int]world.Cell),
	}

	for _, p := range l.Tiles() {
		c := p.Cell
		t := &Tile{
			Cell:      c,
			Position:  d.PositionOf(c),
			Archetype: p.Tile.Archetype,
			Rotation:  p.Tile.Rotation,
			Quat:      RotationOf(p.Tile.Rotation),
			Name:      fmt.Sprintf("%s-%s-%d_%d_%d", cfg.Name, p.Tile.Archetype, c.X, c.Y, c.Z),
		}
		d.tiles = append(d.tiles, t)
		d.byCell[c] = t

		switch t.Archetype {
		case lattice.StairsUp:
			d.stairsUp[c.Y] = c
		case lattice.StairsDown:
			d.stairsDown[c.Y] = c
		}
	}

	for _, t := range d.tiles {
		for _, dir := range world.AllDirections() {
			t.neighbors[dir] = d.byCell[t.Cell.Step(dir)]
		}
	}

	logging.Debug("dungeon %s: placed %d tiles in %v", cfg.Name, len(d.tiles), l.Dims())
	return d, nil
}

// Generate builds a random dungeon. The seed alone decides the size, the
// entrance and the carving.
func Generate(ctx context.Context, seed int64, cfg Config, opts ...generator.Option) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	dims, err := generator.RandomDims(rng, cfg.MinDims, cfg.MaxDims)
	if err != nil {
		return nil, err
	}
	entrance := generator.RandomEntrance(rng, dims)

	g, err := generator.New(cfg.Generator, rng, opts...)
	if err != nil {
		return nil, err
	}
	lat, err := g.Generate(ctx, dims, entrance)
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}

	l, err := layout.FromLattice(lat, entrance)
	if err != nil {
		return nil, err
	}
	return Build(l, cfg)
}

// Name returns the prefix shared by every tile name
func (d *Dungeon) Name() string {
	return d.cfg.Name
}

// Layout returns the layout the dungeon was built from
func (d *Dungeon) Layout() *layout.Layout {
	return d.layout
}

// Dims returns the size of the dungeon
func (d *Dungeon) Dims() world.Dims {
	return d.layout.Dims()
}

// Entrance returns the cell placed at the world origin
func (d *Dungeon) Entrance() world.Cell {
	return d.layout.Root()
}

// Tiles returns every tile in row-major order
func (d *Dungeon) Tiles() []*Tile {
	return d.tiles
}

// TileAt returns the tile at a cell, or nil
func (d *Dungeon) TileAt(c world.Cell) *Tile {
	return d.byCell[c]
}

// PositionOf returns the world position of a cell
func (d *Dungeon) PositionOf(c world.Cell) Vec3 {
	return d.cfg.Spacing.Scale(c.Sub(d.Entrance()))
}

// LevelOf returns the level a world height falls on. Anything below a
// level's floor belongs to the level underneath.
func (d *Dungeon) LevelOf(worldY float64) int {
	level := d.Entrance().Y - int(math.Ceil(-worldY/d.cfg.Spacing.Y))
	return max(0, min(level, d.Dims().Y-1))
}

// ActiveCells returns the occupied cells to show while the player is on a
// level: the whole level, plus the 3x3 patch around the top of the stairs
// on the level above and around the bottom of the stairs on the level
// below, so the way between levels is visible from either end.
func (d *Dungeon) ActiveCells(level int) []world.Cell {
	dims := d.Dims()
	if level < 0 || level >= dims.Y {
		return nil
	}

	var cells []world.Cell
	add := func(c world.Cell) {
		if d.byCell[c] != nil {
			cells = append(cells, c)
		}
	}
	window := func(center world.Cell) {
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				add(world.NewCell(center.X+dx, center.Y, center.Z+dz))
			}
		}
	}

	if level < dims.Y-1 {
		down, okDown := d.stairsDown[level+1]
		up, okUp := d.stairsUp[level]
		if okDown && okUp {
			window(down.Add(down).Sub(up).Step(world.Down))
		}
	}

	dims.ForEachInLevel(level, add)

	if level > 0 {
		up, okUp := d.stairsUp[level-1]
		down, okDown := d.stairsDown[level]
		if okUp && okDown {
			window(up.Add(up).Sub(down).Step(world.Up))
		}
	}

	return cells
}

// ActiveTiles is like ActiveCells but returns the tiles
func (d *Dungeon) ActiveTiles(level int) []*Tile {
	cells := d.ActiveCells(level)
	tiles := make([]*Tile, 0, len(cells))
	for _, c := range cells {
		tiles = append(tiles, d.byCell[c])
	}
	return tiles
}
