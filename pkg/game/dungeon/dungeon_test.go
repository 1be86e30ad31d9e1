package dungeon

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/lattice"
	"blobdungeon/pkg/game/layout"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Name = "test"
	cfg.MinDims = world.NewDims(6, 3, 6)
	cfg.MaxDims = world.NewDims(6, 3, 6)
	return cfg
}

func TestBuild_TwoTileScenario(t *testing.T) {
	l, err := layout.Parse(strings.NewReader("2,1,1\nhallway f\ndead_end b\n"))
	require.NoError(t, err)
	d, err := Build(l, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, d.Tiles(), 2)
	a := d.TileAt(world.NewCell(0, 0, 0))
	b := d.TileAt(world.NewCell(1, 0, 0))
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Same(t, b, a.Neighbor(world.Right))
	assert.Same(t, a, b.Neighbor(world.Left))
	assert.Len(t, a.Neighbors(), 1)
	assert.Len(t, b.Neighbors(), 1)
	assert.Nil(t, a.Neighbor(world.Forward))

	assert.Equal(t, lattice.Hallway, a.Archetype)
	assert.Equal(t, lattice.DeadEnd, b.Archetype)
	assert.Equal(t, world.Back, b.Rotation)
	assert.Equal(t, "dungeon-hallway-0_0_0", a.Name)
	assert.Equal(t, "dungeon-dead_end-1_0_0", b.Name)
	assert.Equal(t, Vec3{}, a.Position)
	assert.Equal(t, Vec3{X: 10}, b.Position)
}

func TestRotationOf(t *testing.T) {
	assert.Equal(t, Identity, RotationOf(world.Forward))

	right := RotationOf(world.Right)
	assert.InDelta(t, math.Sqrt2/2, right.W, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, right.Y, 1e-9)

	back := RotationOf(world.Back)
	assert.InDelta(t, 0, back.W, 1e-9)
	assert.InDelta(t, 1, back.Y, 1e-9)

	left := RotationOf(world.Left)
	assert.InDelta(t, math.Sqrt2/2, left.W, 1e-9)
	assert.InDelta(t, -math.Sqrt2/2, left.Y, 1e-9)
}

func TestPositionsAreRelativeToEntrance(t *testing.T) {
	l, err := layout.Parse(strings.NewReader("1,2,2\n0,1,0\nnone\ndead_end f\nentrance b\ndead_end b\n"))
	require.NoError(t, err)
	d, err := Build(l, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, world.NewCell(0, 1, 0), d.Entrance())
	assert.Equal(t, Vec3{}, d.TileAt(world.NewCell(0, 1, 0)).Position)
	assert.Equal(t, Vec3{Y: -20, Z: 10}, d.TileAt(world.NewCell(0, 0, 1)).Position)
}

func TestGenerate_NeighborLinksAreSymmetric(t *testing.T) {
	d, err := Generate(context.Background(), 17, smallConfig())
	require.NoError(t, err)
	require.NotEmpty(t, d.Tiles())

	for _, tile := range d.Tiles() {
		for dir, n := range tile.Neighbors() {
			assert.Same(t, tile, n.Neighbor(dir.Opposite()), "%s -> %v", tile.Name, dir)
			assert.Equal(t, tile.Cell.Step(dir), n.Cell)
		}
	}
	assert.Equal(t, Vec3{}, d.TileAt(d.Entrance()).Position)
	assert.Equal(t, lattice.Entrance, d.TileAt(d.Entrance()).Archetype)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.MinDims = world.NewDims(5, 2, 5)
	cfg.MaxDims = world.NewDims(9, 4, 9)

	names := func(d *Dungeon) []string {
		var out []string
		for _, tile := range d.Tiles() {
			out = append(out, tile.Name)
		}
		return out
	}

	a, err := Generate(context.Background(), 31, cfg)
	require.NoError(t, err)
	b, err := Generate(context.Background(), 31, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Dims(), b.Dims())
	assert.Equal(t, a.Entrance(), b.Entrance())
	assert.Equal(t, names(a), names(b))
}

func TestLevelOf(t *testing.T) {
	d, err := Generate(context.Background(), 5, smallConfig())
	require.NoError(t, err)
	require.Equal(t, 2, d.Entrance().Y)

	tests := map[float64]int{0: 2, -1: 1, -20: 1, -20.5: 0, -1000: 0, 100: 2}
	for y, want := range tests {
		assert.Equal(t, want, d.LevelOf(y), "world y %v", y)
	}
}

func TestActiveCells(t *testing.T) {
	d, err := Generate(context.Background(), 23, smallConfig())
	require.NoError(t, err)

	active := make(map[world.Cell]bool)
	for _, c := range d.ActiveCells(1) {
		assert.False(t, active[c], "%v listed twice", c)
		active[c] = true
		assert.NotNil(t, d.TileAt(c))
	}

	d.Dims().ForEachInLevel(1, func(c world.Cell) {
		if d.TileAt(c) != nil {
			assert.True(t, active[c], "level cell %v", c)
		}
	})

	down, ok := d.Layout().FindInLevel(2, lattice.StairsDown)
	require.True(t, ok)
	approach := down.Step(d.TileAt(down).Rotation)
	assert.True(t, active[approach], "approach to the stairs above at %v", approach)

	below, ok := d.Layout().FindInLevel(0, lattice.StairsUp)
	require.True(t, ok)
	exit := below.Step(d.TileAt(below).Rotation.Opposite())
	assert.True(t, active[exit], "exit of the stairs below at %v", exit)

	for c := range active {
		switch c.Y {
		case 2:
			assert.LessOrEqual(t, abs(c.X-approach.X), 1)
			assert.LessOrEqual(t, abs(c.Z-approach.Z), 1)
		case 0:
			assert.LessOrEqual(t, abs(c.X-exit.X), 1)
			assert.LessOrEqual(t, abs(c.Z-exit.Z), 1)
		}
	}

	assert.Nil(t, d.ActiveCells(-1))
	assert.Nil(t, d.ActiveCells(3))
	assert.Len(t, d.ActiveTiles(1), len(active))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Name = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Spacing.Y = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxDims = world.NewDims(4, 20, 20)
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Generator.MaxAttempts = 0
	assert.Error(t, cfg.Validate())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
