package layout

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/generator"
	"blobdungeon/pkg/game/lattice"
)

func generated(t *testing.T, seed int64, dims world.Dims) (*lattice.Lattice, world.Cell) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g, err := generator.New(generator.DefaultParams(), rng)
	require.NoError(t, err)
	entrance := generator.RandomEntrance(rng, dims)
	l, err := g.Generate(context.Background(), dims, entrance)
	require.NoError(t, err)
	return l, entrance
}

func TestParse_TwoTileScenario(t *testing.T) {
	l, err := Parse(strings.NewReader("2,1,1\nhallway f\ndead_end b\n"))
	require.NoError(t, err)

	assert.Equal(t, world.NewDims(2, 1, 1), l.Dims())
	assert.Equal(t, world.NewCell(0, 0, 0), l.Root())
	assert.Equal(t, []Placed{
		{Cell: world.NewCell(0, 0, 0), Tile: lattice.Tile{Archetype: lattice.Hallway, Rotation: world.Forward}},
		{Cell: world.NewCell(1, 0, 0), Tile: lattice.Tile{Archetype: lattice.DeadEnd, Rotation: world.Back}},
	}, l.Tiles())
}

func TestParse_CommentsRootAndNone(t *testing.T) {
	src := `# exported layout
2, 1, 2   # dims
1,0,1

NONE
Corner R  # turns right
# skipped
dead_end  l
entrance B
`
	l, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, world.NewCell(1, 0, 1), l.Root())
	assert.False(t, l.Occupied(world.NewCell(0, 0, 0)))
	assert.Equal(t, lattice.Tile{Archetype: lattice.Corner, Rotation: world.Right}, l.At(world.NewCell(0, 0, 1)))
	assert.Equal(t, lattice.Tile{Archetype: lattice.DeadEnd, Rotation: world.Left}, l.At(world.NewCell(1, 0, 0)))
	assert.Len(t, l.Tiles(), 3)
}

func TestParse_RootDefaultsToEntrance(t *testing.T) {
	l, err := Parse(strings.NewReader("1,1,3\nnone\nentrance b\ndead_end b\n"))
	require.NoError(t, err)
	assert.Equal(t, world.NewCell(0, 0, 1), l.Root())
}

func TestParse_NoneTakesAnOptionalRotation(t *testing.T) {
	l, err := Parse(strings.NewReader("1,1,3\nnone\nNone F\nentrance b\n"))
	require.NoError(t, err)
	assert.False(t, l.Occupied(world.NewCell(0, 0, 0)))
	assert.False(t, l.Occupied(world.NewCell(0, 0, 1)))
	assert.True(t, l.Occupied(world.NewCell(0, 0, 2)))
}

func TestParse_StairsAcceptVerticalRotation(t *testing.T) {
	l, err := Parse(strings.NewReader("2,1,1\nstairs_up u\nstairs_down d\n"))
	require.NoError(t, err)
	assert.Equal(t, lattice.Tile{Archetype: lattice.StairsUp, Rotation: world.Forward}, l.At(world.NewCell(0, 0, 0)))
	assert.Equal(t, lattice.Tile{Archetype: lattice.StairsDown, Rotation: world.Forward}, l.At(world.NewCell(1, 0, 0)))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrMalformedHeader},
		{"header not numeric", "two,1,1\nhallway f\n", ErrMalformedHeader},
		{"header too short", "2,1\nhallway f\n", ErrMalformedHeader},
		{"zero dimension", "0,1,1\n", ErrMalformedHeader},
		{"oversized header", "4000000000,4000000000,4000000000\nhallway f\n", ErrMalformedHeader},
		{"extent over the limit", "5000,1,1\nhallway f\n", ErrMalformedHeader},
		{"root out of bounds", "1,1,1\n3,0,0\nhallway f\n", ErrMalformedHeader},
		{"unknown tile", "2,1,1\nhallway f\nramp f\n", ErrUnknownTile},
		{"missing rotation", "1,1,1\nf\n", ErrUnknownTile},
		{"name starting with none", "1,1,1\nnonesuchf\n", ErrUnknownTile},
		{"none with trailing text", "1,1,1\nnoneff\n", ErrUnknownTile},
		{"bad rotation", "1,1,1\nhallway x\n", ErrBadRotation},
		{"vertical rotation on flat tile", "1,1,1\ncorner u\n", ErrBadRotation},
		{"too few lines", "2,1,2\nhallway f\nnone\n", ErrDimensionMismatch},
		{"too many lines", "1,1,1\nhallway f\nnone\n", ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse(strings.NewReader(tt.src))
			assert.Nil(t, l)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestWriteTo(t *testing.T) {
	l, err := Parse(strings.NewReader("2,1,1\nhallway f\ndead_end b\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "2,1,1\n0,0,0\nhallway f\ndead_end b\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		lat, entrance := generated(t, seed, world.NewDims(6, 3, 5))
		original, err := FromLattice(lat, entrance)
		require.NoError(t, err)

		var buf bytes.Buffer
		_, err = original.WriteTo(&buf)
		require.NoError(t, err)

		loaded, err := Parse(&buf)
		require.NoError(t, err)
		assert.Equal(t, original.Dims(), loaded.Dims())
		assert.Equal(t, original.Root(), loaded.Root())
		assert.Equal(t, original.Tiles(), loaded.Tiles(), "seed %d", seed)
	}
}

func TestFromLattice(t *testing.T) {
	lat, entrance := generated(t, 8, world.NewDims(5, 2, 5))
	l, err := FromLattice(lat, entrance)
	require.NoError(t, err)

	assert.Equal(t, lattice.Entrance, l.At(entrance).Archetype)
	found, ok := l.Find(lattice.Entrance)
	require.True(t, ok)
	assert.Equal(t, entrance, found)

	_, ok = l.FindInLevel(0, lattice.StairsUp)
	assert.True(t, ok)
	_, ok = l.FindInLevel(0, lattice.StairsDown)
	assert.False(t, ok)

	_, err = FromLattice(lat, world.NewCell(9, 9, 9))
	assert.Error(t, err)
}

func TestSaveAndOpen(t *testing.T) {
	lat, entrance := generated(t, 21, world.NewDims(7, 2, 7))
	original, err := FromLattice(lat, entrance)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"dungeon.txt", "dungeon.txt" + CompressedExt} {
		path := filepath.Join(dir, name)
		require.NoError(t, original.Save(path))

		loaded, err := Open(path)
		require.NoError(t, err, name)
		assert.Equal(t, original.Tiles(), loaded.Tiles(), name)
		assert.Equal(t, original.Root(), loaded.Root(), name)
	}

	plain, err := os.ReadFile(filepath.Join(dir, "dungeon.txt"))
	require.NoError(t, err)
	packed, err := os.ReadFile(filepath.Join(dir, "dungeon.txt"+CompressedExt))
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))

	_, err = Open(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
