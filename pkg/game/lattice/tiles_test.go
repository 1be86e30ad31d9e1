package lattice

import (
	"errors"
	"testing"

	"blobdungeon/pkg/engine/world"
)

func TestClassify(t *testing.T) {
	f, r, b, l := world.Forward, world.Right, world.Back, world.Left

	tests := []struct {
		name string
		mask WallMask
		want Tile
	}{
		{"unvisited", 0, Tile{None, f}},
		{"none", Set | Locked, Tile{None, f}},
		{"crossing", Of(f, r, b, l), Tile{Crossing, f}},
		{"junction facing forward", Of(f, r, l), Tile{Junction, f}},
		{"junction facing left", Of(f, b, l), Tile{Junction, l}},
		{"hallway forward", Of(f, b), Tile{Hallway, f}},
		{"hallway right", Of(r, l), Tile{Hallway, r}},
		{"corner left-forward", Of(l, f), Tile{Corner, f}},
		{"corner back-left", Of(b, l), Tile{Corner, l}},
		{"dead end", Of(r), Tile{DeadEnd, r}},
		{"entrance", Of(b) | Locked, Tile{Entrance, f}},
		{"stairs up", Of(b, world.Up) | Locked, Tile{StairsUp, f}},
		{"stairs down", Of(l, world.Down) | Locked, Tile{StairsDown, l}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.mask)
			if err != nil {
				t.Fatalf("Classify(%v) error: %v", tt.mask, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.mask, got, tt.want)
			}
		})
	}
}

func TestClassifyUnmapped(t *testing.T) {
	bad := []WallMask{
		Of(world.Up),
		Of(world.Forward, world.Up, world.Down),
		Of(world.Forward, world.Right, world.Down),
		Of(world.Forward, world.Right) | Locked | OpenUp,
	}
	for _, m := range bad {
		if _, err := Classify(m); !errors.Is(err, ErrUnmappedMask) {
			t.Errorf("Classify(%v) error = %v, want ErrUnmappedMask", m, err)
		}
		if g := Glyph(m); g != '?' {
			t.Errorf("Glyph(%v) = %q, want '?'", m, g)
		}
	}
}

func TestEveryCarvableMaskIsMapped(t *testing.T) {
	// every non-empty set of planar openings can come out of carving
	for open := WallMask(1); open <= openPlanar; open++ {
		if _, err := Classify(open | Set); err != nil {
			t.Errorf("planar mask %v is unmapped: %v", open|Set, err)
		}
	}
}

func TestMaskForInvertsClassify(t *testing.T) {
	count := 0
	for _, a := range Archetypes() {
		for _, r := range world.PlanarDirections() {
			tile := Tile{Archetype: a, Rotation: r}
			m, err := MaskFor(tile)
			if err != nil {
				continue
			}
			count++
			got, err := Classify(m)
			if err != nil || got != tile {
				t.Errorf("Classify(MaskFor(%v)) = %v, %v", tile, got, err)
			}
		}
	}
	// 1 none + 1 crossing + 2 hallways + 4 each of junction, corner,
	// dead end, entrance, stairs up and stairs down
	if count != 28 {
		t.Errorf("table has %d entries, want 28", count)
	}
}

func TestEntranceFacesAwayFromItsOpening(t *testing.T) {
	for _, d := range world.PlanarDirections() {
		entrance, err := Classify(Of(d) | Locked)
		if err != nil {
			t.Fatal(err)
		}
		stairs, err := Classify(Of(d, world.Up))
		if err != nil {
			t.Fatal(err)
		}
		if entrance.Rotation != d.Opposite() || entrance.Rotation != stairs.Rotation {
			t.Errorf("opening %v: entrance %v, stairs up %v", d, entrance, stairs)
		}
	}
}

func TestMustClassify(t *testing.T) {
	if got := MustClassify(Of(world.Forward, world.Back)); got != (Tile{Hallway, world.Forward}) {
		t.Errorf("MustClassify(hallway) = %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustClassify did not panic on an unmapped mask")
		}
	}()
	MustClassify(Of(world.Forward, world.Up, world.Down))
}

func TestParseArchetype(t *testing.T) {
	for _, a := range Archetypes() {
		got, err := ParseArchetype(a.String())
		if err != nil || got != a {
			t.Errorf("ParseArchetype(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got, err := ParseArchetype("Dead_End"); err != nil || got != DeadEnd {
		t.Errorf("ParseArchetype is case sensitive: %v, %v", got, err)
	}
	if _, err := ParseArchetype("ramp"); !errors.Is(err, ErrUnknownArchetype) {
		t.Errorf("ParseArchetype(ramp) error = %v", err)
	}
}

func TestGlyph(t *testing.T) {
	if g := Glyph(0); g != ' ' {
		t.Errorf("Glyph(unset) = %q", g)
	}
	if g := Glyph(Of(world.Forward, world.Back)); g != '│' {
		t.Errorf("Glyph(hallway) = %q", g)
	}
	if g := GlyphOf(Tile{Crossing, world.Forward}); g != '┼' {
		t.Errorf("GlyphOf(crossing) = %q", g)
	}
}
