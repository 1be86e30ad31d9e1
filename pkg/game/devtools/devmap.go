package devtools

import (
	"fmt"
	"strings"

	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/lattice"
	"blobdungeon/pkg/game/layout"
)

// showcaseMargin is the number of empty cells between two showcase tiles
const showcaseMargin = 1

// ShowcaseLayout returns a hard-coded single level developer layout holding
// every tile of the classification table. Each archetype gets a row, top
// to bottom in archetype order, and each of its rotations a column. Tiles
// are not connected to each other.
func ShowcaseLayout() (*layout.Layout, error) {
	var shown []lattice.Archetype
	for _, a := range lattice.Archetypes() {
		if a != lattice.None {
			shown = append(shown, a)
		}
	}

	step := showcaseMargin + 1
	dims := world.NewDims(len(world.PlanarDirections())*step-showcaseMargin, 1, len(shown)*step-showcaseMargin)
	lines := make([]string, dims.Volume())
	for i := range lines {
		lines[i] = lattice.None.String()
	}

	for row, a := range shown {
		z := dims.Z - 1 - row*step
		for col, r := range world.PlanarDirections() {
			t := lattice.Tile{Archetype: a, Rotation: r}
			if _, err := lattice.MaskFor(t); err != nil {
				continue
			}
			lines[dims.Index(world.NewCell(col*step, 0, z))] = fmt.Sprintf("%s %c", a, r.Char())
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s # tile showcase\n", dims)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return layout.Parse(strings.NewReader(b.String()))
}
