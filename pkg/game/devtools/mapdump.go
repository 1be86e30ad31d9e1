// Package devtools provides developer tools for inspecting dungeons.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gookit/color"

	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/dungeon"
	"blobdungeon/pkg/game/lattice"
	"blobdungeon/pkg/game/layout"
	"blobdungeon/pkg/game/locale"
)

const mapDumpFilename = "map.txt"

// emptyGlyph marks cells that hold no tile
const emptyGlyph = '.'

var archetypeStyles = map[lattice.Archetype]color.Style{
	lattice.None:       {color.FgGray},
	lattice.Hallway:    {color.FgWhite},
	lattice.Corner:     {color.FgWhite},
	lattice.Junction:   {color.FgYellow},
	lattice.Crossing:   {color.FgYellow, color.OpBold},
	lattice.DeadEnd:    {color.FgRed},
	lattice.StairsUp:   {color.FgCyan, color.OpBold},
	lattice.StairsDown: {color.FgMagenta, color.OpBold},
	lattice.Entrance:   {color.FgGreen, color.OpBold},
}

// cellSymbol returns the map character for a tile
func cellSymbol(t lattice.Tile) rune {
	if t.Archetype == lattice.None {
		return emptyGlyph
	}
	return lattice.GlyphOf(t)
}

// writeLevel writes one level of l, forward pointing up the page
func writeLevel(b *strings.Builder, l *layout.Layout, y int, colorize bool) {
	dims := l.Dims()
	for z := dims.Z - 1; z >= 0; z-- {
		for x := 0; x < dims.X; x++ {
			t := l.At(world.NewCell(x, y, z))
			sym := string(cellSymbol(t))
			if colorize {
				sym = archetypeStyles[t.Archetype].Sprint(sym)
			}
			b.WriteString(sym)
		}
		b.WriteByte('\n')
	}
}

// WriteLevels draws every level of l as a grid of glyphs, top level first
func WriteLevels(w io.Writer, l *layout.Layout, colorize bool) error {
	var b strings.Builder
	for y := l.Dims().Y - 1; y >= 0; y-- {
		heading := locale.Get("LEVEL_HEADING", y)
		if colorize {
			heading = color.Style{color.FgLightBlue, color.OpBold}.Sprint(heading)
		}
		b.WriteString(heading)
		b.WriteByte('\n')
		writeLevel(&b, l, y, colorize)
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary counts the cells of l per archetype, empty cells included
func Summary(l *layout.Layout) map[lattice.Archetype]int {
	counts := make(map[lattice.Archetype]int)
	l.Dims().ForEachCell(func(c world.Cell) {
		counts[l.At(c).Archetype]++
	})
	return counts
}

// WriteSummary writes one line per archetype present in l
func WriteSummary(w io.Writer, l *layout.Layout) error {
	counts := Summary(l)
	for _, a := range lattice.Archetypes() {
		if counts[a] == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %d\n", locale.TileName(a), counts[a]); err != nil {
			return err
		}
	}
	return nil
}

// writeLegend lists the glyphs of every archetype and rotation
func writeLegend(f io.Writer) {
	for _, a := range lattice.Archetypes() {
		if a == lattice.None {
			fmt.Fprintf(f, "  %c = %s\n", emptyGlyph, locale.TileName(a))
			continue
		}
		var glyphs []string
		for _, r := range world.PlanarDirections() {
			t := lattice.Tile{Archetype: a, Rotation: r}
			if _, err := lattice.MaskFor(t); err != nil {
				continue
			}
			glyphs = append(glyphs, fmt.Sprintf("%c (%s)", cellSymbol(t), r))
		}
		fmt.Fprintf(f, "  %s: %s\n", locale.TileName(a), strings.Join(glyphs, "  "))
	}
}

// DumpToFile writes a full debug dump of d: metadata, legend, summary, one
// map per level and every placed tile. An empty path writes map.txt in the
// working directory. It returns the absolute path written.
func DumpToFile(path string, d *dungeon.Dungeon, seed int64) (string, error) {
	if d == nil {
		return "", fmt.Errorf("no dungeon")
	}
	if path == "" {
		path = mapDumpFilename
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	l := d.Layout()

	fmt.Fprintf(f, "=== %s ===\n", locale.Get("DUMP_TITLE"))
	fmt.Fprintln(f, "")
	fmt.Fprintln(f, "--- Metadata ---")
	fmt.Fprintf(f, "name: %s\n", d.Name())
	fmt.Fprintf(f, "seed: %d\n", seed)
	fmt.Fprintln(f, locale.Get("DUMP_GENERATED", time.Now().Format(time.RFC3339)))
	fmt.Fprintln(f, locale.Get("DUMP_DIMENSIONS", l.Dims()))
	fmt.Fprintln(f, locale.Get("DUMP_ENTRANCE", d.Entrance()))
	fmt.Fprintln(f, locale.Get("DUMP_TILE_COUNT", len(d.Tiles())))
	fmt.Fprintln(f, "coordinate_system: x,y,z (x=right, y=up, z=forward; maps are drawn with forward up)")
	fmt.Fprintln(f, "")

	fmt.Fprintf(f, "--- %s ---\n", locale.Get("LEGEND"))
	writeLegend(f)
	fmt.Fprintln(f, "")

	fmt.Fprintf(f, "--- %s ---\n", locale.Get("SUMMARY"))
	if err := WriteSummary(f, l); err != nil {
		return absPath, err
	}
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "--- Map ---")
	if err := WriteLevels(f, l, false); err != nil {
		return absPath, err
	}
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "--- Tiles ---")
	for _, t := range d.Tiles() {
		fmt.Fprintf(f, "  cell: %s name: %q archetype: %s rotation: %s position: %s\n",
			t.Cell, t.Name, t.Archetype, t.Rotation, t.Position)
	}
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "=== END MAP DUMP ===")

	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
