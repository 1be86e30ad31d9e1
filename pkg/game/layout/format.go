package layout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/lattice"
)

// Parse errors. A layout that fails to parse is rejected as a whole.
var (
	ErrMalformedHeader   = errors.New("layout: malformed header")
	ErrUnknownTile       = errors.New("layout: unknown tile")
	ErrBadRotation       = errors.New("layout: bad rotation")
	ErrDimensionMismatch = errors.New("layout: body does not match dimensions")
)

var (
	regexpDims  = regexp.MustCompile(`^(\d+),(\d+),(\d+)$`)
	regexpRoot  = regexp.MustCompile(`^(-?\d+),(-?\d+),(-?\d+)$`)
	noneTileKey = lattice.None.String()
)

// clean strips comments and whitespace and lower-cases a line
func clean(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	return strings.ToLower(line)
}

func parseTriple(re *regexp.Regexp, s string) (x, y, z int, ok bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	var err error
	if x, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, 0, false
	}
	if y, err = strconv.Atoi(m[2]); err != nil {
		return 0, 0, 0, false
	}
	if z, err = strconv.Atoi(m[3]); err != nil {
		return 0, 0, 0, false
	}
	return x, y, z, true
}

// parseTile reads a cleaned body line of the form <name><rotation>
func parseTile(line string) (lattice.Tile, error) {
	none := lattice.Tile{Archetype: lattice.None, Rotation: world.Forward}
	if line == noneTileKey || (len(line) == len(noneTileKey)+1 && strings.HasPrefix(line, noneTileKey)) {
		return none, nil
	}
	if len(line) < 2 {
		return none, fmt.Errorf("%w: %q", ErrUnknownTile, line)
	}

	name, rot := line[:len(line)-1], line[len(line)-1]
	a, err := lattice.ParseArchetype(name)
	if err != nil {
		return none, fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	dir, err := world.ParseDirection(rot)
	if err != nil {
		return none, fmt.Errorf("%w: %q", ErrBadRotation, rot)
	}
	if !dir.IsPlanar() {
		if !a.IsStairs() {
			return none, fmt.Errorf("%w: %q on %s", ErrBadRotation, rot, a)
		}
		dir = world.Forward
	}
	return lattice.Tile{Archetype: a, Rotation: dir}, nil
}

// Parse reads a layout. Blank lines and comment lines are skipped. Without
// a root line, the root is the entrance tile, or the origin if there is none.
func Parse(r io.Reader) (*Layout, error) {
	scanner := bufio.NewScanner(r)

	var out *Layout
	hasRoot := false
	index := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := clean(scanner.Text())
		if line == "" {
			continue
		}

		if out == nil {
			x, y, z, ok := parseTriple(regexpDims, line)
			if !ok {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedHeader, lineNo, scanner.Text())
			}
			var err error
			if out, err = newLayout(world.NewDims(x, y, z)); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
			}
			continue
		}

		if index == 0 && !hasRoot {
			if x, y, z, ok := parseTriple(regexpRoot, line); ok {
				root := world.NewCell(x, y, z)
				if !out.dims.Contains(root) {
					return nil, fmt.Errorf("%w: line %d: root %v outside %v", ErrMalformedHeader, lineNo, root, out.dims)
				}
				out.root, hasRoot = root, true
				continue
			}
		}

		if index >= len(out.tiles) {
			return nil, fmt.Errorf("%w: more than %d cells for %v", ErrDimensionMismatch, len(out.tiles), out.dims)
		}
		t, err := parseTile(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out.tiles[index] = t
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if out == nil {
		return nil, fmt.Errorf("%w: empty layout", ErrMalformedHeader)
	}
	if index != len(out.tiles) {
		return nil, fmt.Errorf("%w: %d cells for %v, want %d", ErrDimensionMismatch, index, out.dims, len(out.tiles))
	}

	if !hasRoot {
		if e, ok := out.Find(lattice.Entrance); ok {
			out.root = e
		}
	}
	return out, nil
}

// WriteTo writes the layout in the text format, always including the
// root line
func (l *Layout) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	write := func(format string, args ...interface{}) error {
		written, err := fmt.Fprintf(bw, format, args...)
		n += int64(written)
		return err
	}

	if err := write("%s\n%s\n", l.dims, l.root); err != nil {
		return n, err
	}
	for _, t := range l.tiles {
		var err error
		if t.Archetype == lattice.None {
			err = write("%s\n", noneTileKey)
		} else {
			err = write("%s %c\n", t.Archetype, t.Rotation.Char())
		}
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
