package generator

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/lattice"
)

// ErrInvalidLayout is returned by Validate
var ErrInvalidLayout = errors.New("generator: invalid layout")

// Validate checks a finished lattice: every mask has a tile, planar
// openings are mutual and stay inside visited cells, every level has one
// way in and is fully reachable from it, and every stairs-down lands on the
// stairs-up of the level below.
func Validate(l *lattice.Lattice) error {
	dims := l.Dims()
	var errs []error

	tiles := make(map[world.Cell]lattice.Tile)
	l.ForEachCell(func(c world.Cell, m lattice.WallMask) {
		t, err := lattice.Classify(m)
		if err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", c, err))
			return
		}
		tiles[c] = t

		if !m.IsSet() {
			return
		}
		for _, d := range world.PlanarDirections() {
			n := c.Step(d)
			if !l.InBounds(n) || !l.IsSet(n) {
				if m.IsOpen(d) {
					errs = append(errs, fmt.Errorf("%v opens %v onto an empty cell", c, d))
				}
				continue
			}
			if m.IsOpen(d) != l.Mask(n).IsOpen(d.Opposite()) {
				errs = append(errs, fmt.Errorf("%v and %v disagree on their shared wall", c, n))
			}
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, errors.Join(errs...))
	}

	for y := dims.Y - 1; y >= 0; y-- {
		if err := validateLevel(l, tiles, y); err != nil {
			errs = append(errs, fmt.Errorf("level %d: %w", y, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, errors.Join(errs...))
	}
	return nil
}

func validateLevel(l *lattice.Lattice, tiles map[world.Cell]lattice.Tile, y int) error {
	dims := l.Dims()
	top := y == dims.Y-1

	var starts, downs []world.Cell
	dims.ForEachInLevel(y, func(c world.Cell) {
		switch tiles[c].Archetype {
		case lattice.Entrance:
			if top {
				starts = append(starts, c)
			}
		case lattice.StairsUp:
			if !top {
				starts = append(starts, c)
			}
		case lattice.StairsDown:
			downs = append(downs, c)
		}
	})

	if len(starts) != 1 {
		return fmt.Errorf("want one way in, found %d", len(starts))
	}
	switch {
	case y > 0 && len(downs) != 1:
		return fmt.Errorf("want one stairs down, found %d", len(downs))
	case y == 0 && len(downs) != 0:
		return fmt.Errorf("bottom level has %d stairs down", len(downs))
	}

	for _, s := range downs {
		t := tiles[s]
		landing := s.Step(t.Rotation.Opposite()).Step(world.Down)
		if want := (lattice.Tile{Archetype: lattice.StairsUp, Rotation: t.Rotation}); tiles[landing] != want {
			return fmt.Errorf("stairs down at %v lands on %v at %v", s, tiles[landing], landing)
		}
	}

	reached := Reachable(l, starts[0])
	missing := 0
	dims.ForEachInLevel(y, func(c world.Cell) {
		if tiles[c].Archetype != lattice.None && !reached.Has(c) {
			missing++
		}
	})
	if missing > 0 {
		return fmt.Errorf("%d cells unreachable from %v", missing, starts[0])
	}
	return nil
}

// Reachable returns every cell of start's level that can be walked to from
// start through planar openings
func Reachable(l *lattice.Lattice, start world.Cell) mapset.Set[world.Cell] {
	reached := mapset.New[world.Cell]()
	if !l.IsSet(start) {
		return reached
	}

	q := queue.New[world.Cell]()
	q.Enqueue(start)
	reached.Put(start)
	for !q.Empty() {
		c := q.Dequeue()
		m := l.Mask(c)
		for _, d := range world.PlanarDirections() {
			n := c.Step(d)
			if !m.IsOpen(d) || !l.InBounds(n) || reached.Has(n) {
				continue
			}
			reached.Put(n)
			q.Enqueue(n)
		}
	}
	return reached
}
