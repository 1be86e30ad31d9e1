package generator

import (
	"context"
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"blobdungeon/pkg/engine/logging"
	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/lattice"
)

// bridgesPerCell bounds how many times a level may restart from a bridge
// point before carving is considered stalled
const bridgesPerCell = 16

// stairs is a placed stairs-down and the planar direction it descends in.
// Going down, the player walks from the stairs over the ramp cell onto the
// landing one level below, then out through the exit.
type stairs struct {
	down world.Cell
	dir  world.Direction
}

func (s stairs) ramp() world.Cell {
	return s.down.Step(s.dir)
}

// landing is the stairs-up cell of the level below
func (s stairs) landing() world.Cell {
	return s.ramp().Step(world.Down)
}

// under is the cell of the level below behind the landing
func (s stairs) under() world.Cell {
	return s.down.Step(world.Down)
}

func (s stairs) exit() world.Cell {
	return s.landing().Step(s.dir)
}

// approach is the cell the stairs are entered from
func (s stairs) approach() world.Cell {
	return s.down.Step(s.dir.Opposite())
}

// carveLevel grows the level of entrance until every cell of it is
// visited. On every level but the bottom it also places a stairs-down.
func (g *Generator) carveLevel(ctx context.Context, l *lattice.Lattice, entrance world.Cell, required *world.Direction) (*stairs, error) {
	y := entrance.Y
	_, span := g.tracer.Start(ctx, "generator.carveLevel", trace.WithAttributes(attribute.Int("level", y)))
	defer span.End()

	dims := l.Dims()
	l.ResetUnset(dims.LevelSize())
	threshold := int(g.params.StairsThreshold * float64(dims.LevelSize()))
	needStairs := y > 0

	first, err := g.addEntrance(l, entrance, required, y < dims.Y-1)
	if err != nil {
		return nil, err
	}

	opts := lattice.ConnectOptions{
		Probability:     g.params.Probability,
		ReconnectChance: g.params.ReconnectChance,
	}

	var placed *stairs
	bridges := 0
	heads := lattice.NewFrontier(first)
	for heads.Len() > 0 {
		next := lattice.NewFrontier()
		for _, head := range heads.Cells() {
			l.ConnectRandom(head, opts, next)

			if needStairs && placed == nil && l.Unset() > 0 && l.Unset() <= threshold {
				placed = g.addStairsDown(l, y)
			}
		}
		heads = next

		if heads.Len() == 0 && l.Unset() > 0 {
			bridge, ok := l.FindBridgePoint()
			if !ok {
				return nil, fmt.Errorf("%w: %d cells unvisited", ErrNoBridge, l.Unset())
			}
			bridges++
			if bridges > bridgesPerCell*dims.LevelSize() {
				return nil, fmt.Errorf("%w: carving stalled after %d bridges", ErrNoBridge, bridges)
			}
			g.metrics.Bridge()
			heads.Add(bridge)
		}
	}

	if needStairs && placed == nil {
		return nil, ErrNoStairs
	}

	span.SetAttributes(attribute.Int("bridges", bridges))
	logging.Debug("generator: level %d carved from %v with %d bridge(s)", y, entrance, bridges)
	return placed, nil
}

// addEntrance opens the entrance cell toward one planar direction, locks
// it and removes the cell behind it from the dungeon. Landings of a
// staircase must open toward required and also open upward. It returns the
// first cell past the entrance.
func (g *Generator) addEntrance(l *lattice.Lattice, e world.Cell, required *world.Direction, landing bool) (world.Cell, error) {
	var dirs []world.Direction
	if required != nil {
		dirs = []world.Direction{*required}
	} else {
		d := world.PlanarDirections()[g.rng.Intn(4)]
		dirs = []world.Direction{d, d.Opposite(), d.Clockwise(), d.CounterClockwise()}
	}

	for _, d := range dirs {
		next, behind := e.Step(d), e.Step(d.Opposite())
		if !l.InBounds(next) {
			continue
		}
		if required == nil && strands(l, next, e, behind) {
			continue
		}
		if !l.Connect(e, d) {
			continue
		}
		if landing {
			l.Open(e, world.Up)
		}
		l.Lock(e)
		l.SetAsNone(behind)
		return next, nil
	}

	return world.Cell{}, fmt.Errorf("%w at %v", ErrNoEntrance, e)
}

// addStairsDown places a stairs-down on level y at a random unvisited cell
// that continues a visited one in a straight line, with room for the ramp
// and the landing's exit. Placements that would wall off part of either
// level are skipped. It returns nil if no placement fits.
func (g *Generator) addStairsDown(l *lattice.Lattice, y int) *stairs {
	var found []stairs
	l.Dims().ForEachInLevel(y, func(c world.Cell) {
		if l.IsSet(c) {
			return
		}
		for _, axis := range world.PlanarAxes() {
			for _, d := range []world.Direction{axis, axis.Opposite()} {
				s := stairs{down: c, dir: d}
				if !l.InBounds(s.approach()) || !l.InBounds(s.ramp()) {
					continue
				}
				if l.IsSet(s.approach()) && !l.IsSet(s.ramp()) {
					found = append(found, s)
				}
			}
		}
	})

	g.rng.Shuffle(len(found), func(i, j int) {
		found[i], found[j] = found[j], found[i]
	})

	for _, s := range found {
		if !l.InBounds(s.exit()) || l.IsLocked(s.approach()) {
			continue
		}
		if strands(l, s.approach(), s.down, s.ramp()) || strands(l, s.exit(), s.landing(), s.under()) {
			continue
		}
		if !l.Connect(s.down, s.dir.Opposite()) {
			continue
		}
		l.Open(s.down, world.Down)
		l.Lock(s.down)
		l.SetAsNone(s.ramp())
		g.metrics.Stairs()
		logging.Debug("generator: stairs down at %v toward %v", s.down, s.dir)
		return &s
	}

	return nil
}

// strands reports whether locking the blocked cells would leave a region of
// unvisited cells that carving can never enter: one whose border holds no
// visited, unlocked cell. The open cell counts as such a border cell even
// if it is not visited yet.
func strands(l *lattice.Lattice, open world.Cell, blocked ...world.Cell) bool {
	isBlocked := func(c world.Cell) bool {
		for _, b := range blocked {
			if c == b {
				return true
			}
		}
		return false
	}
	enterable := func(c world.Cell) bool {
		return c == open || (l.IsSet(c) && !l.IsLocked(c))
	}

	seen := mapset.New[world.Cell]()
	for _, b := range blocked {
		for _, start := range b.Neighbors() {
			if !l.InBounds(start) || isBlocked(start) || seen.Has(start) || enterable(start) || l.IsSet(start) {
				continue
			}

			reachable := false
			q := queue.New[world.Cell]()
			q.Enqueue(start)
			seen.Put(start)
			for !q.Empty() {
				c := q.Dequeue()
				for _, n := range c.Neighbors() {
					if !l.InBounds(n) || isBlocked(n) || seen.Has(n) {
						continue
					}
					if enterable(n) {
						reachable = true
						continue
					}
					if l.IsSet(n) {
						continue
					}
					seen.Put(n)
					q.Enqueue(n)
				}
			}
			if !reachable {
				return true
			}
		}
	}
	return false
}
