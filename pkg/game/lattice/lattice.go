package lattice

import (
	"math/rand"

	"blobdungeon/pkg/engine/world"
)

// ProbabilityFunc decides how likely carving toward dir is, given how many
// connections the current cell has made so far and how many candidate
// directions are still to be tried (including dir)
type ProbabilityFunc func(connected, remaining int, dir world.Direction) float64

// InverseRemaining carves on average about one direction per cell while
// still allowing anywhere from zero to four branches
func InverseRemaining(_, remaining int, _ world.Direction) float64 {
	if remaining <= 0 {
		return 1
	}
	return 1 / float64(remaining)
}

// ConnectOptions tunes ConnectRandom
type ConnectOptions struct {
	Probability ProbabilityFunc
	// ReconnectChance is the chance of opening toward an already visited
	// cell, forming a loop instead of a tree branch
	ReconnectChance float64
}

// Lattice is a 3D grid of wall masks covering the bounding box of a dungeon
type Lattice struct {
	dims  world.Dims
	masks []WallMask
	unset int
	rng   *rand.Rand
}

// New creates an empty lattice. All random decisions are drawn from rng.
func New(dims world.Dims, rng *rand.Rand) (*Lattice, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &Lattice{
		dims:  dims,
		masks: make([]WallMask, dims.Volume()),
		unset: dims.Volume(),
		rng:   rng,
	}, nil
}

// Dims returns the size of the lattice
func (l *Lattice) Dims() world.Dims {
	return l.dims
}

// InBounds checks if a cell is within the lattice
func (l *Lattice) InBounds(c world.Cell) bool {
	return l.dims.Contains(c)
}

// Mask returns the mask of a cell, or zero if out of bounds
func (l *Lattice) Mask(c world.Cell) WallMask {
	if !l.InBounds(c) {
		return 0
	}
	return l.masks[l.dims.Index(c)]
}

// Tile classifies the mask of a cell
func (l *Lattice) Tile(c world.Cell) (Tile, error) {
	return Classify(l.Mask(c))
}

// IsSet returns true if carving has visited the cell
func (l *Lattice) IsSet(c world.Cell) bool {
	return l.Mask(c).IsSet()
}

// IsLocked returns true if the cell's openings are final
func (l *Lattice) IsLocked(c world.Cell) bool {
	return l.Mask(c).IsLocked()
}

// Unset returns how many cells of the current level are still unvisited
func (l *Lattice) Unset() int {
	return l.unset
}

// ResetUnset restarts the progress counter, at the start of each level
func (l *Lattice) ResetUnset(n int) {
	l.unset = n
}

func (l *Lattice) markSet(c world.Cell) {
	i := l.dims.Index(c)
	if l.masks[i].IsSet() {
		return
	}
	l.masks[i] |= Set
	l.unset--
}

// Connect opens a passage from a cell to its neighbour in dir. It fails
// without changing anything if either end is out of bounds or locked, or if
// the passage is already open.
func (l *Lattice) Connect(from world.Cell, dir world.Direction) bool {
	to := from.Step(dir)
	if !l.InBounds(from) || !l.InBounds(to) {
		return false
	}

	fromMask := l.Mask(from)
	if fromMask.IsSet() && fromMask.IsOpen(dir) {
		return false
	}
	if fromMask.IsLocked() || l.IsLocked(to) {
		return false
	}

	l.markSet(from)
	l.markSet(to)
	l.masks[l.dims.Index(from)] |= DirMask(dir)
	l.masks[l.dims.Index(to)] |= DirMask(dir.Opposite())
	return true
}

// Open adds a one-sided opening to a visited, unlocked cell. Stairs use it
// for their vertical exit, whose far end is not the cell directly above or
// below.
func (l *Lattice) Open(c world.Cell, dir world.Direction) bool {
	m := l.Mask(c)
	if !m.IsSet() || m.IsLocked() || !dir.IsValid() {
		return false
	}
	l.masks[l.dims.Index(c)] |= DirMask(dir)
	return true
}

// Lock marks a cell visited and final
func (l *Lattice) Lock(c world.Cell) bool {
	if !l.InBounds(c) {
		return false
	}
	l.markSet(c)
	l.masks[l.dims.Index(c)] |= Locked
	return true
}

// SetAsNone removes an unvisited cell from the dungeon for good: it is
// locked with no openings, so nothing can ever carve into it.
func (l *Lattice) SetAsNone(c world.Cell) bool {
	if !l.InBounds(c) || l.IsSet(c) {
		return false
	}
	return l.Lock(c)
}

// candidateDirections returns the planar directions in random order.
// Vertical links are only made by the stairs.
func (l *Lattice) candidateDirections() []world.Direction {
	dirs := world.PlanarDirections()
	l.rng.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	return dirs
}

// ConnectRandom tries each candidate direction of a cell in random order.
// Visited neighbours are only considered with the reconnect chance; the rest
// are carved with the given probability. When nothing was carved, the last
// rejected direction is carved anyway. Newly visited neighbours are added to
// frontier. It returns the number of new, non-looping connections.
func (l *Lattice) ConnectRandom(from world.Cell, opts ConnectOptions, frontier *Frontier) int {
	prob := opts.Probability
	if prob == nil {
		prob = InverseRemaining
	}

	dirs := l.candidateDirections()
	remaining := len(dirs)
	connected := 0

	var rejected world.Direction
	var rejectedLoop, hasRejected bool

	for _, dir := range dirs {
		to := from.Step(dir)
		if !l.InBounds(to) {
			remaining--
			continue
		}

		loop := false
		if l.IsSet(to) {
			if l.rng.Float64() >= opts.ReconnectChance {
				remaining--
				continue
			}
			loop = true
		}

		if l.rng.Float64() < prob(connected, remaining, dir) {
			if l.Connect(from, dir) && !loop {
				if frontier != nil {
					frontier.Add(to)
				}
				connected++
			}
		} else {
			rejected, rejectedLoop, hasRejected = dir, loop, true
		}
		remaining--
	}

	// One more try
	if connected == 0 && hasRejected && l.Connect(from, rejected) && !rejectedLoop {
		if frontier != nil {
			frontier.Add(from.Step(rejected))
		}
		connected++
	}

	return connected
}

// FindBridgePoint looks for a visited, unlocked cell next to an unvisited
// one, from which carving can resume into a region the frontier never
// reached. ok is false if no such cell exists.
func (l *Lattice) FindBridgePoint() (bridge world.Cell, ok bool) {
	for i, m := range l.masks {
		if m.IsSet() {
			continue
		}
		unset := l.dims.CellAt(i)
		for _, dir := range l.candidateDirections() {
			n := unset.Step(dir)
			if l.IsSet(n) && !l.IsLocked(n) {
				return n, true
			}
		}
	}
	return world.Cell{}, false
}

// ForEachCell calls fn with every cell and its mask in row-major order
func (l *Lattice) ForEachCell(fn func(c world.Cell, m WallMask)) {
	for i, m := range l.masks {
		fn(l.dims.CellAt(i), m)
	}
}
