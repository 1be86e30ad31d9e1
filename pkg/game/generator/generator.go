// Package generator carves multi-level corridor dungeons into a lattice.
// Levels are carved top-down from an entrance; each level except the bottom
// gets a stairs-down whose landing becomes the entrance of the level below.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"blobdungeon/pkg/engine/logging"
	"blobdungeon/pkg/engine/telemetry"
	"blobdungeon/pkg/engine/world"
	"blobdungeon/pkg/game/lattice"
	"blobdungeon/pkg/game/metrics"
)

// Generation errors
var (
	// ErrNoStairs is returned when a level was exhausted before a stairs-down
	// could be placed on it
	ErrNoStairs = errors.New("generator: no valid stairs placement")
	// ErrNoBridge is returned when a level still has unvisited cells but no
	// visited, unlocked cell borders them
	ErrNoBridge = errors.New("generator: no bridge point")
	// ErrNoEntrance is returned when an entrance cannot open in any direction
	ErrNoEntrance = errors.New("generator: cannot open entrance")
	// ErrTooSmall is returned for multi-level dims with no room for a staircase
	ErrTooSmall = errors.New("generator: dimensions too small for stairs")
	// ErrBadEntrance is returned when the entrance is not on the top level
	ErrBadEntrance = errors.New("generator: entrance must be inside the top level")
)

// minStairsRun is the number of cells in a row a staircase needs: the cell
// it is reached from, the stairs, the ramp and the landing's exit.
const minStairsRun = 4

// Params tunes the carving. The values only change the feel of a dungeon,
// never its correctness.
type Params struct {
	// ReconnectChance is the chance of carving into an already visited
	// cell, which forms a loop
	ReconnectChance float64 `yaml:"reconnect_chance"`
	// StairsThreshold is the fraction of a level left unvisited at which
	// the stairs-down is placed
	StairsThreshold float64 `yaml:"stairs_threshold"`
	// MaxAttempts bounds how often a whole dungeon is re-carved after a
	// failed stairs or bridge placement
	MaxAttempts int `yaml:"max_attempts"`
	// Probability decides whether to carve each candidate direction.
	// Nil means lattice.InverseRemaining.
	Probability lattice.ProbabilityFunc `yaml:"-"`
}

// DefaultParams returns the standard tuning
func DefaultParams() Params {
	return Params{
		ReconnectChance: 0.1,
		StairsThreshold: 0.5,
		MaxAttempts:     16,
	}
}

// Validate checks that the parameters are usable
func (p Params) Validate() error {
	if p.ReconnectChance < 0 || p.ReconnectChance > 1 {
		return fmt.Errorf("reconnect_chance must be within [0, 1], got %v", p.ReconnectChance)
	}
	if p.StairsThreshold <= 0 || p.StairsThreshold > 1 {
		return fmt.Errorf("stairs_threshold must be within (0, 1], got %v", p.StairsThreshold)
	}
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", p.MaxAttempts)
	}
	return nil
}

// Generator carves dungeons. It is not safe for concurrent use: every
// random decision is drawn from its single source, which is what makes a
// seed reproduce the same dungeon.
type Generator struct {
	params  Params
	rng     *rand.Rand
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Generator
type Option func(*Generator)

// WithMetrics records generation metrics into m
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithTracer replaces the default tracer
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) {
		g.tracer = t
	}
}

// New creates a generator drawing from rng
func New(params Params, rng *rand.Rand, opts ...Option) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("generator: nil random source")
	}
	g := &Generator{
		params: params,
		rng:    rng,
		tracer: telemetry.Tracer("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name returns the name of this generator
func (g *Generator) Name() string {
	return "Lattice Carver"
}

// Generate carves a dungeon of the given size, entered at a cell of the top
// level. Failed attempts are retried with the same random source, so the
// result still only depends on the seed.
func (g *Generator) Generate(ctx context.Context, dims world.Dims, entrance world.Cell) (*lattice.Lattice, error) {
	runID := uuid.NewString()
	ctx, span := g.tracer.Start(ctx, "generator.Generate", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("dims", dims.String()),
		attribute.String("entrance", entrance.String()),
	))
	defer span.End()

	start := time.Now()
	fail := func(err error) (*lattice.Lattice, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.metrics.ObserveGeneration(metrics.ResultFailed, 0, time.Since(start))
		logging.Warn("generator %s: %v", runID, err)
		return nil, err
	}

	if err := checkDims(dims, entrance); err != nil {
		return fail(err)
	}

	var err error
	for attempt := 1; attempt <= g.params.MaxAttempts; attempt++ {
		var l *lattice.Lattice
		l, err = g.attempt(ctx, dims, entrance)
		if err == nil {
			if err := Validate(l); err != nil {
				return fail(err)
			}
			cells := countPopulated(l)
			span.SetAttributes(attribute.Int("attempts", attempt), attribute.Int("cells", cells))
			g.metrics.ObserveGeneration(metrics.ResultOK, cells, time.Since(start))
			logging.Debug("%s %s: %v carved %d cells in %d attempt(s)", g.Name(), runID, dims, cells, attempt)
			return l, nil
		}
		if !errors.Is(err, ErrNoStairs) && !errors.Is(err, ErrNoBridge) {
			return fail(err)
		}
		g.metrics.Retry()
		logging.Debug("generator %s: attempt %d failed: %v", runID, attempt, err)
	}

	return fail(fmt.Errorf("giving up after %d attempts: %w", g.params.MaxAttempts, err))
}

func checkDims(dims world.Dims, entrance world.Cell) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	if !dims.Contains(entrance) || entrance.Y != dims.Y-1 {
		return fmt.Errorf("%w: %v in %v", ErrBadEntrance, entrance, dims)
	}
	if dims.Y > 1 && dims.X < minStairsRun && dims.Z < minStairsRun {
		return fmt.Errorf("%w: %v needs %d cells along x or z", ErrTooSmall, dims, minStairsRun)
	}
	return nil
}

// attempt carves every level once
func (g *Generator) attempt(ctx context.Context, dims world.Dims, entrance world.Cell) (*lattice.Lattice, error) {
	l, err := lattice.New(dims, g.rng)
	if err != nil {
		return nil, err
	}

	var required *world.Direction
	for y := dims.Y - 1; y >= 0; y-- {
		next, err := g.carveLevel(ctx, l, entrance, required)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", y, err)
		}
		if y == 0 {
			break
		}
		dir := next.dir
		entrance, required = next.landing(), &dir
	}
	return l, nil
}

// countPopulated returns the number of cells that become tiles. The lattice
// must have passed Validate.
func countPopulated(l *lattice.Lattice) int {
	n := 0
	l.ForEachCell(func(_ world.Cell, m lattice.WallMask) {
		if lattice.MustClassify(m).Archetype != lattice.None {
			n++
		}
	})
	return n
}
