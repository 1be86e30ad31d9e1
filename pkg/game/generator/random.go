package generator

import (
	"fmt"
	"math/rand"

	"blobdungeon/pkg/engine/world"
)

// RandomDims draws each dimension uniformly from [min, max], both inclusive
func RandomDims(rng *rand.Rand, min, max world.Dims) (world.Dims, error) {
	if err := min.Validate(); err != nil {
		return world.Dims{}, fmt.Errorf("min dims: %w", err)
	}
	if max.X < min.X || max.Y < min.Y || max.Z < min.Z {
		return world.Dims{}, fmt.Errorf("max dims %v below min dims %v", max, min)
	}
	between := func(lo, hi int) int {
		return lo + rng.Intn(hi-lo+1)
	}
	return world.NewDims(between(min.X, max.X), between(min.Y, max.Y), between(min.Z, max.Z)), nil
}

// RandomEntrance picks a random cell of the top level
func RandomEntrance(rng *rand.Rand, dims world.Dims) world.Cell {
	return world.NewCell(rng.Intn(dims.X), dims.Y-1, rng.Intn(dims.Z))
}
