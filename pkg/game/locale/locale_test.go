package locale

import (
	"strings"
	"testing"

	"blobdungeon/pkg/game/lattice"
)

func TestGet(t *testing.T) {
	if got := Get("LEVEL_HEADING", 3); got != "Level 3" {
		t.Errorf("Get(LEVEL_HEADING) = %q", got)
	}
	if got := Get("NOT_A_KEY"); got != "NOT_A_KEY" {
		t.Errorf("unknown keys should pass through, got %q", got)
	}
}

func TestEveryTileHasAName(t *testing.T) {
	for _, a := range lattice.Archetypes() {
		name := TileName(a)
		if name == "" || strings.HasPrefix(name, "TILE_") {
			t.Errorf("archetype %v has no display name (%q)", a, name)
		}
	}
	if got := TileName(lattice.DeadEnd); got != "Dead end" {
		t.Errorf("TileName(DeadEnd) = %q", got)
	}
}
