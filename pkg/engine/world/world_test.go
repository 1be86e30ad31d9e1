package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOppositeStepsBack(t *testing.T) {
	c := NewCell(3, 1, 4)
	for _, d := range AllDirections() {
		assert.Equal(t, c, c.Step(d).Step(d.Opposite()), "%v", d)
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestTurns(t *testing.T) {
	assert.Equal(t, Right, Forward.Clockwise())
	assert.Equal(t, Forward, Left.Clockwise())
	assert.Equal(t, Left, Forward.CounterClockwise())
	assert.Equal(t, Up, Up.Clockwise())
	for _, d := range PlanarDirections() {
		assert.Equal(t, d, d.Clockwise().CounterClockwise())
		assert.Equal(t, d.Opposite(), d.Clockwise().Clockwise())
	}
}

func TestDirectionChars(t *testing.T) {
	for _, d := range AllDirections() {
		parsed, err := ParseDirection(d.Char())
		assert.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	_, err := ParseDirection('x')
	assert.Error(t, err)
}

func TestDirectionTo(t *testing.T) {
	c := NewCell(1, 1, 1)
	d, ok := c.DirectionTo(NewCell(1, 0, 1))
	assert.True(t, ok)
	assert.Equal(t, Down, d)

	_, ok = c.DirectionTo(NewCell(2, 1, 2))
	assert.False(t, ok)
}

func TestIndexRoundTrip(t *testing.T) {
	dims := NewDims(3, 2, 4)
	i := 0
	dims.ForEachCell(func(c Cell) {
		assert.Equal(t, i, dims.Index(c), "%v", c)
		assert.Equal(t, c, dims.CellAt(i))
		i++
	})
	assert.Equal(t, dims.Volume(), i)
	assert.Error(t, NewDims(0, 1, 1).Validate())
}

func TestValidateRejectsHugeDims(t *testing.T) {
	assert.NoError(t, NewDims(MaxExtent, 1, 1).Validate())
	assert.Error(t, NewDims(MaxExtent+1, 1, 1).Validate())
	assert.Error(t, NewDims(4000000000, 4000000000, 4000000000).Validate())
	assert.Error(t, NewDims(MaxExtent, MaxExtent, 2).Validate())
}
