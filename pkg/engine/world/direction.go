package world

import "fmt"

// Direction represents one of the six axis-aligned directions of the lattice
type Direction int

// Direction constants. Forward is +Z, Right is +X, Up is +Y.
const (
	Forward Direction = iota
	Right
	Back
	Left
	Up
	Down
)

// PlanarDirections returns the four horizontal directions in clockwise order
func PlanarDirections() []Direction {
	return []Direction{Forward, Right, Back, Left}
}

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{Forward, Right, Back, Left, Up, Down}
}

// PlanarAxes returns the positive direction of each horizontal axis
func PlanarAxes() []Direction {
	return []Direction{Right, Forward}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Right:
		return "right"
	case Back:
		return "back"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Char returns the single-character code used by the layout text format
func (d Direction) Char() byte {
	switch d {
	case Forward:
		return 'f'
	case Right:
		return 'r'
	case Back:
		return 'b'
	case Left:
		return 'l'
	case Up:
		return 'u'
	case Down:
		return 'd'
	default:
		return '?'
	}
}

// ParseDirection converts a layout rotation character into a direction
func ParseDirection(c byte) (Direction, error) {
	switch c {
	case 'f', 'F':
		return Forward, nil
	case 'r', 'R':
		return Right, nil
	case 'b', 'B':
		return Back, nil
	case 'l', 'L':
		return Left, nil
	case 'u', 'U':
		return Up, nil
	case 'd', 'D':
		return Down, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", c)
	}
}

// IsValid returns true if the direction is one of the six lattice directions
func (d Direction) IsValid() bool {
	return d >= Forward && d <= Down
}

// IsPlanar returns true for the four horizontal directions
func (d Direction) IsPlanar() bool {
	return d >= Forward && d <= Left
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case Forward:
		return Back
	case Back:
		return Forward
	case Right:
		return Left
	case Left:
		return Right
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// Delta returns the x, y and z offsets for this direction
func (d Direction) Delta() (dx, dy, dz int) {
	switch d {
	case Forward:
		return 0, 0, 1
	case Right:
		return 1, 0, 0
	case Back:
		return 0, 0, -1
	case Left:
		return -1, 0, 0
	case Up:
		return 0, 1, 0
	case Down:
		return 0, -1, 0
	default:
		return 0, 0, 0
	}
}

// Yaw returns the clockwise rotation about the vertical axis, in degrees,
// that turns Forward into this direction. Vertical directions have no yaw.
func (d Direction) Yaw() float64 {
	switch d {
	case Right:
		return 90
	case Back:
		return 180
	case Left:
		return -90
	default:
		return 0
	}
}

// Clockwise returns the planar direction a quarter turn to the right.
// Vertical directions are returned unchanged.
func (d Direction) Clockwise() Direction {
	if !d.IsPlanar() {
		return d
	}
	return (d + 1) % 4
}

// CounterClockwise returns the planar direction a quarter turn to the left.
// Vertical directions are returned unchanged.
func (d Direction) CounterClockwise() Direction {
	if !d.IsPlanar() {
		return d
	}
	return (d + 3) % 4
}
