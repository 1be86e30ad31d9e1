package dungeon

import (
	"fmt"
	"math"

	"blobdungeon/pkg/engine/world"
)

// Vec3 is a position in world space
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// String returns the vector as "(x, y, z)"
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Scale multiplies each component of a cell offset by the matching spacing
func (v Vec3) Scale(c world.Cell) Vec3 {
	return Vec3{X: v.X * float64(c.X), Y: v.Y * float64(c.Y), Z: v.Z * float64(c.Z)}
}

// Quaternion is a rotation in world space
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity is the rotation of a tile facing forward
var Identity = Quaternion{W: 1}

// YawQuaternion returns a rotation about the vertical axis by deg degrees,
// clockwise when seen from above
func YawQuaternion(deg float64) Quaternion {
	half := deg * math.Pi / 360
	return Quaternion{W: math.Cos(half), Y: math.Sin(half)}
}

// RotationOf returns the rotation that turns a forward-facing tile toward d
func RotationOf(d world.Direction) Quaternion {
	if d == world.Forward {
		return Identity
	}
	return YawQuaternion(d.Yaw())
}
