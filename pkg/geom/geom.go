// Package geom provides the small geometric value types shared by the
// discovery and graph-assembly core.
package geom

// Vec2 is an immutable 2D coordinate pair. It is a value type with no
// identity: two Vec2 values with equal components are interchangeable.
type Vec2 struct {
	X float64
	Y float64
}

// V constructs a Vec2. Provided for brevity in table-driven tests and
// entity constructors.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }
