package math

// Vec2 is a 2D vector. The 2D viewer stores its pan offset in one.
type Vec2 struct {
	X, Y float32
}
