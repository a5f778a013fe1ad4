package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}
