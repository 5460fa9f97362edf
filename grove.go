package grove

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is a renderable payload attached to a Node. Draw receives the
// node's composed matrices: world-to-clip, view, normal and model.
type Drawable interface {
	Draw(combined, view, normal, model mgl32.Mat4)
}

// DrawableFunc adapts an ordinary function to the Drawable interface.
type DrawableFunc func(combined, view, normal, model mgl32.Mat4)

// Draw calls f.
func (f DrawableFunc) Draw(combined, view, normal, model mgl32.Mat4) {
	f(combined, view, normal, model)
}

// TransformSource produces a node's local transformation matrix.
// LocalMatrix must not have side effects; it is queried on every draw and
// its result is never cached, so animation code may mutate the source
// between frames.
type TransformSource interface {
	LocalMatrix() mgl32.Mat4
}

// TransformFunc adapts an ordinary function to the TransformSource interface.
type TransformFunc func() mgl32.Mat4

// LocalMatrix calls f.
func (f TransformFunc) LocalMatrix() mgl32.Mat4 {
	return f()
}

// Matrix is a TransformSource that always yields the same matrix.
type Matrix mgl32.Mat4

// Identity is the identity transform.
var Identity = Matrix(mgl32.Ident4())

// LocalMatrix returns m.
func (m Matrix) LocalMatrix() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// FrameMatrices holds the four matrix streams passed to a root draw call.
type FrameMatrices struct {
	Combined mgl32.Mat4 // projection · view · model
	View     mgl32.Mat4 // view · model
	Normal   mgl32.Mat4 // inverse transpose of view · model
	Model    mgl32.Mat4
}

// IdentityFrame returns a FrameMatrices with every stream set to identity.
func IdentityFrame() FrameMatrices {
	i := mgl32.Ident4()
	return FrameMatrices{Combined: i, View: i, Normal: i, Model: i}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default mesh color.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA returns c as a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Aspect returns Width / Height, or 1 for an empty rectangle.
func (r Rect) Aspect() float32 {
	if r.Height <= 0 || r.Width <= 0 {
		return 1
	}
	return r.Width / r.Height
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
