package grove

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default camera parameters used by NewCamera.
const (
	defaultFovY = math.Pi / 3
	defaultNear = 0.1
	defaultFar  = 100
)

// Camera produces the projection and view matrices that seed a root draw.
type Camera struct {
	// Eye is the camera position, Target the point it looks at and Up the
	// approximate up direction.
	Eye, Target, Up mgl32.Vec3

	// FovY is the vertical field of view in radians.
	FovY float32
	// Near and Far are the clip plane distances. Both must be positive.
	Near, Far float32

	// Viewport is the screen-space rectangle this camera renders into.
	// Its aspect ratio drives the projection.
	Viewport Rect
}

// NewCamera creates a Camera looking from (0, 0, 5) at the origin with the
// given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Eye:      mgl32.Vec3{0, 0, 5},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     defaultFovY,
		Near:     defaultNear,
		Far:      defaultFar,
		Viewport: viewport,
	}
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, c.Viewport.Aspect(), c.Near, c.Far)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Frame returns the base matrices for drawing a root with the given model
// matrix: projection·view·model, view·model, the inverse transpose of
// view·model, and model.
func (c *Camera) Frame(model mgl32.Mat4) FrameMatrices {
	mv := c.View().Mul4(model)
	return FrameMatrices{
		Combined: c.Projection().Mul4(mv),
		View:     mv,
		Normal:   normalMatrix(mv),
		Model:    model,
	}
}

// Orbit rotates the eye about the target by yaw radians around the up axis
// and pitch radians around the camera's right axis, keeping its distance.
// Pitch is clamped just short of the poles.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.Eye.Sub(c.Target)
	dist := offset.Len()
	if dist == 0 {
		return
	}
	up := c.Up.Normalize()
	cur := float32(math.Asin(float64(clampUnit(offset.Normalize().Dot(up)))))
	const limit = math.Pi/2 - 0.01
	next := cur + pitch
	if next > limit {
		next = limit
	} else if next < -limit {
		next = -limit
	}
	pitch = next - cur

	right := offset.Cross(up)
	if right.Len() > 0 {
		offset = mgl32.QuatRotate(pitch, right.Normalize()).Rotate(offset)
	}
	offset = mgl32.QuatRotate(yaw, up).Rotate(offset)
	c.Eye = c.Target.Add(offset)
}

// normalMatrix returns the inverse transpose of m. A singular m yields the
// zero matrix, as mgl32's Inv does.
func normalMatrix(m mgl32.Mat4) mgl32.Mat4 {
	return m.Inv().Transpose()
}

func clampUnit(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
