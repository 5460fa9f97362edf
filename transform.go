package grove

import "github.com/go-gl/mathgl/mgl32"

// TRS is a TransformSource built from a translation, a rotation and a scale.
// Fields may be set directly; no dirty tracking is needed because nodes query
// LocalMatrix on every draw.
type TRS struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTRS returns an identity TRS: no translation, identity rotation, unit scale.
func NewTRS() *TRS {
	return &TRS{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// LocalMatrix returns the local affine matrix.
//
// Composition order:
//
//	Scale -> Rotate -> Translate
//
// so the matrix is T · R · S and a vector is scaled first.
func (t *TRS) LocalMatrix() mgl32.Mat4 {
	s := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	r := t.Rotation.Normalize().Mat4()
	tr := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	return tr.Mul4(r).Mul4(s)
}

// --- Transform property setters ---

// SetTranslation sets the translation.
func (t *TRS) SetTranslation(x, y, z float32) {
	t.Translation = mgl32.Vec3{x, y, z}
}

// SetRotation sets the rotation to angle radians about axis.
func (t *TRS) SetRotation(angle float32, axis mgl32.Vec3) {
	t.Rotation = mgl32.QuatRotate(angle, axis.Normalize())
}

// SetRotationQuat sets the rotation quaternion.
func (t *TRS) SetRotationQuat(q mgl32.Quat) {
	t.Rotation = q
}

// Rotate adds a rotation of angle radians about axis, applied after the
// current rotation.
func (t *TRS) Rotate(angle float32, axis mgl32.Vec3) {
	t.Rotation = mgl32.QuatRotate(angle, axis.Normalize()).Mul(t.Rotation).Normalize()
}

// SetScale sets the per-axis scale.
func (t *TRS) SetScale(x, y, z float32) {
	t.Scale = mgl32.Vec3{x, y, z}
}

// SetUniformScale sets all three scale components to s.
func (t *TRS) SetUniformScale(s float32) {
	t.Scale = mgl32.Vec3{s, s, s}
}
