package grove

import "github.com/go-gl/mathgl/mgl32"

// --- Primitive meshes ---

// cubeFaces lists each face as normal, u, v with u × v = normal, so corners
// taken in the order -u-v, +u-v, +u+v, -u+v wind counter-clockwise from
// outside.
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// NewCube returns an axis-aligned cube of edge length size centered on the
// origin, with flat per-face normals (24 vertices, 12 triangles).
func NewCube(size float32, col Color) *Mesh {
	m := &Mesh{Color: col}
	half := size / 2
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1].Mul(half), f[2].Mul(half)
		c := n.Mul(half)
		m.appendQuad(n,
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
		)
	}
	return m
}

// NewPlane returns a square of edge length size in the XZ plane, centered on
// the origin and facing +Y.
func NewPlane(size float32, col Color) *Mesh {
	m := &Mesh{Color: col}
	h := size / 2
	m.appendQuad(mgl32.Vec3{0, 1, 0},
		mgl32.Vec3{-h, 0, h},
		mgl32.Vec3{h, 0, h},
		mgl32.Vec3{h, 0, -h},
		mgl32.Vec3{-h, 0, -h},
	)
	return m
}

// NewPyramid returns a square pyramid with base edge size resting on y = 0
// and its apex at (0, height, 0).
func NewPyramid(size, height float32, col Color) *Mesh {
	m := &Mesh{Color: col}
	h := size / 2
	base := [4]mgl32.Vec3{{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h}}
	apex := mgl32.Vec3{0, height, 0}
	center := mgl32.Vec3{0, height / 4, 0}
	for i := range base {
		a, b := base[i], base[(i+1)%4]
		m.appendTriangle(a, b, apex, mgl32.Vec3{}, center)
	}
	down := mgl32.Vec3{0, -1, 0}
	m.appendTriangle(base[0], base[2], base[1], down, center)
	m.appendTriangle(base[0], base[3], base[2], down, center)
	return m
}

// appendQuad appends four corners sharing normal n as two triangles.
// The corners must already wind counter-clockwise around n.
func (m *Mesh) appendQuad(n, p0, p1, p2, p3 mgl32.Vec3) {
	first := uint16(len(m.Positions))
	m.Positions = append(m.Positions, p0, p1, p2, p3)
	m.Normals = append(m.Normals, n, n, n, n)
	m.Indices = append(m.Indices,
		first, first+1, first+2,
		first, first+2, first+3,
	)
}

// appendTriangle appends a flat-shaded triangle, flipping its winding if
// needed so that it faces away from center. A zero normal is replaced by the
// geometric one.
func (m *Mesh) appendTriangle(p0, p1, p2, n, center mgl32.Vec3) {
	geo := p1.Sub(p0).Cross(p2.Sub(p0))
	centroid := p0.Add(p1).Add(p2).Mul(1.0 / 3)
	if geo.Dot(centroid.Sub(center)) < 0 {
		p1, p2 = p2, p1
		geo = geo.Mul(-1)
	}
	if n.Len() == 0 {
		n = geo.Normalize()
	}
	first := uint16(len(m.Positions))
	m.Positions = append(m.Positions, p0, p1, p2)
	m.Normals = append(m.Normals, n, n, n)
	m.Indices = append(m.Indices, first, first+1, first+2)
}
