package grove

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices is the most vertices submitted in one DrawTriangles call.
// Indices are uint16 and every triangle uses three unshared vertices.
const maxBatchVertices = 65535 / 3 * 3

// Mesh is indexed triangle geometry in model space. Triangles wind
// counter-clockwise when seen from the side their normal points to.
type Mesh struct {
	Positions []mgl32.Vec3
	// Normals holds one normal per position. When its length differs from
	// Positions the mesh is drawn unlit.
	Normals []mgl32.Vec3
	Indices []uint16
	Color   Color
}

// NumTriangles returns the number of complete triangles in m.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// MeshDrawer is a Drawable that rasterizes a Mesh onto a Canvas.
//
// There is no depth buffer: triangles of one mesh are sorted back to front
// before submission, and meshes are composited in scene draw order.
type MeshDrawer struct {
	Mesh   *Mesh
	Canvas *Canvas

	// LightDir points toward the light in view space.
	LightDir mgl32.Vec3
	// Ambient is the light intensity applied regardless of orientation.
	Ambient float32
	// CullBackfaces drops triangles that face away from the camera.
	CullBackfaces bool

	projected []projectedVertex
	tris      []sortedTriangle
	vertices  []ebiten.Vertex
	indices   []uint16
}

// NewMeshDrawer creates a MeshDrawer for mesh that renders into canvas, lit
// from the viewer's upper left with backface culling enabled.
func NewMeshDrawer(mesh *Mesh, canvas *Canvas) *MeshDrawer {
	return &MeshDrawer{
		Mesh:          mesh,
		Canvas:        canvas,
		LightDir:      mgl32.Vec3{-0.4, 0.6, 1}.Normalize(),
		Ambient:       0.25,
		CullBackfaces: true,
	}
}

// Draw implements Drawable. It is a no-op while the canvas is unbound.
func (d *MeshDrawer) Draw(combined, view, normal, model mgl32.Mat4) {
	target := d.Canvas.Target()
	if target == nil || d.Mesh == nil {
		return
	}
	w, h := d.Canvas.Size()
	d.vertices = d.buildVertices(combined, normal, float32(w), float32(h))
	src := solidImage()
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	for start := 0; start < len(d.vertices); start += maxBatchVertices {
		end := min(start+maxBatchVertices, len(d.vertices))
		d.indices = sequentialIndices(d.indices, end-start)
		target.DrawTriangles(d.vertices[start:end], d.indices, src, op)
	}
}

// projectedVertex is a mesh vertex in screen space.
type projectedVertex struct {
	x, y, depth float32
	light       float32
	ok          bool
}

type sortedTriangle struct {
	first int // offset into Mesh.Indices
	depth float32
}

// buildVertices projects, lights, rejects and depth-sorts the mesh for a
// w×h target and returns three ebiten vertices per surviving triangle, far
// triangles first. It reuses d's scratch buffers.
func (d *MeshDrawer) buildVertices(combined, normal mgl32.Mat4, w, h float32) []ebiten.Vertex {
	m := d.Mesh
	lit := len(m.Normals) == len(m.Positions)
	nm := normal.Mat3()
	light := d.LightDir.Normalize()

	d.projected = slices.Grow(d.projected[:0], len(m.Positions))[:len(m.Positions)]
	for i, p := range m.Positions {
		pv := &d.projected[i]
		pv.x, pv.y, pv.depth, pv.ok = projectPoint(combined, p, w, h)
		pv.light = 1
		if lit {
			n := nm.Mul3x1(m.Normals[i])
			if n.Len() > 0 {
				n = n.Normalize()
			}
			pv.light = d.Ambient + (1-d.Ambient)*max(0, n.Dot(light))
		}
	}

	d.tris = d.tris[:0]
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := d.projected[m.Indices[i]]
		b := d.projected[m.Indices[i+1]]
		c := d.projected[m.Indices[i+2]]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		// Screen y grows downward, so a counter-clockwise triangle has a
		// negative signed area here.
		if d.CullBackfaces && signedArea(a, b, c) >= 0 {
			continue
		}
		d.tris = append(d.tris, sortedTriangle{first: i, depth: (a.depth + b.depth + c.depth) / 3})
	}
	slices.SortStableFunc(d.tris, func(x, y sortedTriangle) int {
		switch {
		case x.depth > y.depth:
			return -1
		case x.depth < y.depth:
			return 1
		}
		return 0
	})

	out := d.vertices[:0]
	col := m.Color
	for _, t := range d.tris {
		for k := 0; k < 3; k++ {
			pv := d.projected[m.Indices[t.first+k]]
			// Premultiplied: ebiten expects color * alpha.
			s := pv.light * col.A
			out = append(out, ebiten.Vertex{
				DstX:   pv.x,
				DstY:   pv.y,
				SrcX:   1,
				SrcY:   1,
				ColorR: clamp01(col.R * s),
				ColorG: clamp01(col.G * s),
				ColorB: clamp01(col.B * s),
				ColorA: clamp01(col.A),
			})
		}
	}
	return out
}

// projectPoint maps a model-space point through clip into pixel coordinates
// on a w×h target. depth is the normalized device z in [-1, 1] (larger is
// farther). ok is false when the point is outside the clip volume or behind
// the eye.
func projectPoint(clip mgl32.Mat4, p mgl32.Vec3, w, h float32) (x, y, depth float32, ok bool) {
	c := clip.Mul4x1(p.Vec4(1))
	cw := c.W()
	if cw <= 0 {
		return 0, 0, 0, false
	}
	ndc := c.Vec3().Mul(1 / cw)
	ok = ndc[0] >= -1 && ndc[0] <= 1 &&
		ndc[1] >= -1 && ndc[1] <= 1 &&
		ndc[2] >= -1 && ndc[2] <= 1
	x = (ndc[0] + 1) * 0.5 * w
	y = (1 - ndc[1]) * 0.5 * h
	return x, y, ndc[2], ok
}

func signedArea(a, b, c projectedVertex) float32 {
	return (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
}

// sequentialIndices returns buf filled with 0..n-1.
func sequentialIndices(buf []uint16, n int) []uint16 {
	if len(buf) >= n {
		return buf[:n]
	}
	for i := len(buf); i < n; i++ {
		buf = append(buf, uint16(i))
	}
	return buf
}
