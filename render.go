package grove

import "github.com/go-gl/mathgl/mgl32"

// localMatrix queries n's transform source. A nil source is the identity.
func localMatrix(n *Node) mgl32.Mat4 {
	if n.local == nil {
		return mgl32.Ident4()
	}
	return n.local.LocalMatrix()
}

// Draw composes the node's local transform onto each incoming matrix
// (incoming · local), draws every child with the composed matrices, and then
// draws the node's own payload, if any.
//
// At a root the inputs are the scene's base matrices for the frame; see
// Camera.Frame. Draw does not modify any node. A panic raised by a transform
// source or payload is not recovered.
func (n *Node) Draw(combined, view, normal, model mgl32.Mat4) {
	n.draw(combined, view, normal, model, nil)
}

// DrawFrame calls Draw with the four streams in f.
func (n *Node) DrawFrame(f FrameMatrices) {
	n.draw(f.Combined, f.View, f.Normal, f.Model, nil)
}

// draw is the traversal behind Draw. When stats is non-nil it counts visited
// nodes and payload calls.
func (n *Node) draw(combined, view, normal, model mgl32.Mat4, stats *debugStats) {
	local := localMatrix(n)
	combined = combined.Mul4(local)
	view = view.Mul4(local)
	normal = normal.Mul4(local)
	model = model.Mul4(local)

	if stats != nil {
		stats.nodeCount++
	}

	for _, child := range n.children {
		child.draw(combined, view, normal, model, stats)
	}

	if n.payload != nil {
		if stats != nil {
			stats.drawCallCount++
		}
		n.payload.Draw(combined, view, normal, model)
	}
}

// WorldMatrix returns the product of every ancestor's local matrix and n's
// own, root first. It is the model stream n's payload receives when the root
// is drawn with an identity model matrix.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := localMatrix(n)
	for p := n.parent; p != nil; p = p.parent {
		m = localMatrix(p).Mul4(m)
	}
	return m
}
