package grove

// nodeIDCounter is a plain counter (no atomic; grove is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element: an optional payload, a local transform
// source and an ordered list of exclusively owned children.
//
// A node is attached to its parent when it is constructed and is never
// detached or reparented afterwards. The tree must be fully built before it
// is drawn; building and drawing must not overlap.
type Node struct {
	// Identity
	ID   uint32
	Name string

	payload Drawable
	local   TransformSource

	// parent is a back-reference only; it does not own n and is never
	// followed by Draw.
	parent   *Node
	children []*Node
}

// NewNode creates a node holding payload (nil for a pure grouping node) and
// local. A nil local is treated as the identity transform.
// If parent is non-nil the new node is appended to parent's children before
// NewNode returns; children are drawn in the order they were created.
//
// parent must not be a descendant of a node that is itself being constructed
// as an ancestor of parent. No cycle check is performed.
func NewNode(name string, payload Drawable, local TransformSource, parent *Node) *Node {
	n := &Node{
		ID:      nextNodeID(),
		Name:    name,
		payload: payload,
		local:   local,
		parent:  parent,
	}
	if parent != nil {
		parent.addChild(n)
	}
	return n
}

// NewGroup creates a node with no payload. It only contributes its local
// transform to its descendants.
func NewGroup(name string, local TransformSource, parent *Node) *Node {
	return NewNode(name, nil, local, parent)
}

// addChild appends child to this node's children. Only NewNode calls it.
func (n *Node) addChild(child *Node) {
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// Parent returns the node this node was attached to, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Payload returns the node's drawable, or nil for a grouping node.
func (n *Node) Payload() Drawable {
	return n.payload
}

// Local returns the node's transform source. It may be nil.
func (n *Node) Local() TransformSource {
	return n.local
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("grove: child index out of range")
	}
	return n.children[index]
}

// IsRoot reports whether n was constructed without a parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Walk calls fn for n and each of its descendants in depth-first pre-order,
// siblings in insertion order. depth is relative to n. If fn returns false,
// Walk returns immediately.
// Walk uses an explicit stack, so tree depth is bounded only by memory.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{n, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.node, top.depth) {
			return
		}
		// Push in reverse so the first child is popped first.
		for i := len(top.node.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{top.node.children[i], top.depth + 1})
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n, including n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Find returns the first node named name in the subtree rooted at n, in
// Walk order, or nil if there is none.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}
