package grove

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOutput receives debug diagnostics. Tests may redirect it.
var debugOutput io.Writer = os.Stderr

// debugStats holds per-frame traversal metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	rootCount     int
	nodeCount     int
	drawCallCount int
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOutput,
		"[grove] traverse: %v | roots: %d | nodes: %d | draw calls: %d\n",
		stats.traverseTime, stats.rootCount, stats.nodeCount, stats.drawCallCount)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
// Draw recurses once per level, so very deep trees risk exhausting the stack.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	if depth := n.Depth() + 1; depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOutput, "[grove] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(debugOutput, "[grove] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
