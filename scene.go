package grove

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the root registry, the camera and
// the canvas mesh payloads render into.
type Scene struct {
	roots []*Node
	debug bool

	// Camera supplies the projection and view for each frame.
	Camera *Camera
	// Model is the base model matrix every root is drawn with.
	Model mgl32.Mat4
	// ClearColor fills the screen before drawing. A zero alpha skips the fill.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	canvas          *Canvas
	updateFunc      func() error
	testRunner      *TestRunner
	screenshotQueue []string
	lastStats       debugStats
}

// NewScene creates a scene with an empty root registry, a default camera
// over viewport, an identity model matrix and an unbound canvas.
func NewScene(viewport Rect) *Scene {
	return &Scene{
		Camera:        NewCamera(viewport),
		Model:         mgl32.Ident4(),
		ScreenshotDir: "screenshots",
		canvas:        NewCanvas(),
	}
}

// Canvas returns the scene's canvas. Pass it to NewMeshDrawer.
func (s *Scene) Canvas() *Canvas {
	return s.canvas
}

// AddRoot appends root to the registry. Roots are drawn in registry order.
// Adding a root twice draws it twice.
func (s *Scene) AddRoot(root *Node) {
	if root == nil {
		panic("grove: cannot add nil root")
	}
	s.roots = append(s.roots, root)
}

// RemoveRoot removes the first occurrence of root from the registry and
// reports whether it was present.
func (s *Scene) RemoveRoot(root *Node) bool {
	for i, r := range s.roots {
		if r == root {
			copy(s.roots[i:], s.roots[i+1:])
			s.roots[len(s.roots)-1] = nil
			s.roots = s.roots[:len(s.roots)-1]
			return true
		}
	}
	return false
}

// Roots returns the root list. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []*Node {
	return s.roots
}

// SetUpdateFunc sets a callback run at the start of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances the attached test runner, then runs the update callback,
// if any, and returns its error.
func (s *Scene) Update() error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.updateFunc == nil {
		return nil
	}
	return s.updateFunc()
}

// Frame returns the base matrices for the current camera and model matrix.
func (s *Scene) Frame() FrameMatrices {
	return s.Camera.Frame(s.Model)
}

// DrawMatrices draws every root with f as its incoming matrices.
func (s *Scene) DrawMatrices(f FrameMatrices) {
	var stats *debugStats
	var t0 time.Time
	if s.debug {
		stats = &debugStats{rootCount: len(s.roots)}
		t0 = time.Now()
	}

	for _, root := range s.roots {
		root.draw(f.Combined, f.View, f.Normal, f.Model, stats)
	}

	if s.debug {
		stats.traverseTime = time.Since(t0)
		s.lastStats = *stats
		s.debugLog(*stats)
	}
}

// Draw binds the canvas to screen, clears it, draws every root with the
// camera's base matrices and captures any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}
	if b := screen.Bounds(); s.Camera.Viewport.Width == 0 || s.Camera.Viewport.Height == 0 {
		s.Camera.Viewport = Rect{Width: float32(b.Dx()), Height: float32(b.Dy())}
	}
	s.canvas.Bind(screen)
	s.DrawMatrices(s.Frame())
	s.canvas.Bind(nil)
	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are printed as nodes are attached, and per-frame
// traversal stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// construction (which lacks a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
