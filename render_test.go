package grove

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const matEpsilon = 1e-4

// drawCall is one recorded payload invocation.
type drawCall struct {
	name string

	combined, view, normal, model mgl32.Mat4
}

// recorder is a Drawable that appends every call to a shared log.
type recorder struct {
	name string
	log  *[]drawCall
}

func (r *recorder) Draw(combined, view, normal, model mgl32.Mat4) {
	if r.log == nil {
		r.log = new([]drawCall)
	}
	*r.log = append(*r.log, drawCall{r.name, combined, view, normal, model})
}

func newRecorder(name string, log *[]drawCall) *recorder {
	return &recorder{name: name, log: log}
}

// matNear reports whether every element of a and b differs by at most
// matEpsilon, scaled up for large elements.
func matNear(a, b mgl32.Mat4) bool {
	for i := range a {
		tol := float32(matEpsilon)
		if m := float32(math.Abs(float64(b[i]))); m > 1 {
			tol *= m
		}
		if float32(math.Abs(float64(a[i]-b[i]))) > tol {
			return false
		}
	}
	return true
}

func assertMat(t *testing.T, name string, got, want mgl32.Mat4) {
	t.Helper()
	if !matNear(got, want) {
		t.Errorf("%s =\n%v\nwant\n%v", name, got, want)
	}
}

func assertCall(t *testing.T, call drawCall, p, v, n, m mgl32.Mat4) {
	t.Helper()
	assertMat(t, call.name+" combined", call.combined, p)
	assertMat(t, call.name+" view", call.view, v)
	assertMat(t, call.name+" normal", call.normal, n)
	assertMat(t, call.name+" model", call.model, m)
}

// distinct non-commuting base matrices for the four streams.
var (
	baseP = mgl32.Perspective(1, 1.5, 0.1, 50)
	baseV = mgl32.LookAtV(mgl32.Vec3{1, 2, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	baseN = mgl32.HomogRotate3DX(0.3)
	baseM = mgl32.Scale3D(2, 1, 0.5)
)

// --- Composition ---

func TestDrawExampleScenario(t *testing.T) {
	var log []drawCall
	root := NewGroup("root", Identity, nil)
	NewNode("child", newRecorder("child", &log), Matrix(mgl32.Translate3D(1, 0, 0)), root)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)

	if len(log) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(log))
	}
	want := mgl32.Translate3D(1, 0, 0)
	assertCall(t, log[0], want, want, want, want)
}

func TestDrawLeaf(t *testing.T) {
	var log []drawCall
	l := mgl32.HomogRotate3DY(0.7).Mul4(mgl32.Translate3D(0, 3, -1))
	leaf := NewNode("leaf", newRecorder("leaf", &log), Matrix(l), nil)

	leaf.Draw(baseP, baseV, baseN, baseM)

	if len(log) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(log))
	}
	assertCall(t, log[0], baseP.Mul4(l), baseV.Mul4(l), baseN.Mul4(l), baseM.Mul4(l))
}

func TestDrawCompositionOrder(t *testing.T) {
	var log []drawCall
	r := mgl32.HomogRotate3DZ(0.5)
	c := mgl32.Translate3D(3, 0, 0)
	root := NewGroup("root", Matrix(r), nil)
	NewNode("child", newRecorder("child", &log), Matrix(c), root)

	root.Draw(baseP, baseV, baseN, baseM)

	if len(log) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(log))
	}
	call := log[0]
	assertCall(t, call,
		baseP.Mul4(r).Mul4(c),
		baseV.Mul4(r).Mul4(c),
		baseN.Mul4(r).Mul4(c),
		baseM.Mul4(r).Mul4(c),
	)

	// The reversed order must give a different answer for these matrices.
	wrong := baseM.Mul4(c.Mul4(r))
	if matNear(call.model, wrong) {
		t.Error("model equals base·(C·R); local transforms composed in the wrong order")
	}
}

func TestDrawPayloadOnRootSeesOwnTransform(t *testing.T) {
	var log []drawCall
	l := mgl32.Translate3D(0, 0, -2)
	root := NewNode("root", newRecorder("root", &log), Matrix(l), nil)

	root.Draw(baseP, baseV, baseN, baseM)

	if len(log) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(log))
	}
	assertCall(t, log[0], baseP.Mul4(l), baseV.Mul4(l), baseN.Mul4(l), baseM.Mul4(l))
}

func TestDrawSiblingsShareParentMatrices(t *testing.T) {
	var log []drawCall
	p := mgl32.Translate3D(0, 1, 0)
	a := mgl32.Translate3D(5, 0, 0)
	b := mgl32.Scale3D(2, 2, 2)
	root := NewGroup("root", Matrix(p), nil)
	NewNode("a", newRecorder("a", &log), Matrix(a), root)
	NewNode("b", newRecorder("b", &log), Matrix(b), root)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)

	if len(log) != 2 {
		t.Fatalf("draw calls = %d, want 2", len(log))
	}
	assertMat(t, "a model", log[0].model, p.Mul4(a))
	// b must not see a's transform.
	assertMat(t, "b model", log[1].model, p.Mul4(b))
}

func TestDrawNilLocalIsIdentity(t *testing.T) {
	var log []drawCall
	root := NewNode("root", newRecorder("root", &log), nil, nil)
	root.Draw(baseP, baseV, baseN, baseM)
	if len(log) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(log))
	}
	assertCall(t, log[0], baseP, baseV, baseN, baseM)
}

// --- Completeness and order ---

func TestDrawCountsOnlyPayloadNodes(t *testing.T) {
	var log []drawCall
	root := NewGroup("root", nil, nil)
	g1 := NewGroup("g1", nil, root)
	NewNode("p1", newRecorder("p1", &log), nil, g1)
	NewNode("p2", newRecorder("p2", &log), nil, g1)
	g2 := NewGroup("g2", nil, root)
	NewGroup("g3", nil, g2)
	NewNode("p3", newRecorder("p3", &log), nil, g2)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)

	if len(log) != 3 {
		t.Errorf("draw calls = %d, want 3", len(log))
	}
}

func TestDrawChildrenBeforeParent(t *testing.T) {
	var log []drawCall
	root := NewNode("root", newRecorder("root", &log), nil, nil)
	a := NewNode("a", newRecorder("a", &log), nil, root)
	NewNode("a1", newRecorder("a1", &log), nil, a)
	NewNode("a2", newRecorder("a2", &log), nil, a)
	b := NewNode("b", newRecorder("b", &log), nil, root)
	NewNode("b1", newRecorder("b1", &log), nil, b)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)

	want := []string{"a1", "a2", "a", "b1", "b", "root"}
	if len(log) != len(want) {
		t.Fatalf("draw calls = %d, want %d", len(log), len(want))
	}
	for i, name := range want {
		if log[i].name != name {
			t.Errorf("call %d = %q, want %q", i, log[i].name, name)
		}
	}
}

func TestDrawEveryNodeOnce(t *testing.T) {
	var log []drawCall
	root := NewNode("root", newRecorder("n", &log), nil, nil)
	level := []*Node{root}
	total := 1
	for depth := 0; depth < 4; depth++ {
		var next []*Node
		for _, parent := range level {
			for k := 0; k < 3; k++ {
				next = append(next, NewNode("n", newRecorder("n", &log), nil, parent))
				total++
			}
		}
		level = next
	}

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)

	if len(log) != total {
		t.Errorf("draw calls = %d, want %d", len(log), total)
	}
	if c := root.Count(); c != total {
		t.Errorf("Count() = %d, want %d", c, total)
	}
}

// --- Grouping transparency ---

func TestGroupingNodeTransparency(t *testing.T) {
	g := mgl32.HomogRotate3DX(0.4).Mul4(mgl32.Translate3D(1, 2, 3))
	a := mgl32.Translate3D(-1, 0, 0)
	b := mgl32.Scale3D(1, 3, 1)

	var grouped []drawCall
	root := NewGroup("root", nil, nil)
	group := NewGroup("group", Matrix(g), root)
	NewNode("a", newRecorder("a", &grouped), Matrix(a), group)
	NewNode("b", newRecorder("b", &grouped), Matrix(b), group)
	root.Draw(baseP, baseV, baseN, baseM)

	var flat []drawCall
	flatRoot := NewGroup("root", nil, nil)
	NewNode("a", newRecorder("a", &flat), Matrix(g.Mul4(a)), flatRoot)
	NewNode("b", newRecorder("b", &flat), Matrix(g.Mul4(b)), flatRoot)
	flatRoot.Draw(baseP, baseV, baseN, baseM)

	if len(grouped) != 2 || len(flat) != 2 {
		t.Fatalf("draw calls = %d and %d, want 2 each", len(grouped), len(flat))
	}
	for i := range grouped {
		assertCall(t, grouped[i], flat[i].combined, flat[i].view, flat[i].normal, flat[i].model)
	}
}

// --- Transform queries ---

// countingSource counts LocalMatrix calls.
type countingSource struct {
	m     mgl32.Mat4
	calls int
}

func (s *countingSource) LocalMatrix() mgl32.Mat4 {
	s.calls++
	return s.m
}

func TestDrawQueriesLocalOncePerVisit(t *testing.T) {
	src := &countingSource{m: mgl32.Translate3D(1, 1, 1)}
	root := NewNode("root", &recorder{}, src, nil)
	NewNode("child", &recorder{}, nil, root)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)
	root.Draw(i, i, i, i)

	if src.calls != 2 {
		t.Errorf("LocalMatrix calls = %d, want 2", src.calls)
	}
	if src.m != mgl32.Translate3D(1, 1, 1) {
		t.Error("Draw must not modify the transform source")
	}
}

func TestDrawReadsCurrentTransform(t *testing.T) {
	var log []drawCall
	trs := NewTRS()
	root := NewNode("root", newRecorder("root", &log), trs, nil)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)
	trs.SetTranslation(4, 0, 0)
	root.Draw(i, i, i, i)

	if len(log) != 2 {
		t.Fatalf("draw calls = %d, want 2", len(log))
	}
	assertMat(t, "first", log[0].model, i)
	assertMat(t, "second", log[1].model, mgl32.Translate3D(4, 0, 0))
}

func TestDrawDoesNotMutateTree(t *testing.T) {
	root := NewGroup("root", nil, nil)
	a := NewNode("a", &recorder{}, nil, root)
	NewNode("b", &recorder{}, nil, root)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)

	if root.NumChildren() != 2 || root.ChildAt(0) != a || a.Parent() != root {
		t.Error("Draw changed the tree structure")
	}
}

// --- Failure propagation ---

func TestDrawPayloadPanicPropagates(t *testing.T) {
	root := NewGroup("root", nil, nil)
	NewNode("bad", DrawableFunc(func(_, _, _, _ mgl32.Mat4) {
		panic("payload failed")
	}), nil, root)

	defer func() {
		if r := recover(); r != "payload failed" {
			t.Errorf("recover() = %v, want %q", r, "payload failed")
		}
	}()
	i := mgl32.Ident4()
	root.Draw(i, i, i, i)
	t.Error("Draw returned normally after payload panic")
}

func TestDrawSourcePanicStopsBeforePayload(t *testing.T) {
	var log []drawCall
	root := NewNode("root", newRecorder("root", &log), nil, nil)
	NewNode("bad", nil, TransformFunc(func() mgl32.Mat4 {
		panic("source failed")
	}), root)

	func() {
		defer func() { _ = recover() }()
		i := mgl32.Ident4()
		root.Draw(i, i, i, i)
	}()

	if len(log) != 0 {
		t.Errorf("root payload drawn %d times after child failure, want 0", len(log))
	}
}

// --- Helpers ---

func TestDrawFrame(t *testing.T) {
	var log []drawCall
	l := mgl32.Translate3D(0, 2, 0)
	n := NewNode("n", newRecorder("n", &log), Matrix(l), nil)
	n.DrawFrame(FrameMatrices{Combined: baseP, View: baseV, Normal: baseN, Model: baseM})
	if len(log) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(log))
	}
	assertCall(t, log[0], baseP.Mul4(l), baseV.Mul4(l), baseN.Mul4(l), baseM.Mul4(l))
}

func TestWorldMatrixMatchesModelStream(t *testing.T) {
	var log []drawCall
	root := NewGroup("root", Matrix(mgl32.HomogRotate3DY(1)), nil)
	mid := NewGroup("mid", Matrix(mgl32.Translate3D(0, 0, 2)), root)
	leaf := NewNode("leaf", newRecorder("leaf", &log), Matrix(mgl32.Scale3D(3, 3, 3)), mid)

	i := mgl32.Ident4()
	root.Draw(i, i, i, i)

	if len(log) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(log))
	}
	assertMat(t, "WorldMatrix", leaf.WorldMatrix(), log[0].model)
}

func TestDrawableFunc(t *testing.T) {
	called := false
	var f Drawable = DrawableFunc(func(_, _, _, _ mgl32.Mat4) { called = true })
	i := mgl32.Ident4()
	f.Draw(i, i, i, i)
	if !called {
		t.Error("DrawableFunc was not called")
	}
}
