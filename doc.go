// Package grove is a retained-mode 3D scene graph for [Ebitengine].
//
// Every element of a scene is a [Node]. A node carries an optional
// [Drawable] payload and a [TransformSource] that yields its local 4×4
// matrix. Nodes are attached to their parent when they are created and are
// drawn in creation order.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := grove.NewScene(grove.Rect{Width: 640, Height: 480})
//	root := grove.NewGroup("root", grove.Identity, nil)
//	scene.AddRoot(root)
//	// ... add nodes ...
//	grove.Run(scene, grove.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Scene graph
//
// [Node.Draw] takes four matrices: world-to-clip, view, normal and model.
// Each node multiplies every incoming matrix by its local matrix (incoming on
// the left), draws its children with the results, and then hands the same
// results to its own payload. Children therefore draw before their parent,
// and siblings draw in the order they were attached.
//
//	trs := grove.NewTRS()
//	trs.SetTranslation(1, 0, 0)
//	cube := grove.NewMeshDrawer(grove.NewCube(1, grove.ColorWhite), scene.Canvas())
//	grove.NewNode("cube", cube, trs, root)
//
// A [Scene] keeps an explicit list of roots and seeds each of them with its
// [Camera]'s base matrices once per frame. A node without a payload is a
// pure grouping node: it only contributes its transform.
//
// # Animation
//
// Transform sources are read on every draw, so animating a [TRS] between
// frames is enough to move a subtree. [TweenGroup] drives TRS fields with
// [gween] easing.
//
// # Threading
//
// grove is single-threaded. Build a tree completely before drawing it; a
// draw never modifies the tree.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package grove
