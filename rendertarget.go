package grove

import "github.com/hajimehoshi/ebiten/v2"

// Canvas is the render target shared by the mesh payloads of a scene.
// Scene.Draw binds it to the screen for the duration of a frame; payloads
// drawn while it is unbound produce no output.
type Canvas struct {
	target *ebiten.Image
}

// NewCanvas creates an unbound canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Bind sets the image subsequent draws render into. Passing nil unbinds.
func (c *Canvas) Bind(img *ebiten.Image) {
	c.target = img
}

// Target returns the bound image, or nil.
func (c *Canvas) Target() *ebiten.Image {
	if c == nil {
		return nil
	}
	return c.target
}

// Size returns the bound image size in pixels, or (0, 0) when unbound.
func (c *Canvas) Size() (w, h int) {
	img := c.Target()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// whitePixel is the source image for untextured triangles. It is created on
// first use so that importing the package does not touch the graphics driver.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(3, 3)
		whitePixel.Fill(ColorWhite.RGBA())
	}
	return whitePixel
}
