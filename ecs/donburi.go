// Package ecs provides ECS adapters for grove.
package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DrawEvent carries the matrices a payload received during one draw.
type DrawEvent struct {
	Name     string
	Combined mgl32.Mat4
	View     mgl32.Mat4
	Normal   mgl32.Mat4
	Model    mgl32.Mat4
}

// DrawEventType is the Donburi event type for grove draw events.
// Subscribe to this in your ECS systems to receive world-space placements.
var DrawEventType = events.NewEventType[DrawEvent]()

type publisher struct {
	world donburi.World
	name  string
	inner grove.Drawable
}

// Publish returns a Drawable that publishes a DrawEvent named name to world
// on every draw and then forwards the draw to inner. inner may be nil.
// Events are queued and delivered by ProcessEvents.
func Publish(world donburi.World, name string, inner grove.Drawable) grove.Drawable {
	return &publisher{world: world, name: name, inner: inner}
}

func (p *publisher) Draw(combined, view, normal, model mgl32.Mat4) {
	DrawEventType.Publish(p.world, DrawEvent{
		Name:     p.name,
		Combined: combined,
		View:     view,
		Normal:   normal,
		Model:    model,
	})
	if p.inner != nil {
		p.inner.Draw(combined, view, normal, model)
	}
}
