// Package ecs provides ECS adapters for grove's draw traversal.
//
// The primary adapter is [Publish], which wraps a node payload so that every
// draw it receives is published into a [Donburi] world as a typed event.
// Subscribe to [DrawEventType] in your ECS systems to receive them.
//
// Usage:
//
//	payload := ecs.Publish(world, "ship", grove.NewMeshDrawer(mesh, scene.Canvas()))
//	grove.NewNode("ship", payload, trs, root)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
