// Package galaxy renders an inventory as a navigable pseudo-3D starfield
// for [Ebitengine].
//
// Equipped gear hangs in two fixed columns around the player's subclass,
// carried items scatter through the near field, and the vault recedes into
// the background as thousands of colored points. A manual perspective
// projection (no GPU 3D) maps the field to the screen each tick; the camera
// orbits, zooms and flies under both built-in input bindings and host
// control.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	stage := galaxy.NewStage(1280, 720)
//	stage.SetDefs(manifest)
//	stage.SetInventory(snapshot)
//	galaxy.Run(stage, galaxy.RunConfig{
//		Title: "Inventory", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Stage.Update] and [Stage.Draw] directly:
//
//	type Game struct{ stage *galaxy.Stage }
//
//	func (g *Game) Update() error         { g.stage.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.stage.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Items and layout
//
// The stage consumes an [InventorySnapshot] (equipped, carried, vault) plus
// a [DefSource] resolving item hashes to names, icons, slots and tiers.
// Layout is pure and deterministic: the same snapshot, defs and seed always
// place every item identically. Call [Stage.SetInventory] whenever the
// inventory changes; the field rebuilds on the next tick.
//
// # Interaction
//
// Built-in bindings: click an item to fly the camera to it and lock focus,
// click empty space to release, right-click an eligible item for the
// synergy overlay, drag to orbit, wheel to zoom, cursor at the screen edge
// to pan. Hosts observe interactions through [Stage.OnClick],
// [Stage.OnHoverEnter] and friends, or mirror them into an ECS world via
// [Stage.SetEventSink] (see the galaxy/ecs adapter, built on [Donburi]).
// Camera flights and overlay fades tween via [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package galaxy
