// Package aether draws animated, shader-based overlay effects over arbitrary
// [Ebitengine] content.
//
// An [Effect] supplies Kage source, a uniform map and an animated flag. An
// [Overlay] renders one effect over content: it compiles the source once
// through a shared [ProgramCache], re-binds only uniforms per frame, and runs
// a per-overlay animation task throttled to the resolved [Quality] tier.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	stack := aether.NewStack(aether.DefaultConfig())
//	stack.Add(weather.ModerateRain())
//	aether.Run(stack, aether.RunConfig{
//		Title: "Rain", Width: 640, Height: 480,
//		Content: drawScene,
//	})
//
// For full control, implement [ebiten.Game] yourself and call [Stack.Update]
// and [Stack.Draw] directly:
//
//	func (g *Game) Update() error        { g.stack.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.stack.Draw(s, g.drawScene) }
//
// # Shaders
//
// Sources use //kage:unit pixels. Every program may declare
//
//	var Resolution vec2 // render target size in pixels
//	var Time float      // seconds, animated effects only
//
// Other exported variables are bound from [Effect.Uniforms] by name. Names
// the program does not declare, and values of an incompatible type, are
// skipped. A source that fails to compile renders content only.
//
// # Environment
//
// Power saving forces [QualityLow]; reduced motion disables animated
// effects and leaves static ones alone. Both come from [Signal] values on an
// [Environment]; a [Stack] exposes them as [Switch]es.
//
// Ready-made effects live in the weather subpackage. Overlay events can be
// published into a [Donburi] world with the adapter in aether/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package aether
