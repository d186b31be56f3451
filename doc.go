// Package scriptling is a WebAssembly scripting bridge for simulation
// entities. Guest scripts compiled to WASM read and write the transform
// of the "current" entity through a fixed table of host functions, and
// participate in a per-frame lifecycle (init once, update every tick).
//
// # Overview
//
// The [bridge] package is the guest-side core: it turns the opaque numeric
// entity id and the 18 scalar host functions into an ergonomic
// Entity -> Transform -> Vec3 view with an identity-cached self() accessor.
// The [guest] package wires that core to the WASM import/export surface.
// The [engine] package is the host side: an entity world, a wazero-based
// script runtime exposing the host function table, and the tick loop.
// The [scene] package loads authored scene manifests into a world.
//
// # Basic Usage (host)
//
//	world := engine.NewWorld()
//	world.Spawn("player", engine.WithScript("mover.wasm"))
//
//	rt, _ := engine.NewRuntime(world)
//	defer rt.Close(context.Background())
//
//	ticker := engine.NewTicker(engine.WithTickRate(60))
//	ticker.Run(ctx, func(dt float32) error {
//	    return rt.Tick(ctx, dt)
//	})
//
// # Basic Usage (guest script)
//
//	type Mover struct{}
//
//	func (Mover) Init(env *bridge.Env) { env.Self().Transform().Position().SetX(-2) }
//	func (Mover) Update(env *bridge.Env, dt float32) {
//	    pos := env.Self().Transform().Position()
//	    pos.SetX(pos.X() + dt*1.01)
//	}
//
//	func init() { guest.Register(Mover{}) }
//
// Build scripts with GOOS=wasip1 GOARCH=wasm.
//
// See the [bridge], [engine], [guest], and [scene] packages for detailed
// API documentation.
package scriptling
