// Package engine is the host side of the scripting bridge: entity storage,
// the wazero script runtime that exposes the host function table to guest
// modules, and the simulation tick loop.
//
// # Overview
//
// A [World] owns all entity transform state. Guest scripts attached to
// entities run in isolated WASM modules; every transform access crosses
// the guest/host boundary through one of the eighteen functions the
// runtime exports in the "context" host module.
//
//	world := engine.NewWorld()
//	world.Spawn("player",
//	    engine.At(0, 1, 0),
//	    engine.WithScript("scripts/mover.wasm"))
//
//	rt, err := engine.NewRuntime(world)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(context.Background())
//
//	ticker := engine.NewTicker(engine.WithTickRate(60))
//	ticker.Run(ctx, func(dt float32) error {
//	    return rt.Tick(ctx, dt)
//	})
//
// Go-authored behaviors can skip WASM entirely and run in-process through
// a [ScriptSystem], which drives them with the same current-entity
// protocol over the same host table.
package engine
