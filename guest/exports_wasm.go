//go:build wasip1

package guest

import "github.com/okto-dev/scriptling/bridge"

// env is the single per-instance context cell the module format requires.
// The table is complete by construction, so NewEnv cannot fail here.
var env = func() *bridge.Env {
	e, err := bridge.NewEnv(hostTable())
	if err != nil {
		panic(err)
	}
	return e
}()

//go:wasmexport setCurrentEntity
func wasmSetCurrentEntity(id uint32) {
	env.SetCurrentEntity(bridge.EntityID(id))
}

//go:wasmexport init
func wasmInit() {
	if script != nil {
		script.Init(env)
	}
}

//go:wasmexport update
func wasmUpdate(dt float32) {
	if script != nil {
		script.Update(env, dt)
	}
}
