// Package guest wires the bridge core to the WASM import/export surface
// of a guest script module.
//
// A script implements [bridge.Script] and registers itself from a package
// initializer (reactor builds run initializers, not main):
//
//	func init() { guest.Register(myScript{}) }
//	func main() {}
//
// Build with:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o script.wasm .
//
// The resulting module imports the eighteen transform functions from the
// "context" host module and exports setCurrentEntity, init, and update
// for the host to call. A module that registers no script still links and
// exports the full surface; its lifecycle calls are no-ops.
package guest

import "github.com/okto-dev/scriptling/bridge"

var script bridge.Script

// Register installs the script the exported lifecycle functions dispatch
// to. Call it once, from a package init function.
func Register(s bridge.Script) { script = s }
