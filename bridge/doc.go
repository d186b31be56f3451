// Package bridge implements the guest-side binding layer between a script
// and the host runtime that owns entity state.
//
// # Overview
//
// The host exposes entity transforms exclusively through a fixed table of
// scalar get/set functions keyed by an entity id; a script never holds a
// real reference to host memory. This package turns that table into a
// structured, field-addressable view:
//
//	Env -> EntityHandle -> TransformBinding -> Vec3Binding -> host call
//
// Bindings carry no values. Every field read re-queries the host and every
// write forwards to the host immediately, so a binding is always consistent
// with host-side truth at the moment of access.
//
// # The current entity
//
// The host designates one entity as "current" before each lifecycle call.
// [Env.Self] returns a handle bound to that entity, rebuilding it only when
// the current id changes. Repeated Self calls within one entity context
// return the same handle pointer, so sub-bindings can be held across field
// accesses within a frame without going stale.
//
// # Usage
//
//	type Spinner struct{}
//
//	func (Spinner) Init(env *bridge.Env) {}
//
//	func (Spinner) Update(env *bridge.Env, dt float32) {
//	    rot := env.Self().Transform().Rotation()
//	    rot.SetY(rot.Y() + dt)
//	}
//
// Execution is single-threaded and strictly sequential: the host sets the
// current entity, invokes one lifecycle entry point, and waits for it to
// return. Nothing in this package is safe for concurrent use.
package bridge
