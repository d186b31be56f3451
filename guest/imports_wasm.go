//go:build wasip1

package guest

import "github.com/okto-dev/scriptling/bridge"

// The complete host function table. All eighteen are mandatory imports:
// the module declares every one even if a script exercises only a subset.

//go:wasmimport context get_entity_position_x
func getEntityPositionX(id uint32) float32

//go:wasmimport context get_entity_position_y
func getEntityPositionY(id uint32) float32

//go:wasmimport context get_entity_position_z
func getEntityPositionZ(id uint32) float32

//go:wasmimport context set_entity_position_x
func setEntityPositionX(id uint32, v float32)

//go:wasmimport context set_entity_position_y
func setEntityPositionY(id uint32, v float32)

//go:wasmimport context set_entity_position_z
func setEntityPositionZ(id uint32, v float32)

//go:wasmimport context get_entity_rotation_x
func getEntityRotationX(id uint32) float32

//go:wasmimport context get_entity_rotation_y
func getEntityRotationY(id uint32) float32

//go:wasmimport context get_entity_rotation_z
func getEntityRotationZ(id uint32) float32

//go:wasmimport context set_entity_rotation_x
func setEntityRotationX(id uint32, v float32)

//go:wasmimport context set_entity_rotation_y
func setEntityRotationY(id uint32, v float32)

//go:wasmimport context set_entity_rotation_z
func setEntityRotationZ(id uint32, v float32)

//go:wasmimport context get_entity_scale_x
func getEntityScaleX(id uint32) float32

//go:wasmimport context get_entity_scale_y
func getEntityScaleY(id uint32) float32

//go:wasmimport context get_entity_scale_z
func getEntityScaleZ(id uint32) float32

//go:wasmimport context set_entity_scale_x
func setEntityScaleX(id uint32, v float32)

//go:wasmimport context set_entity_scale_y
func setEntityScaleY(id uint32, v float32)

//go:wasmimport context set_entity_scale_z
func setEntityScaleZ(id uint32, v float32)

func get(fn func(uint32) float32) func(bridge.EntityID) float32 {
	return func(id bridge.EntityID) float32 { return fn(uint32(id)) }
}

func set(fn func(uint32, float32)) func(bridge.EntityID, float32) {
	return func(id bridge.EntityID, v float32) { fn(uint32(id), v) }
}

func hostTable() *bridge.Table {
	return &bridge.Table{
		Position: bridge.VecAccessors{
			X: bridge.AxisAccessor{Get: get(getEntityPositionX), Set: set(setEntityPositionX)},
			Y: bridge.AxisAccessor{Get: get(getEntityPositionY), Set: set(setEntityPositionY)},
			Z: bridge.AxisAccessor{Get: get(getEntityPositionZ), Set: set(setEntityPositionZ)},
		},
		Rotation: bridge.VecAccessors{
			X: bridge.AxisAccessor{Get: get(getEntityRotationX), Set: set(setEntityRotationX)},
			Y: bridge.AxisAccessor{Get: get(getEntityRotationY), Set: set(setEntityRotationY)},
			Z: bridge.AxisAccessor{Get: get(getEntityRotationZ), Set: set(setEntityRotationZ)},
		},
		Scale: bridge.VecAccessors{
			X: bridge.AxisAccessor{Get: get(getEntityScaleX), Set: set(setEntityScaleX)},
			Y: bridge.AxisAccessor{Get: get(getEntityScaleY), Set: set(setEntityScaleY)},
			Z: bridge.AxisAccessor{Get: get(getEntityScaleZ), Set: set(setEntityScaleZ)},
		},
	}
}
