package bridge

import "fmt"

// EntityID identifies one simulation entity. It is host-assigned and
// opaque: the guest never allocates, frees, or validates it. The zero
// value is the default current entity before the host sets one.
type EntityID uint32

// Axis selects one scalar channel of a Vec3.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// AxisAccessor pairs the host getter and setter for one scalar channel,
// e.g. position.x. Accessors are stateless and fixed at build time; only
// the entity id passed at call time selects which entity is touched.
type AxisAccessor struct {
	Get func(EntityID) float32
	Set func(EntityID, float32)
}

// VecAccessors holds the three axis accessors for one transform category.
type VecAccessors struct {
	X, Y, Z AxisAccessor
}

// Table is the complete host function table: one get/set pair for each of
// {position, rotation, scale} x {x, y, z}, eighteen functions total.
// Wiring is by named field rather than by string convention, so a
// miswired table is caught by [Table.Validate] before any script runs.
type Table struct {
	Position VecAccessors
	Rotation VecAccessors
	Scale    VecAccessors
}

// Validate reports the first missing accessor, or nil if all eighteen
// functions are present.
func (t *Table) Validate() error {
	for _, cat := range []struct {
		name string
		vec  *VecAccessors
	}{
		{"position", &t.Position},
		{"rotation", &t.Rotation},
		{"scale", &t.Scale},
	} {
		for axis, acc := range []*AxisAccessor{&cat.vec.X, &cat.vec.Y, &cat.vec.Z} {
			if acc.Get == nil {
				return fmt.Errorf("table: missing getter for %s.%s", cat.name, Axis(axis))
			}
			if acc.Set == nil {
				return fmt.Errorf("table: missing setter for %s.%s", cat.name, Axis(axis))
			}
		}
	}
	return nil
}

// Bind constructs an EntityHandle for id. Construction is pure allocation:
// no host function is called until a field on the handle is accessed.
func (t *Table) Bind(id EntityID) *EntityHandle {
	return &EntityHandle{
		id: id,
		transform: TransformBinding{
			id:       id,
			position: Vec3Binding{id: id, axes: [3]AxisAccessor{t.Position.X, t.Position.Y, t.Position.Z}},
			rotation: Vec3Binding{id: id, axes: [3]AxisAccessor{t.Rotation.X, t.Rotation.Y, t.Rotation.Z}},
			scale:    Vec3Binding{id: id, axes: [3]AxisAccessor{t.Scale.X, t.Scale.Y, t.Scale.Z}},
		},
	}
}
