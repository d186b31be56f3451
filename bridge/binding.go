package bridge

// Vec3Binding is a field-triplet view over one transform category of one
// entity. Reads and writes forward synchronously to the bound host
// functions; the cost of one field access is exactly one host call.
type Vec3Binding struct {
	id   EntityID
	axes [3]AxisAccessor
}

// EntityID returns the id this binding forwards to.
func (b *Vec3Binding) EntityID() EntityID { return b.id }

func (b *Vec3Binding) X() float32 { return b.axes[AxisX].Get(b.id) }
func (b *Vec3Binding) Y() float32 { return b.axes[AxisY].Get(b.id) }
func (b *Vec3Binding) Z() float32 { return b.axes[AxisZ].Get(b.id) }

func (b *Vec3Binding) SetX(v float32) { b.axes[AxisX].Set(b.id, v) }
func (b *Vec3Binding) SetY(v float32) { b.axes[AxisY].Set(b.id, v) }
func (b *Vec3Binding) SetZ(v float32) { b.axes[AxisZ].Set(b.id, v) }

// Axis reads one channel selected at runtime.
func (b *Vec3Binding) Axis(a Axis) float32 { return b.axes[a].Get(b.id) }

// SetAxis writes one channel selected at runtime.
func (b *Vec3Binding) SetAxis(a Axis, v float32) { b.axes[a].Set(b.id, v) }

// Values reads all three channels. Three host calls.
func (b *Vec3Binding) Values() (x, y, z float32) {
	return b.X(), b.Y(), b.Z()
}

// Set writes all three channels. Three host calls.
func (b *Vec3Binding) Set(x, y, z float32) {
	b.SetX(x)
	b.SetY(y)
	b.SetZ(z)
}

// Add offsets all three channels. Six host calls: the current value is
// re-read per channel, never cached.
func (b *Vec3Binding) Add(dx, dy, dz float32) {
	b.SetX(b.X() + dx)
	b.SetY(b.Y() + dy)
	b.SetZ(b.Z() + dz)
}

// TransformBinding aggregates the three category bindings of one entity.
// All sub-bindings share the parent's entity id.
type TransformBinding struct {
	id       EntityID
	position Vec3Binding
	rotation Vec3Binding
	scale    Vec3Binding
}

// EntityID returns the id this binding forwards to.
func (t *TransformBinding) EntityID() EntityID { return t.id }

func (t *TransformBinding) Position() *Vec3Binding { return &t.position }
func (t *TransformBinding) Rotation() *Vec3Binding { return &t.rotation }
func (t *TransformBinding) Scale() *Vec3Binding    { return &t.scale }

// EntityHandle is the addressable view of one entity. Handles are cheap
// to build and safe to discard: they hold no state that can go stale
// except the entity id tag itself.
type EntityHandle struct {
	id        EntityID
	transform TransformBinding
}

// ID returns the entity id the handle is bound to.
func (h *EntityHandle) ID() EntityID { return h.id }

// Transform returns the entity's transform view.
func (h *EntityHandle) Transform() *TransformBinding { return &h.transform }
