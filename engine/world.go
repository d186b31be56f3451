package engine

import (
	"sync"

	"github.com/okto-dev/scriptling/bridge"
)

// Vec3 is one transform category's value triple.
type Vec3 struct {
	X, Y, Z float32
}

// Transform is the spatial state of an entity.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// Category selects one transform component.
type Category int

const (
	CategoryPosition Category = iota
	CategoryRotation
	CategoryScale
)

func (c Category) String() string {
	switch c {
	case CategoryPosition:
		return "position"
	case CategoryRotation:
		return "rotation"
	case CategoryScale:
		return "scale"
	}
	return "unknown"
}

func (t *Transform) vec(c Category) *Vec3 {
	switch c {
	case CategoryRotation:
		return &t.Rotation
	case CategoryScale:
		return &t.Scale
	default:
		return &t.Position
	}
}

func (v *Vec3) axis(a bridge.Axis) *float32 {
	switch a {
	case bridge.AxisY:
		return &v.Y
	case bridge.AxisZ:
		return &v.Z
	default:
		return &v.X
	}
}

// ScriptRef attaches a guest script to an entity. The runtime flips
// initialized after the instance's init call has run.
type ScriptRef struct {
	Path        string
	initialized bool
}

// Entity is one simulation entity. Transform data is owned here; guests
// only ever see it through the host function table.
type Entity struct {
	ID        bridge.EntityID
	Name      string
	Transform Transform
	Scripts   []ScriptRef
	Tags      []string
}

// HasTag reports whether the entity carries tag.
func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// World is the host-side entity store. Ids are assigned from 1 and never
// reused within a World, so a stale id held by a guest can never alias a
// newer entity.
type World struct {
	mu       sync.RWMutex
	entities map[bridge.EntityID]*Entity
	order    []bridge.EntityID
	nextID   bridge.EntityID
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		entities: make(map[bridge.EntityID]*Entity),
		nextID:   1,
	}
}

// SpawnOption configures an entity at spawn time.
type SpawnOption func(*Entity)

// At sets the starting position.
func At(x, y, z float32) SpawnOption {
	return func(e *Entity) { e.Transform.Position = Vec3{x, y, z} }
}

// Rotated sets the starting rotation.
func Rotated(x, y, z float32) SpawnOption {
	return func(e *Entity) { e.Transform.Rotation = Vec3{x, y, z} }
}

// Scaled sets the starting scale.
func Scaled(x, y, z float32) SpawnOption {
	return func(e *Entity) { e.Transform.Scale = Vec3{x, y, z} }
}

// WithScript attaches a guest script by path. Repeatable; scripts run in
// attachment order.
func WithScript(path string) SpawnOption {
	return func(e *Entity) { e.Scripts = append(e.Scripts, ScriptRef{Path: path}) }
}

// WithTags adds free-form tags.
func WithTags(tags ...string) SpawnOption {
	return func(e *Entity) { e.Tags = append(e.Tags, tags...) }
}

// Spawn creates an entity and returns its id. Scale defaults to (1,1,1).
func (w *World) Spawn(name string, opts ...SpawnOption) bridge.EntityID {
	e := &Entity{
		Name: name,
		Transform: Transform{
			Scale: Vec3{1, 1, 1},
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	w.mu.Lock()
	e.ID = w.nextID
	w.nextID++
	w.entities[e.ID] = e
	w.order = append(w.order, e.ID)
	w.mu.Unlock()

	return e.ID
}

// Despawn removes an entity. Reports whether it existed. Ids of despawned
// entities stay dead: guest accesses through them read zero and write
// nowhere.
func (w *World) Despawn(id bridge.EntityID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Get looks up an entity by id.
func (w *World) Get(id bridge.EntityID) (*Entity, bool) {
	w.mu.RLock()
	e, ok := w.entities[id]
	w.mu.RUnlock()
	return e, ok
}

// markScriptInitialized flips the init flag on one script attachment.
// Unknown ids and stale indexes are ignored.
func (w *World) markScriptInitialized(id bridge.EntityID, index int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if e, ok := w.entities[id]; ok && index < len(e.Scripts) {
		e.Scripts[index].initialized = true
	}
}

// AddScript attaches a script to an existing entity.
func (w *World) AddScript(id bridge.EntityID, path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities[id]
	if !ok {
		return false
	}
	e.Scripts = append(e.Scripts, ScriptRef{Path: path})
	return true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// Each visits live entities in spawn order.
func (w *World) Each(fn func(*Entity)) {
	w.mu.RLock()
	ids := make([]bridge.EntityID, len(w.order))
	copy(ids, w.order)
	w.mu.RUnlock()

	for _, id := range ids {
		if e, ok := w.Get(id); ok {
			fn(e)
		}
	}
}

// Channel reads one scalar channel of one entity. An unknown id reads as
// zero: guests hold borrowed ids and the host decides what a dead one
// means.
func (w *World) Channel(id bridge.EntityID, c Category, a bridge.Axis) float32 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	e, ok := w.entities[id]
	if !ok {
		return 0
	}
	return *e.Transform.vec(c).axis(a)
}

// SetChannel writes one scalar channel of one entity. Writes to unknown
// ids are dropped.
func (w *World) SetChannel(id bridge.EntityID, c Category, a bridge.Axis, v float32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities[id]
	if !ok {
		return
	}
	*e.Transform.vec(c).axis(a) = v
}

// Table adapts the world into the guest-facing host function table, so
// the binding layer and native scripts run directly against host storage.
func (w *World) Table() *bridge.Table {
	acc := func(c Category, a bridge.Axis) bridge.AxisAccessor {
		return bridge.AxisAccessor{
			Get: func(id bridge.EntityID) float32 { return w.Channel(id, c, a) },
			Set: func(id bridge.EntityID, v float32) { w.SetChannel(id, c, a, v) },
		}
	}
	vec := func(c Category) bridge.VecAccessors {
		return bridge.VecAccessors{
			X: acc(c, bridge.AxisX),
			Y: acc(c, bridge.AxisY),
			Z: acc(c, bridge.AxisZ),
		}
	}
	return &bridge.Table{
		Position: vec(CategoryPosition),
		Rotation: vec(CategoryRotation),
		Scale:    vec(CategoryScale),
	}
}
