package engine

import (
	"testing"

	"github.com/okto-dev/scriptling/bridge"
)

func TestSpawnDefaults(t *testing.T) {
	w := NewWorld()

	id := w.Spawn("cube")
	if id != 1 {
		t.Errorf("first id = %d, want 1", id)
	}

	e, ok := w.Get(id)
	if !ok {
		t.Fatal("spawned entity not found")
	}
	if e.Name != "cube" {
		t.Errorf("name = %q, want cube", e.Name)
	}
	if e.Transform.Scale != (Vec3{1, 1, 1}) {
		t.Errorf("default scale = %v, want (1,1,1)", e.Transform.Scale)
	}
	if e.Transform.Position != (Vec3{}) {
		t.Errorf("default position = %v, want origin", e.Transform.Position)
	}
}

func TestSpawnOptions(t *testing.T) {
	w := NewWorld()

	id := w.Spawn("player",
		At(1, 2, 3),
		Rotated(0, 90, 0),
		Scaled(2, 2, 2),
		WithScript("a.wasm"),
		WithScript("b.wasm"),
		WithTags("hero", "solid"))

	e, _ := w.Get(id)
	if e.Transform.Position != (Vec3{1, 2, 3}) {
		t.Errorf("position = %v", e.Transform.Position)
	}
	if e.Transform.Rotation != (Vec3{0, 90, 0}) {
		t.Errorf("rotation = %v", e.Transform.Rotation)
	}
	if e.Transform.Scale != (Vec3{2, 2, 2}) {
		t.Errorf("scale = %v", e.Transform.Scale)
	}
	if len(e.Scripts) != 2 || e.Scripts[0].Path != "a.wasm" || e.Scripts[1].Path != "b.wasm" {
		t.Errorf("scripts = %+v", e.Scripts)
	}
	if !e.HasTag("hero") || !e.HasTag("solid") || e.HasTag("ghost") {
		t.Errorf("tags = %v", e.Tags)
	}
}

func TestIDsNeverReused(t *testing.T) {
	w := NewWorld()

	a := w.Spawn("a")
	if !w.Despawn(a) {
		t.Fatal("despawn reported false for live entity")
	}
	b := w.Spawn("b")
	if b == a {
		t.Errorf("id %d reused after despawn", a)
	}
	if w.Despawn(a) {
		t.Error("despawn reported true for dead entity")
	}
}

func TestChannelUnknownID(t *testing.T) {
	w := NewWorld()

	if got := w.Channel(99, CategoryPosition, bridge.AxisX); got != 0 {
		t.Errorf("unknown id read %v, want 0", got)
	}

	// A dropped write must not create anything.
	w.SetChannel(99, CategoryScale, bridge.AxisZ, 5)
	if w.Len() != 0 {
		t.Error("write to unknown id created an entity")
	}
}

func TestChannelReadWrite(t *testing.T) {
	w := NewWorld()
	id := w.Spawn("box", At(1, 2, 3))

	if got := w.Channel(id, CategoryPosition, bridge.AxisZ); got != 3 {
		t.Errorf("position.z = %v, want 3", got)
	}

	w.SetChannel(id, CategoryRotation, bridge.AxisY, 45)
	e, _ := w.Get(id)
	if e.Transform.Rotation.Y != 45 {
		t.Errorf("rotation.y = %v, want 45", e.Transform.Rotation.Y)
	}
}

func TestMarkScriptInitialized(t *testing.T) {
	w := NewWorld()
	id := w.Spawn("box", WithScript("a.wasm"), WithScript("b.wasm"))

	w.markScriptInitialized(id, 1)

	e, _ := w.Get(id)
	if e.Scripts[0].initialized || !e.Scripts[1].initialized {
		t.Errorf("init flags = %v, %v, want false, true",
			e.Scripts[0].initialized, e.Scripts[1].initialized)
	}

	// Unknown ids and stale indexes are no-ops.
	w.markScriptInitialized(99, 0)
	w.markScriptInitialized(id, 5)
}

func TestEachVisitsInSpawnOrder(t *testing.T) {
	w := NewWorld()
	w.Spawn("a")
	b := w.Spawn("b")
	w.Spawn("c")
	w.Despawn(b)

	var names []string
	w.Each(func(e *Entity) { names = append(names, e.Name) })

	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Errorf("visit order = %v, want [a c]", names)
	}
}

func TestWorldTableRoundTrip(t *testing.T) {
	w := NewWorld()
	id := w.Spawn("box")

	env, err := bridge.NewEnv(w.Table())
	if err != nil {
		t.Fatalf("NewEnv over world table: %v", err)
	}
	env.SetCurrentEntity(id)

	env.Self().Transform().Position().Set(7, 8, 9)
	e, _ := w.Get(id)
	if e.Transform.Position != (Vec3{7, 8, 9}) {
		t.Errorf("world position = %v, want (7,8,9)", e.Transform.Position)
	}

	if got := env.Self().Transform().Position().Y(); got != 8 {
		t.Errorf("binding read %v, want 8", got)
	}
}
