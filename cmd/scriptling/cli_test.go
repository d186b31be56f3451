package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/okto-dev/scriptling/bridge"
	"github.com/okto-dev/scriptling/engine"
)

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in      string
		cat     engine.Category
		axis    bridge.Axis
		wantErr bool
	}{
		{in: "position.x", cat: engine.CategoryPosition, axis: bridge.AxisX},
		{in: "pos.y", cat: engine.CategoryPosition, axis: bridge.AxisY},
		{in: "rotation.z", cat: engine.CategoryRotation, axis: bridge.AxisZ},
		{in: "rot.x", cat: engine.CategoryRotation, axis: bridge.AxisX},
		{in: "scale.y", cat: engine.CategoryScale, axis: bridge.AxisY},
		{in: "position", wantErr: true},
		{in: "velocity.x", wantErr: true},
		{in: "position.w", wantErr: true},
	}

	for _, tt := range tests {
		c, a, err := parseChannel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseChannel(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseChannel(%q): %v", tt.in, err)
			continue
		}
		if c != tt.cat || a != tt.axis {
			t.Errorf("parseChannel(%q) = %v.%v, want %v.%v", tt.in, c, a, tt.cat, tt.axis)
		}
	}
}

func TestParseEntityID(t *testing.T) {
	if id, err := parseEntityID("42"); err != nil || id != 42 {
		t.Errorf("parseEntityID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "-1", "abc", "4294967296"} {
		if _, err := parseEntityID(bad); err == nil {
			t.Errorf("parseEntityID(%q): expected error", bad)
		}
	}
}

func TestParseMemoryLimit(t *testing.T) {
	if got := parseMemoryLimit("64mb"); got != 1024 {
		t.Errorf("64mb = %d pages, want 1024", got)
	}
	if got := parseMemoryLimit("bogus"); got != 0 {
		t.Errorf("bogus = %d pages, want 0", got)
	}
}

func TestPrintWorld(t *testing.T) {
	w := engine.NewWorld()
	w.Spawn("player", engine.At(1, 2, 3), engine.WithScript("s.wasm"))

	var buf bytes.Buffer
	printWorld(&buf, w)

	out := buf.String()
	if !strings.Contains(out, "player") || !strings.Contains(out, "(1.000, 2.000, 3.000)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func newConsoleFixture(t *testing.T) (*engine.Runtime, *engine.World) {
	t.Helper()
	w := engine.NewWorld()
	rt, err := engine.NewRuntime(w)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	t.Cleanup(func() { rt.Close(context.Background()) })
	return rt, w
}

func TestDispatchSpawnSetDespawn(t *testing.T) {
	rt, w := newConsoleFixture(t)

	if err := dispatch(rt, w, []string{"spawn", "box", "1", "2", "3"}); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if w.Len() != 1 {
		t.Fatalf("world has %d entities", w.Len())
	}

	if err := dispatch(rt, w, []string{"set", "1", "rotation.y", "90"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	e, _ := w.Get(1)
	if e.Transform.Rotation.Y != 90 {
		t.Errorf("rotation.y = %v, want 90", e.Transform.Rotation.Y)
	}

	if err := dispatch(rt, w, []string{"despawn", "1"}); err != nil {
		t.Fatalf("despawn: %v", err)
	}
	if w.Len() != 0 {
		t.Error("entity survived despawn")
	}
}

func TestDispatchHelp(t *testing.T) {
	rt, w := newConsoleFixture(t)

	if err := dispatch(rt, w, []string{"help"}); err != nil {
		t.Fatalf("help: %v", err)
	}
	// The command's long help and the console's help text are the same
	// document.
	if consoleCmd.Long != consoleHelp {
		t.Error("console help text diverged from the command help")
	}
}

func TestDispatchErrors(t *testing.T) {
	rt, w := newConsoleFixture(t)

	for _, fields := range [][]string{
		{"frobnicate"},
		{"set", "1", "position.x", "1"}, // no such entity
		{"get", "1", "position.q"},
		{"tick", "zero"},
		{"attach", "9", "x.wasm"},
	} {
		if err := dispatch(rt, w, fields); err == nil {
			t.Errorf("dispatch(%v): expected error", fields)
		}
	}
}
