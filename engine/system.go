package engine

import (
	"fmt"

	"github.com/okto-dev/scriptling/bridge"
)

// ScriptSystem drives Go-authored scripts in-process, without WASM,
// through the same current-entity protocol guest modules see: each
// script gets its own Env over the world's host table, the system sets
// the current entity before every lifecycle call, and all field access
// goes through the binding layer.
type ScriptSystem struct {
	world *World
	table *bridge.Table
	insts []*nativeInstance
}

type nativeInstance struct {
	entity      bridge.EntityID
	script      bridge.Script
	env         *bridge.Env
	initialized bool
}

// NewScriptSystem creates a system over world.
func NewScriptSystem(world *World) *ScriptSystem {
	return &ScriptSystem{
		world: world,
		table: world.Table(),
	}
}

// Attach binds script to an entity. The script's Init runs on the next
// Tick.
func (s *ScriptSystem) Attach(id bridge.EntityID, script bridge.Script) error {
	if _, ok := s.world.Get(id); !ok {
		return fmt.Errorf("attach: no entity %d", id)
	}
	env, err := bridge.NewEnv(s.table)
	if err != nil {
		return err
	}
	s.insts = append(s.insts, &nativeInstance{
		entity: id,
		script: script,
		env:    env,
	})
	return nil
}

// Tick initializes fresh instances and updates every live one. Instances
// whose entity has been despawned are dropped.
func (s *ScriptSystem) Tick(dt float32) {
	live := s.insts[:0]
	for _, inst := range s.insts {
		if _, ok := s.world.Get(inst.entity); !ok {
			continue
		}
		live = append(live, inst)

		inst.env.SetCurrentEntity(inst.entity)
		if !inst.initialized {
			inst.script.Init(inst.env)
			inst.initialized = true
		}

		inst.env.SetCurrentEntity(inst.entity)
		inst.script.Update(inst.env, dt)
	}
	s.insts = live
}

// Len returns the number of live script instances.
func (s *ScriptSystem) Len() int { return len(s.insts) }
