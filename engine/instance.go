package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/okto-dev/scriptling/bridge"
)

// scriptInstance wraps one instantiated guest module and its exported
// lifecycle surface. Missing exports are tolerated as no-ops so a
// partially implemented script still runs; only what it exports is
// called.
type scriptInstance struct {
	module     api.Module
	setCurrent api.Function
	initFn     api.Function
	updateFn   api.Function
}

func newScriptInstance(mod api.Module) *scriptInstance {
	return &scriptInstance{
		module:     mod,
		setCurrent: mod.ExportedFunction("setCurrentEntity"),
		initFn:     mod.ExportedFunction("init"),
		updateFn:   mod.ExportedFunction("update"),
	}
}

// setCurrentEntity tells the guest which entity the next lifecycle call
// addresses. Always called before init and before each update, honoring
// the calling-order contract even when the id has not changed.
func (s *scriptInstance) setCurrentEntity(ctx context.Context, id bridge.EntityID) error {
	if s.setCurrent == nil {
		return nil
	}
	_, err := s.setCurrent.Call(ctx, uint64(id))
	return err
}

func (s *scriptInstance) runInit(ctx context.Context, id bridge.EntityID) error {
	if err := s.setCurrentEntity(ctx, id); err != nil {
		return err
	}
	if s.initFn == nil {
		return nil
	}
	_, err := s.initFn.Call(ctx)
	return err
}

func (s *scriptInstance) runUpdate(ctx context.Context, id bridge.EntityID, dt float32) error {
	if err := s.setCurrentEntity(ctx, id); err != nil {
		return err
	}
	if s.updateFn == nil {
		return nil
	}
	_, err := s.updateFn.Call(ctx, api.EncodeF32(dt))
	return err
}

func (s *scriptInstance) close(ctx context.Context) error {
	return s.module.Close(ctx)
}
