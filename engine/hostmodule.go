package engine

import (
	"context"
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/okto-dev/scriptling/bridge"
)

// hostFunctionName follows the import convention guests link against:
// get_entity_position_x, set_entity_rotation_z, and so on.
func hostFunctionName(set bool, c Category, a bridge.Axis) string {
	verb := "get"
	if set {
		verb = "set"
	}
	return fmt.Sprintf("%s_entity_%s_%s", verb, c, a)
}

// instantiateContextModule exports the eighteen transform functions,
// backed by the world, under the "context" module name guests import
// from. Guests must declare all eighteen to link; each call forwards the
// entity id it was given, so the functions themselves are stateless.
func instantiateContextModule(ctx context.Context, rt wazero.Runtime, world *World) error {
	b := rt.NewHostModuleBuilder("context")

	for _, c := range []Category{CategoryPosition, CategoryRotation, CategoryScale} {
		for _, a := range []bridge.Axis{bridge.AxisX, bridge.AxisY, bridge.AxisZ} {
			c, a := c, a // per-iteration copies: go directive predates 1.22 loopvar semantics
			b.NewFunctionBuilder().
				WithFunc(func(_ context.Context, id uint32) float32 {
					return world.Channel(bridge.EntityID(id), c, a)
				}).
				Export(hostFunctionName(false, c, a))
			b.NewFunctionBuilder().
				WithFunc(func(_ context.Context, id uint32, v float32) {
					world.SetChannel(bridge.EntityID(id), c, a, v)
				}).
				Export(hostFunctionName(true, c, a))
		}
	}

	_, err := b.Instantiate(ctx)
	return err
}

// instantiateEnvModule exports console.log and abort under "env" for
// AssemblyScript-compiled guests. Go guests print through WASI stdout
// instead and never import these.
func instantiateEnvModule(ctx context.Context, rt wazero.Runtime, logw io.Writer) error {
	b := rt.NewHostModuleBuilder("env")

	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			ptr := api.DecodeU32(stack[0])
			fmt.Fprintf(logw, "[wasm] %s\n", readGuestString(mod.Memory(), ptr))
		}), []api.ValueType{api.ValueTypeI32}, nil).
		Export("console.log")

	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			msg := readGuestString(mod.Memory(), api.DecodeU32(stack[0]))
			file := readGuestString(mod.Memory(), api.DecodeU32(stack[1]))
			line := api.DecodeU32(stack[2])
			col := api.DecodeU32(stack[3])
			panic(fmt.Sprintf("guest abort: %s (%s:%d:%d)", msg, file, line, col))
		}), []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32}, nil).
		Export("abort")

	_, err := b.Instantiate(ctx)
	return err
}

// readGuestString decodes an AssemblyScript string: UTF-16 data at ptr,
// byte length stored as a little-endian u32 at ptr-4. A null pointer or
// out-of-range read decodes to a placeholder rather than failing the
// host call.
func readGuestString(mem api.Memory, ptr uint32) string {
	if mem == nil || ptr < 4 {
		return "<null>"
	}
	byteLen, ok := mem.ReadUint32Le(ptr - 4)
	if !ok {
		return "<bad ptr>"
	}
	raw, ok := mem.Read(ptr, byteLen)
	if !ok {
		return "<bad ptr>"
	}
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, uint16(raw[i])|uint16(raw[i+1])<<8)
	}
	return string(utf16.Decode(units))
}
