// Package wasmhost exposes the cfmt engine to WebAssembly guests running
// on wazero, so freestanding guest code gets printf without linking a C
// library.
//
// A guest imports the functions of the "cfmt" module and passes its
// arguments as an array of [SlotSize]-byte slots in its own memory:
//
//	offset 0  u32 kind     cfmt.Kind: 1 int, 2 uint, 3 float, 4 string, 5 pointer, 6 count
//	offset 4  u32 aux      string length
//	offset 8  u64 payload  value bits, or a guest address for strings and %n targets
//
// Usage:
//
//	h := wasmhost.New(wasmhost.WithConsole(os.Stdout))
//	if _, err := h.Instantiate(ctx, rt); err != nil {
//		return err
//	}
//	mod, err := rt.InstantiateWithConfig(ctx, guest, wazero.NewModuleConfig())
package wasmhost
