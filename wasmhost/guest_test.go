package wasmhost_test

import "encoding/binary"

const (
	valI32 = 0x7f
	opGet  = 0x20
	opCall = 0x10
	opEnd  = 0x0b
)

func name(s string) []byte {
	return append(binary.AppendUvarint(nil, uint64(len(s))), s...)
}

func section(id byte, items ...[]byte) []byte {
	body := binary.AppendUvarint(nil, uint64(len(items)))
	for _, item := range items {
		body = append(body, item...)
	}
	out := append([]byte{id}, binary.AppendUvarint(nil, uint64(len(body)))...)
	return append(out, body...)
}

func funcType(params int) []byte {
	t := []byte{0x60, byte(params)}
	for range params {
		t = append(t, valI32)
	}
	return append(t, 1, valI32)
}

// forward is a function body passing its params to imported function fn.
func forward(params int, fn byte) []byte {
	body := []byte{0} // no locals
	for i := range params {
		body = append(body, opGet, byte(i))
	}
	body = append(body, opCall, fn, opEnd)
	return append(binary.AppendUvarint(nil, uint64(len(body))), body...)
}

// guestWasm encodes a guest that imports vsnprintf and vpprintf from the
// host, re-exports callable wrappers around them and exports one page of
// memory.
func guestWasm() []byte {
	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	wasm = append(wasm, section(0x01, funcType(6), funcType(4))...)
	wasm = append(wasm, section(0x02,
		append(append(name("cfmt"), name("vsnprintf")...), 0x00, 0),
		append(append(name("cfmt"), name("vpprintf")...), 0x00, 1),
	)...)
	wasm = append(wasm, section(0x03, []byte{0}, []byte{1})...)
	wasm = append(wasm, section(0x05, []byte{0x00, 1})...)
	wasm = append(wasm, section(0x07,
		append(name("memory"), 0x02, 0),
		append(name("vsnprintf"), 0x00, 2),
		append(name("vpprintf"), 0x00, 3),
	)...)
	return append(wasm, section(0x0a, forward(6, 0), forward(4, 1))...)
}
