package wasmhost_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/bjaus/cfmt"
	"github.com/bjaus/cfmt/wasmhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Guest memory layout used by the tests.
const (
	fmtAddr   = 0x100
	argsAddr  = 0x200
	strAddr   = 0x300
	bufAddr   = 0x400
	countAddr = 0x500
)

type guest struct {
	mod  api.Module
	logs *observer.ObservedLogs
}

func newGuest(t *testing.T, console *bytes.Buffer) *guest {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	core, logs := observer.New(zap.WarnLevel)
	opts := []wasmhost.Option{wasmhost.WithLogger(zap.New(core))}
	if console != nil {
		opts = append(opts, wasmhost.WithConsole(console))
	}
	_, err := wasmhost.New(opts...).Instantiate(ctx, rt)
	require.NoError(t, err)

	mod, err := rt.InstantiateWithConfig(ctx, guestWasm(), wazero.NewModuleConfig().WithName("guest"))
	require.NoError(t, err)
	return &guest{mod: mod, logs: logs}
}

func (g *guest) write(t *testing.T, addr uint32, b []byte) {
	t.Helper()
	require.True(t, g.mod.Memory().Write(addr, b))
}

func (g *guest) call(t *testing.T, fn string, params ...uint64) int32 {
	t.Helper()
	res, err := g.mod.ExportedFunction(fn).Call(context.Background(), params...)
	require.NoError(t, err)
	return int32(api.DecodeI32(res[0]))
}

// snprintf stages format and slots in guest memory and calls vsnprintf
// with a buffer of size bytes.
func (g *guest) snprintf(t *testing.T, size uint32, format string, slots []byte) (string, int32) {
	t.Helper()
	g.write(t, fmtAddr, []byte(format))
	g.write(t, argsAddr, slots)
	n := g.call(t, "vsnprintf", bufAddr, uint64(size), fmtAddr, uint64(len(format)), argsAddr, uint64(len(slots)/wasmhost.SlotSize))
	out, ok := g.mod.Memory().Read(bufAddr, size)
	require.True(t, ok)
	if i := bytes.IndexByte(out, 0); i >= 0 {
		out = out[:i]
	}
	return string(out), n
}

func TestVsnprintf(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)
	g.write(t, strAddr, []byte("hey"))

	var slots []byte
	slots = wasmhost.AppendSlot(slots, cfmt.KindInt, 0, uint64(math.MaxUint64-41)) // -42
	slots = wasmhost.AppendSlot(slots, cfmt.KindString, 3, strAddr)
	slots = wasmhost.AppendSlot(slots, cfmt.KindFloat, 0, math.Float64bits(3.14159))
	slots = wasmhost.AppendSlot(slots, cfmt.KindUint, 0, 255)

	got, n := g.snprintf(t, 32, "%d %s %.2f|%5x", slots)
	assert.Equal(t, "-42 hey 3.14|   ff", got)
	assert.Equal(t, int32(18), n)
	assert.Empty(t, g.logs.All())
}

func TestVsnprintfTruncates(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)
	g.write(t, bufAddr, bytes.Repeat([]byte{'#'}, 8))

	got, n := g.snprintf(t, 4, "%d", wasmhost.AppendSlot(nil, cfmt.KindInt, 0, 123456))
	assert.Equal(t, "123", got)
	assert.Equal(t, int32(6), n)

	rest, ok := g.mod.Memory().Read(bufAddr+4, 4)
	require.True(t, ok)
	assert.Equal(t, "####", string(rest))
}

func TestVsnprintfZeroCapacity(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)
	g.write(t, bufAddr, []byte{'#'})

	n := g.call(t, "vsnprintf", math.MaxUint32, 0, fmtAddr, 0, argsAddr, 0)
	assert.Equal(t, int32(0), n)

	g.write(t, fmtAddr, []byte("abc"))
	n = g.call(t, "vsnprintf", bufAddr, 0, fmtAddr, 3, argsAddr, 0)
	assert.Equal(t, int32(3), n)
	b, _ := g.mod.Memory().ReadByte(bufAddr)
	assert.Equal(t, byte('#'), b)
}

func TestVsnprintfWriteback(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)
	g.write(t, countAddr, bytes.Repeat([]byte{0xff}, 16))

	var slots []byte
	slots = wasmhost.AppendSlot(slots, cfmt.KindCount, 0, countAddr)
	slots = wasmhost.AppendSlot(slots, cfmt.KindCount, 0, countAddr+8)
	_, n := g.snprintf(t, 32, "hello%n world%hhn", slots)
	require.Equal(t, int32(11), n)

	mem, ok := g.mod.Memory().Read(countAddr, 16)
	require.True(t, ok)
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(mem))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, mem[4:8])
	assert.Equal(t, byte(11), mem[8])
	assert.Equal(t, byte(0xff), mem[9])
}

func TestVsnprintfWritebackOutOfRange(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)
	_, n := g.snprintf(t, 16, "ab%lln", wasmhost.AppendSlot(nil, cfmt.KindCount, 0, 65535))
	assert.Equal(t, int32(2), n)
	require.Equal(t, 1, g.logs.FilterMessage("count target out of range").Len())
}

func TestVsnprintfMissingArgs(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)
	got, n := g.snprintf(t, 16, "[%d|%s]", nil)
	assert.Equal(t, "[0|(null)]", got)
	assert.Equal(t, int32(10), n)
}

func TestVsnprintfRejectsBadMemory(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)

	tests := []struct {
		name   string
		params []uint64
	}{
		{"format", []uint64{bufAddr, 16, 65530, 16, argsAddr, 0}},
		{"args", []uint64{bufAddr, 16, fmtAddr, 0, 65530, 1}},
		{"buffer", []uint64{65530, 16, fmtAddr, 0, argsAddr, 0}},
		{"slot count", []uint64{bufAddr, 16, fmtAddr, 0, argsAddr, math.MaxUint32}},
	}
	for _, tt := range tests {
		assert.Equal(t, int32(-1), g.call(t, "vsnprintf", tt.params...), tt.name)
	}

	logs := g.logs.FilterMessage("guest call rejected").All()
	require.Len(t, logs, len(tests))
	for _, entry := range logs {
		err, ok := entry.ContextMap()["error"]
		require.True(t, ok)
		assert.Contains(t, err, "guest memory out of range")
	}
}

func TestVsnprintfRejectsBadSlots(t *testing.T) {
	t.Parallel()
	g := newGuest(t, nil)

	_, n := g.snprintf(t, 16, "%s", wasmhost.AppendSlot(nil, cfmt.KindString, 64, 65530))
	assert.Equal(t, int32(-1), n)

	_, n = g.snprintf(t, 16, "%d", wasmhost.AppendSlot(nil, cfmt.Kind(99), 0, 1))
	assert.Equal(t, int32(-1), n)
	assert.Equal(t, 2, g.logs.Len())
}

func TestVpprintf(t *testing.T) {
	t.Parallel()
	var console bytes.Buffer
	g := newGuest(t, &console)

	format := "x=%u %c\n"
	g.write(t, fmtAddr, []byte(format))
	var slots []byte
	slots = wasmhost.AppendSlot(slots, cfmt.KindUint, 0, 7)
	slots = wasmhost.AppendSlot(slots, cfmt.KindInt, 0, 'k')
	g.write(t, argsAddr, slots)

	n := g.call(t, "vpprintf", fmtAddr, uint64(len(format)), argsAddr, 2)
	assert.Equal(t, int32(6), n)
	assert.Equal(t, "x=7 k\n", console.String())

	n = g.call(t, "vpprintf", 65530, 64, argsAddr, 0)
	assert.Equal(t, int32(-1), n)
	assert.Equal(t, "x=7 k\n", console.String())
}

type failingConsole struct{}

func (failingConsole) Write([]byte) (int, error) { return 0, errors.New("uart offline") }

func TestVpprintfConsoleError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	core, logs := observer.New(zap.WarnLevel)
	_, err := wasmhost.New(wasmhost.WithLogger(zap.New(core)), wasmhost.WithConsole(failingConsole{})).Instantiate(ctx, rt)
	require.NoError(t, err)
	mod, err := rt.InstantiateWithConfig(ctx, guestWasm(), wazero.NewModuleConfig())
	require.NoError(t, err)

	require.True(t, mod.Memory().Write(fmtAddr, []byte("ok")))
	res, err := mod.ExportedFunction("vpprintf").Call(ctx, fmtAddr, 2, argsAddr, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.DecodeI32(res[0]))
	assert.Equal(t, 1, logs.FilterMessage("console write failed").Len())
}

func TestAppendSlot(t *testing.T) {
	t.Parallel()
	slot := wasmhost.AppendSlot(nil, cfmt.KindString, 3, 0x1122334455667788)
	require.Len(t, slot, wasmhost.SlotSize)
	assert.Equal(t, []byte{4, 0, 0, 0, 3, 0, 0, 0, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, slot)
}

func TestLoggerDefaultsToNop(t *testing.T) {
	t.Parallel()
	require.NotNil(t, wasmhost.Logger())
	assert.False(t, wasmhost.Logger().Core().Enabled(zap.ErrorLevel))
}
