package wasmhost

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/bjaus/cfmt"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// ModuleName is the import module guests link against.
const ModuleName = "cfmt"

// Host serves the formatting functions to wasm guests.
type Host struct {
	log *zap.Logger

	mu      sync.Mutex
	console io.Writer
}

// Option configures a [Host].
type Option func(*Host)

// WithLogger sets the logger for rejected calls. Default: [Logger].
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) { h.log = l }
}

// WithConsole sets where vpprintf output goes. Default: discarded.
func WithConsole(w io.Writer) Option {
	return func(h *Host) { h.console = w }
}

// New returns a host with the given options applied.
func New(opts ...Option) *Host {
	h := &Host{log: Logger(), console: io.Discard}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var i32 = api.ValueTypeI32

// Instantiate registers the "cfmt" host module in rt:
//
//	vsnprintf(buf, cap, fmt, fmt_len, args, nargs i32) i32
//	vpprintf(fmt, fmt_len, args, nargs i32) i32
//
// Both return the formatted length, or -1 when the guest passes memory
// outside its bounds or an unknown argument slot.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	return rt.NewHostModuleBuilder(ModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.vsnprintf), []api.ValueType{i32, i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		WithParameterNames("buf", "cap", "fmt", "fmt_len", "args", "nargs").
		Export("vsnprintf").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.vpprintf), []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}).
		WithParameterNames("fmt", "fmt_len", "args", "nargs").
		Export("vpprintf").
		Instantiate(ctx)
}

// call holds the decoded inputs shared by both functions.
type call struct {
	format string
	args   []cfmt.Arg
}

func (h *Host) decode(mod api.Module, fmtPtr, fmtLen, argsPtr, nargs uint32) (call, error) {
	mem := mod.Memory()
	if mem == nil {
		return call{}, ErrGuestMemory
	}
	format, err := read(mem, fmtPtr, fmtLen)
	if err != nil {
		return call{}, err
	}
	args, err := decodeArgs(mem, argsPtr, nargs, h.log)
	if err != nil {
		return call{}, err
	}
	return call{format: string(format), args: args}, nil
}

func (h *Host) reject(fn string, mod api.Module, err error) int32 {
	h.log.Warn("guest call rejected",
		zap.String("func", fn),
		zap.String("module", mod.Name()),
		zap.Error(err),
	)
	return -1
}

func (h *Host) vsnprintf(_ context.Context, mod api.Module, stack []uint64) {
	bufPtr, bufCap := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	c, err := h.decode(mod, api.DecodeU32(stack[2]), api.DecodeU32(stack[3]), api.DecodeU32(stack[4]), api.DecodeU32(stack[5]))
	if err != nil {
		stack[0] = api.EncodeI32(h.reject("vsnprintf", mod, err))
		return
	}
	var buf []byte
	if bufCap > 0 {
		if buf, err = read(mod.Memory(), bufPtr, bufCap); err != nil {
			stack[0] = api.EncodeI32(h.reject("vsnprintf", mod, err))
			return
		}
	}
	// buf aliases guest memory, so the output lands there directly.
	n := cfmt.Vsnprintf(buf, c.format, c.args)
	h.log.Debug("vsnprintf",
		zap.String("format", c.format),
		zap.Uint32("cap", bufCap),
		zap.Int("n", n),
	)
	stack[0] = api.EncodeI32(int32(n))
}

func (h *Host) vpprintf(_ context.Context, mod api.Module, stack []uint64) {
	c, err := h.decode(mod, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
	if err != nil {
		stack[0] = api.EncodeI32(h.reject("vpprintf", mod, err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	w := bufio.NewWriter(h.console)
	n := cfmt.Vpprintf(func(b byte) { _ = w.WriteByte(b) }, c.format, c.args)
	if err := w.Flush(); err != nil {
		h.log.Warn("console write failed", zap.String("module", mod.Name()), zap.Error(err))
	}
	stack[0] = api.EncodeI32(int32(n))
}
