package wasmhost

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/bjaus/cfmt"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

var (
	ErrGuestMemory = errors.New("guest memory out of range")
	ErrSlotKind    = errors.New("unknown argument slot kind")
)

// SlotSize is the size of one guest argument slot: a little-endian u32
// kind, a u32 aux word and a u64 payload.
const SlotSize = 16

// AppendSlot appends one encoded argument slot to dst. kind takes the
// values of [cfmt.Kind]. For strings payload is the guest address and aux
// the byte length; for %n targets payload is the guest address the count
// is stored at. aux is ignored for every other kind.
func AppendSlot(dst []byte, kind cfmt.Kind, aux uint32, payload uint64) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(kind))
	dst = binary.LittleEndian.AppendUint32(dst, aux)
	return binary.LittleEndian.AppendUint64(dst, payload)
}

func read(mem api.Memory, ptr, n uint32) ([]byte, error) {
	b, ok := mem.Read(ptr, n)
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes at %#x", ErrGuestMemory, n, ptr)
	}
	return b, nil
}

// decodeArgs converts n guest slots at ptr into engine arguments.
func decodeArgs(mem api.Memory, ptr, n uint32, log *zap.Logger) ([]cfmt.Arg, error) {
	if uint64(n)*SlotSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d argument slots", ErrGuestMemory, n)
	}
	raw, err := read(mem, ptr, n*SlotSize)
	if err != nil {
		return nil, err
	}
	args := make([]cfmt.Arg, n)
	for i := range args {
		s := raw[i*SlotSize:]
		kind := cfmt.Kind(binary.LittleEndian.Uint32(s))
		aux := binary.LittleEndian.Uint32(s[4:])
		payload := binary.LittleEndian.Uint64(s[8:])
		switch kind {
		case cfmt.KindInt:
			args[i] = cfmt.Int(int64(payload))
		case cfmt.KindUint:
			args[i] = cfmt.Uint(payload)
		case cfmt.KindFloat:
			args[i] = cfmt.Float(math.Float64frombits(payload))
		case cfmt.KindPointer:
			args[i] = cfmt.Ptr(uintptr(payload))
		case cfmt.KindString:
			str, err := read(mem, uint32(payload), aux)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			args[i] = cfmt.Str(string(str))
		case cfmt.KindCount:
			args[i] = cfmt.CountTo(&counter{mem: mem, addr: uint32(payload), log: log})
		default:
			return nil, fmt.Errorf("argument %d: %w %d", i, ErrSlotKind, kind)
		}
	}
	return args, nil
}

// counter stores a %n result into guest memory, little-endian, at the
// width the length modifier selected.
type counter struct {
	mem  api.Memory
	addr uint32
	log  *zap.Logger
}

func (c *counter) SetCount(n int64, size int) {
	var ok bool
	switch size {
	case 1:
		ok = c.mem.WriteByte(c.addr, byte(n))
	case 2:
		ok = c.mem.WriteUint16Le(c.addr, uint16(n))
	case 4:
		ok = c.mem.WriteUint32Le(c.addr, uint32(n))
	default:
		ok = c.mem.WriteUint64Le(c.addr, uint64(n))
	}
	if !ok {
		c.log.Warn("count target out of range",
			zap.Uint32("addr", c.addr),
			zap.Int("size", size),
		)
	}
}
