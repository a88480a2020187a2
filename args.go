package cfmt

import (
	"math"
	"reflect"
)

// Kind is the payload type of an [Arg].
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	KindPointer
	KindCount
)

var kindNames = [...]string{"none", "int", "uint", "float", "string", "pointer", "count"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Arg is one formatting argument. Directives read the payload at the width
// their length modifier implies, whatever the kind; a mismatched kind is
// reinterpreted rather than rejected.
type Arg struct {
	kind Kind
	bits uint64
	str  string
	ref  any
}

// Kind returns the payload type.
func (a Arg) Kind() Kind { return a.kind }

// Int returns a signed integer argument.
func Int(v int64) Arg { return Arg{kind: KindInt, bits: uint64(v)} }

// Uint returns an unsigned integer argument.
func Uint(v uint64) Arg { return Arg{kind: KindUint, bits: v} }

// Float returns a floating-point argument.
func Float(v float64) Arg { return Arg{kind: KindFloat, bits: math.Float64bits(v)} }

// Str returns a string argument.
func Str(s string) Arg { return Arg{kind: KindString, str: s} }

// Ptr returns a pointer argument for %p.
func Ptr(p uintptr) Arg { return Arg{kind: KindPointer, bits: uint64(p)} }

// Char returns a character argument for %c and %lc.
func Char(r rune) Arg { return Arg{kind: KindInt, bits: uint64(int64(r))} }

// CountTo returns a %n target backed by c.
func CountTo(c Counter) Arg { return Arg{kind: KindCount, ref: c} }

// Count returns a %n target that receives the output length.
func Count[T int | int8 | int16 | int32 | int64](p *T) Arg {
	return Arg{kind: KindCount, ref: p}
}

// Counter receives the output length of a %n directive, already narrowed
// to size bytes by the length modifier.
type Counter interface {
	SetCount(n int64, size int)
}

type stringer interface {
	String() string
}

// ArgOf converts a Go value to an Arg. Pointers to signed integers become
// %n targets; other pointer-like values carry their address for %p.
func ArgOf(v any) Arg {
	switch x := v.(type) {
	case nil:
		return Arg{}
	case Arg:
		return x
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case uintptr:
		return Ptr(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case bool:
		if x {
			return Int(1)
		}
		return Int(0)
	case string:
		return Str(x)
	case []byte:
		return Str(string(x))
	case *int:
		return withAddr(Count(x), v)
	case *int8:
		return withAddr(Count(x), v)
	case *int16:
		return withAddr(Count(x), v)
	case *int32:
		return withAddr(Count(x), v)
	case *int64:
		return withAddr(Count(x), v)
	case Counter:
		return withAddr(CountTo(x), v)
	case stringer:
		return Str(x.String())
	case error:
		return Str(x.Error())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return Str(rv.String())
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		return Ptr(rv.Pointer())
	}
	return Arg{}
}

func withAddr(a Arg, v any) Arg {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		a.bits = uint64(rv.Pointer())
	}
	return a
}

// cursor walks the argument list of one call. Reading past the end yields
// the zero Arg.
type cursor struct {
	args []Arg
	anys []any
	i    int
}

func (c *cursor) next() Arg {
	i := c.i
	c.i++
	switch {
	case c.anys != nil:
		if i < len(c.anys) {
			return ArgOf(c.anys[i])
		}
	case i < len(c.args):
		return c.args[i]
	}
	return Arg{}
}

// star reads a '*' width or precision as an int.
func (c *cursor) star() int { return int(int32(c.next().bits)) }

func (c *cursor) signed(l Length) int64 {
	v := c.next().bits
	switch l {
	case LenNone:
		return int64(int32(v))
	case LenHH:
		return int64(int8(v))
	case LenH:
		return int64(int16(v))
	}
	return int64(v)
}

func (c *cursor) unsigned(l Length) uint64 {
	v := c.next().bits
	switch l {
	case LenNone:
		return uint64(uint32(v))
	case LenHH:
		return uint64(uint8(v))
	case LenH:
		return uint64(uint16(v))
	}
	return v
}

func (c *cursor) float() float64 { return math.Float64frombits(c.next().bits) }

// str reads a %s argument. Anything but a string prints as "(null)".
func (c *cursor) str() string {
	a := c.next()
	if a.kind != KindString {
		return "(null)"
	}
	return a.str
}
