package cfmt

// storeCount writes count into a %n target, narrowed per the length
// modifier the way C narrows to signed char, short, int or a 64-bit type.
// Targets of any other kind are skipped.
func storeCount(a Arg, count int, l Length) {
	if a.kind != KindCount {
		return
	}
	var v int64
	size := 8
	switch l {
	case LenHH:
		v, size = int64(int8(count)), 1
	case LenH:
		v, size = int64(int16(count)), 2
	case LenNone:
		v, size = int64(int32(count)), 4
	default:
		v = int64(count)
	}
	switch p := a.ref.(type) {
	case *int:
		if p != nil {
			*p = int(v)
		}
	case *int8:
		if p != nil {
			*p = int8(v)
		}
	case *int16:
		if p != nil {
			*p = int16(v)
		}
	case *int32:
		if p != nil {
			*p = int32(v)
		}
	case *int64:
		if p != nil {
			*p = v
		}
	case Counter:
		p.SetCount(v, size)
	}
}
