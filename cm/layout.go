package cm

// DefaultPtrSize is the pointer width in bytes used by size and layout
// queries until SetPointerSize overrides it (e.g. for a front end
// targeting a non-64-bit ABI).
const DefaultPtrSize = 8

var ptrSize uint64 = DefaultPtrSize

// SetPointerSize overrides the pointer width used by every subsequent
// size/layout computation. Not meant to be changed mid-build; it is a
// process-wide ABI knob, not a per-model one, matching a single
// compile-target assumption.
func SetPointerSize(bytes uint64) { ptrSize = bytes }

// builtinSizes gives the byte size of each builtin base kind on the
// reference LP64 ABI the layout engine targets by default.
var builtinSizes = map[BaseKind]uint64{
	BaseVoid: 0, BaseBool: 1,
	BaseSChar: 1, BaseUChar: 1,
	BaseShort: 2, BaseUShort: 2,
	BaseInt: 4, BaseUInt: 4,
	BaseLong: 8, BaseULong: 8,
	BaseLongLong: 8, BaseULongLong: 8,
	BaseInt128: 16, BaseUInt128: 16,
	BaseWChar: 4, BaseChar8: 1, BaseChar16: 2, BaseChar32: 4,
	BaseFloat: 4, BaseDouble: 8, BaseLongDouble: 16,
	BaseArmSve: 0, BaseNullptr: 8,
}

// SizeOf returns the size in bytes of t. Returns an error if t is a
// record with no computed layout and layout computation fails, or for
// an otherwise unsized type.
func (m *CodeModel) SizeOf(t Type) (uint64, error) {
	switch v := t.(type) {
	case *BuiltinType:
		sz := builtinSizes[v.Base]
		if v.Complex {
			sz *= 2
		}
		return sz, nil
	case *PointerType:
		return ptrSize, nil
	case *LValueReferenceType:
		return ptrSize, nil
	case *RValueReferenceType:
		return ptrSize, nil
	case *MemberPointerType:
		if _, isFunc := v.Member().Type.(*FunctionType); isFunc {
			return 2 * ptrSize, nil
		}
		return ptrSize, nil
	case *Enum:
		return m.SizeOf(v.UnderlyingType().Type)
	case *Typedef:
		return m.SizeOf(v.Aliased().Type)
	case *ArrayType:
		if v.Size == 0 {
			return 0, nil
		}
		elemSize, err := m.SizeOf(v.Elem())
		if err != nil {
			return 0, err
		}
		return elemSize * v.Size, nil
	case *VectorType:
		elemSize, err := m.SizeOf(v.Elem())
		if err != nil {
			return 0, err
		}
		return elemSize * v.Lanes, nil
	case *Record:
		layout, err := m.LayoutOf(v)
		if err != nil {
			return 0, err
		}
		return layout.SizeBytes, nil
	default:
		return 0, newError(LayoutPrecondition, "size_of", "type has no defined size")
	}
}

// FieldLayout records where one field landed: its bit offset from the
// start of the record and its bit width (the field's own size in bits
// for a non-bitfield).
type FieldLayout struct {
	Field     *Field
	BitOffset uint64
	BitWidth  uint64
}

// BaseLayout records where one base subobject landed.
type BaseLayout struct {
	Base      *Record
	BitOffset uint64
}

// RecordLayout is the computed, bit-accurate placement of a record's
// bases and fields.
type RecordLayout struct {
	Bases     []BaseLayout
	Fields    []FieldLayout
	SizeBytes uint64
}

// LayoutOf returns r's computed layout, computing and caching it (and
// any missing base layouts, recursively) if necessary.
func (m *CodeModel) LayoutOf(r *Record) (*RecordLayout, error) {
	if r.layout != nil {
		return r.layout, nil
	}
	layout, err := m.computeLayout(r)
	if err != nil {
		return nil, err
	}
	r.layout = layout
	return layout, nil
}

func (m *CodeModel) computeLayout(r *Record) (*RecordLayout, error) {
	fields := r.Fields()
	if r.rkind == RecordUnion {
		if len(r.bases) != 0 {
			return nil, newError(LayoutPrecondition, "layout", "union must have no bases")
		}
		var maxBits uint64
		out := &RecordLayout{Fields: make([]FieldLayout, 0, len(fields))}
		for _, f := range fields {
			bits, err := m.fieldBits(f)
			if err != nil {
				return nil, err
			}
			out.Fields = append(out.Fields, FieldLayout{Field: f, BitOffset: 0, BitWidth: bits})
			if bits > maxBits {
				maxBits = bits
			}
		}
		out.SizeBytes = byteRound(maxBits)
		return out, nil
	}

	var offset uint64
	out := &RecordLayout{Bases: make([]BaseLayout, 0, len(r.bases)), Fields: make([]FieldLayout, 0, len(fields))}

	for _, bs := range r.bases {
		base := bs.Type()
		baseLayout, err := m.LayoutOf(base)
		if err != nil {
			return nil, err
		}
		out.Bases = append(out.Bases, BaseLayout{Base: base, BitOffset: offset})
		offset += baseLayout.SizeBytes * 8
	}

	for _, f := range fields {
		bits, err := m.fieldBits(f)
		if err != nil {
			return nil, err
		}
		if f.IsBitfield() {
			out.Fields = append(out.Fields, FieldLayout{Field: f, BitOffset: offset, BitWidth: bits})
			offset += bits
		} else {
			offset = alignToByte(offset)
			out.Fields = append(out.Fields, FieldLayout{Field: f, BitOffset: offset, BitWidth: bits})
			offset += bits
		}
	}

	out.SizeBytes = byteRound(offset)
	return out, nil
}

func (m *CodeModel) fieldBits(f *Field) (uint64, error) {
	if f.IsBitfield() {
		return uint64(f.BitWidth()), nil
	}
	sz, err := m.SizeOf(f.Type().Type)
	if err != nil {
		return 0, err
	}
	return sz * 8, nil
}

func alignToByte(bitOffset uint64) uint64 {
	if bitOffset%8 == 0 {
		return bitOffset
	}
	return bitOffset + (8 - bitOffset%8)
}

func byteRound(bits uint64) uint64 {
	bytes := (bits + 7) / 8
	if bytes == 0 {
		return 1
	}
	return bytes
}

// InvalidateLayout discards r's cached layout, e.g. after a structural
// edit made outside of AddField/AddBase (which already do this).
func (m *CodeModel) InvalidateLayout(r *Record) { r.layout = nil }
