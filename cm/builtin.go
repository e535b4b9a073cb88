package cm

// BaseKind enumerates the builtin scalar families of the language:
// void, bool, the integer families (signed/unsigned char through
// int128), the fixed character types, the floating-point families, an
// opaque ARM-SVE family, and nullptr_t.
type BaseKind int

const (
	BaseVoid BaseKind = iota
	BaseBool
	BaseSChar
	BaseUChar
	BaseShort
	BaseUShort
	BaseInt
	BaseUInt
	BaseLong
	BaseULong
	BaseLongLong
	BaseULongLong
	BaseInt128
	BaseUInt128
	BaseWChar
	BaseChar8
	BaseChar16
	BaseChar32
	BaseFloat
	BaseDouble
	BaseLongDouble
	BaseArmSve
	BaseNullptr
)

func (k BaseKind) String() string {
	names := [...]string{
		"void", "bool", "signed char", "unsigned char", "short",
		"unsigned short", "int", "unsigned int", "long", "unsigned long",
		"long long", "unsigned long long", "__int128", "unsigned __int128",
		"wchar_t", "char8_t", "char16_t", "char32_t", "float", "double",
		"long double", "__SVE_opaque", "nullptr_t",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "?"
	}
	return names[k]
}

// BuiltinType is a singleton-per-CodeModel builtin type, optionally a
// _Complex variant of an integer or floating-point family.
type BuiltinType struct {
	typeBase
	Base    BaseKind
	Complex bool
}

func (t *BuiltinType) isBuiltinMarker() { t.builtin = true }

// Name returns the builtin's textual name, e.g. "int" or "_Complex double".
func (t *BuiltinType) Name() string {
	if t.Complex {
		return "_Complex " + t.Base.String()
	}
	return t.Base.String()
}

// IsBitfieldEligible reports whether a field of this builtin type may
// carry a nonzero bitfield width: the integral builtins
// (signed/unsigned char/short/int/long/long long, bool, wchar_t,
// char16_t, char32_t). Complex variants and char8_t are excluded, as is
// every floating-point and opaque family.
func (t *BuiltinType) IsBitfieldEligible() bool {
	if t.Complex {
		return false
	}
	switch t.Base {
	case BaseBool, BaseSChar, BaseUChar, BaseShort, BaseUShort,
		BaseInt, BaseUInt, BaseLong, BaseULong, BaseLongLong, BaseULongLong,
		BaseWChar, BaseChar16, BaseChar32:
		return true
	default:
		return false
	}
}

type builtinKey struct {
	base    BaseKind
	complex bool
}

// Builtin returns the singleton builtin type for the given family and
// complex flag, creating it on first use: each builtin is a singleton
// within a code model.
func (m *CodeModel) Builtin(base BaseKind, complex bool) *BuiltinType {
	key := builtinKey{base, complex}
	if t, ok := m.builtins[key]; ok {
		return t
	}
	t := &BuiltinType{typeBase: typeBase{newBase(KindBuiltinType)}, Base: base, Complex: complex}
	t.builtin = true
	m.builtins[key] = t
	return t
}

// Void, Bool and Nullptr are convenience accessors for the three
// builtins with no complex/signedness variants.
func (m *CodeModel) Void() *BuiltinType    { return m.Builtin(BaseVoid, false) }
func (m *CodeModel) Bool() *BuiltinType    { return m.Builtin(BaseBool, false) }
func (m *CodeModel) Nullptr() *BuiltinType { return m.Builtin(BaseNullptr, false) }
func (m *CodeModel) Int() *BuiltinType     { return m.Builtin(BaseInt, false) }
func (m *CodeModel) Char() *BuiltinType    { return m.Builtin(BaseSChar, false) }
