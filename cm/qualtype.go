package cm

// Type is any entity that can stand for a type: builtins, composite
// (structural) types, and declared (nominal) types all implement it.
type Type interface {
	Entity
	isType()
}

// typeBase is embedded by every concrete type to satisfy the Type
// marker and carry the common base entity machinery.
type typeBase struct{ base }

func (typeBase) isType() {}

// QualifiedType pairs a type with const/volatile qualifiers. It is a
// plain value, not an entity: it is held by value inside
// whatever holds it (a field, a parameter, a return-type slot, a
// composite type's key) and participates in that holder's own use
// registration via TypeUse.
type QualifiedType struct {
	Type     Type
	Const    bool
	Volatile bool
}

// Unqualified returns t with no const/volatile qualifiers.
func Unqualified(t Type) QualifiedType { return QualifiedType{Type: t} }

// Qualified returns t qualified with the given const/volatile flags.
func Qualified(t Type, isConst, isVolatile bool) QualifiedType {
	return QualifiedType{Type: t, Const: isConst, Volatile: isVolatile}
}

// IsNull reports whether the qualified type holds no type.
func (q QualifiedType) IsNull() bool { return q.Type == nil }

// Equal compares type identity and both qualifiers.
func (q QualifiedType) Equal(o QualifiedType) bool {
	return q.Type == o.Type && q.Const == o.Const && q.Volatile == o.Volatile
}

// ReplacedType returns a copy of q with its type swapped from src to dst
// if q.Type == src, else returns q unchanged. Mirrors qual_type_t::replaced_type.
func (q QualifiedType) ReplacedType(src, dst Type) QualifiedType {
	if q.Type == src {
		return QualifiedType{Type: dst, Const: q.Const, Volatile: q.Volatile}
	}
	return q
}

// TypeUse is a holder-side registration of a single QualifiedType use,
// the Go analogue of single_type_use/qual_type_use_impl: it keeps the
// qualified type plus the *Use edge that was registered against
// q.Type, and keeps them in lockstep on Set.
type TypeUse struct {
	q      QualifiedType
	use    *Use
	holder Entity
	kind   UseKind
}

// NewTypeUse constructs a type use for qt, owned by holder and tagged
// kind, registering it against qt.Type if non-nil. holder must already
// be a usable Entity (its base is initialized) by the time this is
// called, even if the surrounding struct literal isn't fully built yet.
func NewTypeUse(holder Entity, qt QualifiedType, kind UseKind) TypeUse {
	tu := TypeUse{holder: holder, kind: kind}
	if qt.Type != nil {
		tu.use = newUse(holder, qt.Type, kind)
	}
	tu.q = qt
	return tu
}

// Get returns the currently held qualified type.
func (t *TypeUse) Get() QualifiedType { return t.q }

// Set replaces the held qualified type, releasing the use of the old
// type and registering a use of the new one.
func (t *TypeUse) Set(qt QualifiedType) {
	if t.use != nil {
		t.use.release()
		t.use = nil
	}
	t.q = qt
	if qt.Type != nil {
		t.use = newUse(t.holder, qt.Type, t.kind)
	}
}

// release drops the held use without replacing it, leaving the TypeUse
// empty. Used when the holder itself is being torn down.
func (t *TypeUse) release() {
	if t.use != nil {
		t.use.release()
		t.use = nil
	}
	t.q = QualifiedType{}
}

// Use returns the underlying *Use edge, or nil if unbound. Needed by
// replace_type to recover the holder when walking an entity's
// incoming uses.
func (t *TypeUse) Use() *Use { return t.use }
