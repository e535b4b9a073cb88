package cm

// Enum is an enumeration declaration: a Context because it names
// enumerators as children, and a Type because the enum itself can be
// used anywhere a type is expected. Scoped (`enum class`) and
// unscoped enums share this representation; the scoped flag (IsScoped)
// only records which was declared. Enumerators of either kind are
// children of the enum's own Context, never of the enclosing scope.
type Enum struct {
	typeBase
	Context
	ownerCtx   *Context
	name       string
	underlying TypeUse
	scoped     bool
}

func (e *Enum) Name() string        { return e.name }
func (e *Enum) setName(s string)    { e.name = s }
func (e *Enum) asContext() *Context { return &e.Context }
func (e *Enum) ctx() *Context       { return e.ownerCtx }
func (e *Enum) IsScoped() bool      { return e.scoped }

// UnderlyingType returns the enum's fixed underlying integer type.
func (e *Enum) UnderlyingType() QualifiedType { return e.underlying.Get() }

// SetUnderlyingType changes the declared underlying type.
func (e *Enum) SetUnderlyingType(q QualifiedType) { e.underlying.Set(q) }

// Enumerators returns the enum's direct enumerator children in
// declaration order.
func (e *Enum) Enumerators() []*Enumerator { return filterKind[*Enumerator](e.Children()) }

// AddEnumerator declares a new enumerator with the given constant value.
func (e *Enum) AddEnumerator(name string, value int64, loc ...SourceLocation) *Enumerator {
	en := &Enumerator{base: newBase(KindEnumerator), name: name, value: value}
	if len(loc) > 0 {
		en.SetLocation(loc[0])
	}
	e.addChild(en)
	return en
}

func newEnum(owner *Context, name string, underlying QualifiedType, scoped bool) *Enum {
	e := &Enum{typeBase: typeBase{newBase(KindEnum)}, ownerCtx: owner, name: name, scoped: scoped}
	e.underlying = NewTypeUse(e, underlying, UseEnumUnderlying)
	return e
}

// Enumerator is a single named constant within an Enum.
type Enumerator struct {
	base
	name  string
	value int64
}

func (en *Enumerator) Name() string     { return en.name }
func (en *Enumerator) setName(s string) { en.name = s }
func (en *Enumerator) Value() int64     { return en.value }
