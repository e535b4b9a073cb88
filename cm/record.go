package cm

// RecordKind distinguishes class, struct, and union records. Unions get
// a different layout rule (all members start at offset 0); classes and
// structs differ only in default member/base access.
type RecordKind int

const (
	RecordClass RecordKind = iota
	RecordStruct
	RecordUnion
)

func (k RecordKind) String() string {
	switch k {
	case RecordClass:
		return "class"
	case RecordStruct:
		return "struct"
	case RecordUnion:
		return "union"
	default:
		return "record"
	}
}

func (k RecordKind) defaultAccess() AccessLevel {
	if k == RecordClass {
		return AccessPrivate
	}
	return AccessPublic
}

// AccessLevel is the C++ member/base access specifier.
type AccessLevel int

const (
	AccessPublic AccessLevel = iota
	AccessProtected
	AccessPrivate
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	default:
		return "private"
	}
}

// baseSpec is one entry in a record's base-class list: a use of the
// base's record type plus its access level and virtual-ness.
type baseSpec struct {
	use      TypeUse
	access   AccessLevel
	virtual  bool
}

// Record is a class, struct, or union declaration: it is simultaneously
// a Type (usable wherever a type is needed) and a Context (it declares
// fields, methods, nested types, and static members).
type Record struct {
	typeBase
	Context
	ownerCtx *Context
	model    *CodeModel

	name         string
	rkind        RecordKind
	bases        []*baseSpec
	layout       *RecordLayout // populated lazily by the layout engine, invalidated on any structural edit
	opaque       bool          // declared but not yet defined (forward declaration)
	nestedAccess map[*Record]AccessLevel
}

func (r *Record) Name() string        { return r.name }
func (r *Record) setName(s string)    { r.name = s }
func (r *Record) asContext() *Context { return &r.Context }
func (r *Record) ctx() *Context       { return r.ownerCtx }

// RecordKind reports whether this is a class, struct, or union.
func (r *Record) RecordKind() RecordKind { return r.rkind }

// IsOpaque reports whether this record is only forward-declared.
func (r *Record) IsOpaque() bool { return r.opaque }

// MarkDefined clears the opaque flag once a full definition (fields,
// bases) has been supplied, invalidating any stale cached layout.
func (r *Record) MarkDefined() {
	r.opaque = false
	r.layout = nil
}

func newRecord(m *CodeModel, owner *Context, kind RecordKind, name string) *Record {
	r := &Record{
		typeBase:     typeBase{newBase(KindRecord)},
		ownerCtx:     owner,
		model:        m,
		name:         name,
		rkind:        kind,
		opaque:       true,
		nestedAccess: make(map[*Record]AccessLevel),
	}
	return r
}

// AddBase appends a new base-class entry with the given access and
// virtual-ness. Rejects a base already present with DuplicateInsertion.
func (r *Record) AddBase(base *Record, access AccessLevel, virtual bool) (*baseSpec, error) {
	for _, bs := range r.bases {
		if bs.Type() == base {
			return nil, newError(DuplicateInsertion, "add_base", "base \""+base.Name()+"\" already present")
		}
	}
	bs := &baseSpec{access: access, virtual: virtual}
	bs.use = NewTypeUse(r, Unqualified(base), UseBase)
	r.bases = append(r.bases, bs)
	r.layout = nil
	return bs, nil
}

// Bases returns the record's direct base classes in declaration order.
func (r *Record) Bases() []*baseSpec { return r.bases }

func (b *baseSpec) Type() *Record        { return b.use.Get().Type.(*Record) }
func (b *baseSpec) Access() AccessLevel  { return b.access }
func (b *baseSpec) IsVirtual() bool      { return b.virtual }

// ReplaceBase swaps an existing base entry's referenced record (keeping
// its access/virtual-ness), used by template instantiation when a
// dependent base gets resolved.
func (r *Record) ReplaceBase(old, replacement *Record) {
	for _, bs := range r.bases {
		if bs.Type() == old {
			bs.use.Set(Unqualified(replacement))
			r.layout = nil
			return
		}
	}
	panic(newError(LookupMiss, "replace_base", "old base not found on record"))
}

// replaceBaseUse is ReplaceType's hook for when a Record is the holder
// of a use being redirected (a base-class use): it finds which baseSpec
// owns u and redirects it.
func (r *Record) replaceBaseUse(u *Use, src, dst Type) {
	for _, bs := range r.bases {
		if bs.use.Use() == u {
			bs.use.Set(bs.use.Get().ReplacedType(src, dst))
			r.layout = nil
			return
		}
	}
}

// AddField declares a new non-static data member. bitWidth is 0 for an
// ordinary (non-bitfield) field; a nonzero bitWidth is only accepted on
// an integral builtin type (TypeConstraint otherwise). loc is optional,
// recording where the field was declared when a caller has source
// position to offer.
func (r *Record) AddField(name string, typ QualifiedType, access AccessLevel, bitWidth uint32, loc ...SourceLocation) (*Field, error) {
	if bitWidth > 0 {
		bt, ok := typ.Type.(*BuiltinType)
		if !ok || !bt.IsBitfieldEligible() {
			return nil, newError(TypeConstraint, "add_field", "bitfield \""+name+"\" must be an integral builtin type")
		}
	}
	f := newField(r, name, typ, access, bitWidth)
	if len(loc) > 0 {
		f.SetLocation(loc[0])
	}
	r.addChild(f)
	r.layout = nil
	return f, nil
}

// AddMethod declares a new member function. loc is optional, as with
// AddField.
func (r *Record) AddMethod(name string, ret QualifiedType, static bool, loc ...SourceLocation) *Method {
	me := newMethod(r, name, ret, static)
	if len(loc) > 0 {
		me.SetLocation(loc[0])
	}
	r.addChild(me)
	return me
}

// AddStaticVar declares a new static data member (not part of the
// object layout). loc is optional, as with AddField.
func (r *Record) AddStaticVar(name string, typ QualifiedType, access AccessLevel, loc ...SourceLocation) *StaticVar {
	v := newStaticVar(&r.Context, name, typ)
	v.access = access
	if len(loc) > 0 {
		v.SetLocation(loc[0])
	}
	r.addChild(v)
	return v
}

// AddNestedRecord declares a nested class/struct/union. access controls
// the nested record's own visibility and is kept in the record's
// nested-access side-map (read back by NestedAccess); fields and static
// variables carry their access level on themselves instead.
func (r *Record) AddNestedRecord(kind RecordKind, name string, access AccessLevel, loc ...SourceLocation) *Record {
	nr := newRecord(r.model, &r.Context, kind, name)
	if len(loc) > 0 {
		nr.SetLocation(loc[0])
	}
	r.addChild(nr)
	r.nestedAccess[nr] = access
	return nr
}

// Fields returns the record's direct non-static data members in
// declaration order.
func (r *Record) Fields() []*Field { return filterKind[*Field](r.Children()) }

// Methods returns the record's direct member functions.
func (r *Record) Methods() []*Method { return filterKind[*Method](r.Children()) }

// NestedRecords returns the record's directly nested records.
func (r *Record) NestedRecords() []*Record { return filterKind[*Record](r.Children()) }

// NestedAccess returns the access level under which nested was declared
// within r, or AccessPublic if not tracked (e.g. nested was not created
// via AddNestedRecord).
func (r *Record) NestedAccess(nested *Record) AccessLevel {
	if a, ok := r.nestedAccess[nested]; ok {
		return a
	}
	return AccessPublic
}

// FindField looks up a direct, non-static data member by name.
func (r *Record) FindField(name string) (*Field, bool) {
	for _, e := range r.FindNamed(name) {
		if f, ok := e.(*Field); ok {
			return f, true
		}
	}
	return nil, false
}

// FindMethod looks up a direct member function by name (the first
// overload registered under that name; callers needing full overload
// resolution should filter FindNamed themselves).
func (r *Record) FindMethod(name string) (*Method, bool) {
	for _, e := range r.FindNamed(name) {
		if me, ok := e.(*Method); ok {
			return me, true
		}
	}
	return nil, false
}

// Field is a non-static data member.
type Field struct {
	base
	name     string
	typeUse  TypeUse
	access   AccessLevel
	bitWidth uint32
}

func (f *Field) Name() string        { return f.name }
func (f *Field) setName(s string)    { f.name = s }
func (f *Field) Type() QualifiedType { return f.typeUse.Get() }
func (f *Field) Access() AccessLevel { return f.access }

// IsBitfield reports whether this field was declared with an explicit
// bit width.
func (f *Field) IsBitfield() bool { return f.bitWidth > 0 }

// BitWidth returns the declared bit width, or 0 if this is not a
// bitfield.
func (f *Field) BitWidth() uint32 { return f.bitWidth }

func newField(owner Entity, name string, typ QualifiedType, access AccessLevel, bitWidth uint32) *Field {
	f := &Field{base: newBase(KindField), name: name, access: access, bitWidth: bitWidth}
	f.typeUse = NewTypeUse(f, typ, UseField)
	return f
}

// Method is a member function, distinguished from a free Function by
// carrying an owning record and static-ness.
type Method struct {
	base
	owner  *Record
	name   string
	ret    TypeUse
	params []*Param
	static bool
}

func (me *Method) Name() string          { return me.name }
func (me *Method) setName(s string)      { me.name = s }
func (me *Method) ReturnType() QualifiedType { return me.ret.Get() }
func (me *Method) IsStatic() bool        { return me.static }
func (me *Method) Owner() *Record        { return me.owner }
func (me *Method) Params() []*Param      { return me.params }

// AddParam appends a new parameter declaration to this method.
func (me *Method) AddParam(name string, typ QualifiedType, loc ...SourceLocation) *Param {
	p := newParam(me, name, typ)
	if len(loc) > 0 {
		p.SetLocation(loc[0])
	}
	me.params = append(me.params, p)
	return p
}

func newMethod(owner *Record, name string, ret QualifiedType, static bool) *Method {
	me := &Method{base: newBase(KindMethod), owner: owner, name: name, static: static}
	me.ret = NewTypeUse(me, ret, UseReturnType)
	return me
}
