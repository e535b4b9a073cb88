package cm

// Function is a free (namespace-scope) function declaration. Member
// functions are represented by the separate Method type (record.go),
// which additionally carries an owning record and static-ness. Function
// embeds Context: a function owns a child scope of its own, for the
// local records, typedefs and variables a body can declare, distinct
// from its ordered, unnamed parameter list.
type Function struct {
	base
	Context
	ownerCtx *Context
	model    *CodeModel
	name     string
	ret      TypeUse
	params   []*Param
	variadic bool
}

func (f *Function) Name() string            { return f.name }
func (f *Function) setName(s string)        { f.name = s }
func (f *Function) asContext() *Context     { return &f.Context }
func (f *Function) ctx() *Context           { return f.ownerCtx }
func (f *Function) ReturnType() QualifiedType { return f.ret.Get() }
func (f *Function) Params() []*Param        { return f.params }
func (f *Function) IsVariadic() bool        { return f.variadic }
func (f *Function) SetVariadic(v bool)      { f.variadic = v }

// SetReturnType changes the declared return type, e.g. once a forward
// reference is resolved by the builder.
func (f *Function) SetReturnType(ret QualifiedType) { f.ret.Set(ret) }

// AddParam appends a new parameter declaration. name may be empty for
// an unnamed parameter (valid in a declaration, not a definition).
func (f *Function) AddParam(name string, typ QualifiedType, loc ...SourceLocation) *Param {
	p := newParam(f, name, typ)
	if len(loc) > 0 {
		p.SetLocation(loc[0])
	}
	f.params = append(f.params, p)
	return p
}

func newFunction(m *CodeModel, owner *Context, name string, ret QualifiedType) *Function {
	f := &Function{base: newBase(KindFunction), ownerCtx: owner, model: m, name: name}
	f.ret = NewTypeUse(f, ret, UseReturnType)
	return f
}

// CreateLocalRecord declares a record scoped to this function's body
// (e.g. a local struct), a child of the function's own Context rather
// than of its enclosing namespace.
func (f *Function) CreateLocalRecord(kind RecordKind, name string, loc ...SourceLocation) *Record {
	r := newRecord(f.model, &f.Context, kind, name)
	if len(loc) > 0 {
		r.SetLocation(loc[0])
	}
	f.addChild(r)
	return r
}

// CreateLocalVar declares a local variable scoped to this function's
// body.
func (f *Function) CreateLocalVar(name string, typ QualifiedType, loc ...SourceLocation) *StaticVar {
	v := newStaticVar(&f.Context, name, typ)
	if len(loc) > 0 {
		v.SetLocation(loc[0])
	}
	f.addChild(v)
	return v
}

// LocalRecords returns the records declared directly in this function's
// body.
func (f *Function) LocalRecords() []*Record { return filterKind[*Record](f.Children()) }

// Param is a single function or method parameter. Parameters are not
// Context children of their function — the parameter list is an ordered
// sequence, not a name-indexed scope — but they are still Entities so
// their type can be a tracked use.
type Param struct {
	base
	name    string
	typeUse TypeUse
}

func (p *Param) Name() string        { return p.name }
func (p *Param) setName(s string)    { p.name = s }
func (p *Param) Type() QualifiedType { return p.typeUse.Get() }

// SetType changes the parameter's declared type.
func (p *Param) SetType(t QualifiedType) { p.typeUse.Set(t) }

func newParam(owner Entity, name string, typ QualifiedType) *Param {
	p := &Param{base: newBase(KindParam), name: name}
	p.typeUse = NewTypeUse(p, typ, UseParam)
	return p
}

// StaticVar is a namespace-scope or static-member variable declaration.
type StaticVar struct {
	base
	name    string
	typeUse TypeUse
	access  AccessLevel
}

func (v *StaticVar) Name() string        { return v.name }
func (v *StaticVar) setName(s string)    { v.name = s }
func (v *StaticVar) Type() QualifiedType { return v.typeUse.Get() }
func (v *StaticVar) Access() AccessLevel { return v.access }

// SetType changes the variable's declared type.
func (v *StaticVar) SetType(t QualifiedType) { v.typeUse.Set(t) }

func newStaticVar(owner *Context, name string, typ QualifiedType) *StaticVar {
	v := &StaticVar{base: newBase(KindStaticVar), name: name}
	v.typeUse = NewTypeUse(v, typ, UseStaticVar)
	return v
}
