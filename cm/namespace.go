package cm

// Namespace is a named (or anonymous) scope holding declarations:
// records, typedefs, enums, functions, static variables, templates, and
// nested namespaces. The global namespace is the root of
// the whole context hierarchy and is owned directly by the CodeModel.
type Namespace struct {
	base
	Context
	ownerCtx  *Context
	model     *CodeModel
	name      string
	nested    map[string]*Namespace
	anonCount int
}

func (n *Namespace) Name() string        { return n.name }
func (n *Namespace) setName(s string)    { n.name = s }
func (n *Namespace) asContext() *Context { return &n.Context }

func newRootNamespace(m *CodeModel) *Namespace {
	n := &Namespace{
		base:   newBase(KindNamespace),
		model:  m,
		nested: make(map[string]*Namespace),
	}
	return n
}

func newNestedNamespace(m *CodeModel, owner *Namespace, name string) *Namespace {
	n := &Namespace{
		base:     newBase(KindNamespace),
		ownerCtx: &owner.Context,
		model:    m,
		name:     name,
		nested:   make(map[string]*Namespace),
	}
	return n
}

// GetOrCreateNamespace returns the direct nested namespace named name,
// creating it (and indexing it as a named child) on first request. loc
// is only applied on creation; it is ignored when returning an existing
// namespace.
func (n *Namespace) GetOrCreateNamespace(name string, loc ...SourceLocation) *Namespace {
	if name == "" {
		return n.CreateAnonNamespace(loc...)
	}
	if child, ok := n.nested[name]; ok {
		return child
	}
	child := newNestedNamespace(n.model, n, name)
	if len(loc) > 0 {
		child.SetLocation(loc[0])
	}
	n.nested[name] = child
	n.addChild(child)
	return child
}

// CreateAnonNamespace creates a fresh anonymous nested namespace. Each
// call produces a distinct namespace, matching C++'s "every anonymous
// namespace is its own unique scope" semantics; it is not indexed by
// name (anonymous namespaces are looked up structurally, not by name).
func (n *Namespace) CreateAnonNamespace(loc ...SourceLocation) *Namespace {
	n.anonCount++
	child := newNestedNamespace(n.model, n, "")
	if len(loc) > 0 {
		child.SetLocation(loc[0])
	}
	n.addChild(child)
	return child
}

// CreateRecord declares a new record (class/struct/union) directly in
// this namespace.
func (n *Namespace) CreateRecord(kind RecordKind, name string, loc ...SourceLocation) *Record {
	r := newRecord(n.model, &n.Context, kind, name)
	if len(loc) > 0 {
		r.SetLocation(loc[0])
	}
	n.addChild(r)
	return r
}

// CreateTypedef declares a new typedef/type-alias in this namespace.
func (n *Namespace) CreateTypedef(name string, aliased QualifiedType, loc ...SourceLocation) *Typedef {
	t := newTypedef(&n.Context, name, aliased)
	if len(loc) > 0 {
		t.SetLocation(loc[0])
	}
	n.addChild(t)
	return t
}

// CreateEnum declares a new enum in this namespace.
func (n *Namespace) CreateEnum(name string, underlying QualifiedType, scoped bool, loc ...SourceLocation) *Enum {
	e := newEnum(&n.Context, name, underlying, scoped)
	if len(loc) > 0 {
		e.SetLocation(loc[0])
	}
	n.addChild(e)
	return e
}

// CreateFunction declares a new free function in this namespace.
func (n *Namespace) CreateFunction(name string, ret QualifiedType, loc ...SourceLocation) *Function {
	f := newFunction(n.model, &n.Context, name, ret)
	if len(loc) > 0 {
		f.SetLocation(loc[0])
	}
	n.addChild(f)
	return f
}

// CreateStaticVar declares a new namespace-scope variable.
func (n *Namespace) CreateStaticVar(name string, typ QualifiedType, loc ...SourceLocation) *StaticVar {
	v := newStaticVar(&n.Context, name, typ)
	if len(loc) > 0 {
		v.SetLocation(loc[0])
	}
	n.addChild(v)
	return v
}

// CreateTemplate declares a new class/record template in this namespace.
func (n *Namespace) CreateTemplate(name string, loc ...SourceLocation) *Template {
	t := newTemplate(&n.Context, name, false)
	if len(loc) > 0 {
		t.SetLocation(loc[0])
	}
	n.addChild(t)
	return t
}

// CreateFunctionTemplate declares a new function template in this
// namespace, distinguished from a class template by IsFunctionTemplate.
func (n *Namespace) CreateFunctionTemplate(name string, loc ...SourceLocation) *Template {
	t := newTemplate(&n.Context, name, true)
	if len(loc) > 0 {
		t.SetLocation(loc[0])
	}
	n.addChild(t)
	return t
}

// Namespaces returns the direct nested namespace children.
func (n *Namespace) Namespaces() []*Namespace { return filterKind[*Namespace](n.Children()) }

// Records returns the direct record children, named and anonymous alike.
func (n *Namespace) Records() []*Record { return filterKind[*Record](n.Children()) }

// NamedRecords narrows Records to those with a non-empty name, excluding
// anonymous struct/union declarations.
func (n *Namespace) NamedRecords() []*Record {
	var out []*Record
	for _, r := range n.Records() {
		if r.Name() != "" {
			out = append(out, r)
		}
	}
	return out
}

// Typedefs returns the direct typedef children.
func (n *Namespace) Typedefs() []*Typedef { return filterKind[*Typedef](n.Children()) }

// Enums returns the direct enum children.
func (n *Namespace) Enums() []*Enum { return filterKind[*Enum](n.Children()) }

// Functions returns the direct function children.
func (n *Namespace) Functions() []*Function { return filterKind[*Function](n.Children()) }

// StaticVars returns the direct namespace-scope variable children.
func (n *Namespace) StaticVars() []*StaticVar { return filterKind[*StaticVar](n.Children()) }

// Templates returns every direct template child, class and function
// templates alike.
func (n *Namespace) Templates() []*Template { return filterKind[*Template](n.Children()) }

// TemplateRecords narrows Templates to class/record templates.
func (n *Namespace) TemplateRecords() []*Template {
	var out []*Template
	for _, t := range n.Templates() {
		if !t.IsFunctionTemplate() {
			out = append(out, t)
		}
	}
	return out
}

// TemplateFunctions narrows Templates to function templates.
func (n *Namespace) TemplateFunctions() []*Template {
	var out []*Template
	for _, t := range n.Templates() {
		if t.IsFunctionTemplate() {
			out = append(out, t)
		}
	}
	return out
}

// FindTypedef looks up a direct typedef child by name.
func (n *Namespace) FindTypedef(name string) (*Typedef, bool) {
	for _, e := range n.FindNamed(name) {
		if t, ok := e.(*Typedef); ok {
			return t, true
		}
	}
	return nil, false
}

// FindEnum looks up a direct enum child by name.
func (n *Namespace) FindEnum(name string) (*Enum, bool) {
	for _, e := range n.FindNamed(name) {
		if en, ok := e.(*Enum); ok {
			return en, true
		}
	}
	return nil, false
}

// FindFunction looks up a direct function child by name (the first
// overload registered under that name; callers needing full overload
// resolution should filter FindNamed themselves).
func (n *Namespace) FindFunction(name string) (*Function, bool) {
	for _, e := range n.FindNamed(name) {
		if f, ok := e.(*Function); ok {
			return f, true
		}
	}
	return nil, false
}

// FindTemplate looks up a direct template child by name, class or
// function template alike.
func (n *Namespace) FindTemplate(name string) (*Template, bool) {
	for _, e := range n.FindNamed(name) {
		if t, ok := e.(*Template); ok {
			return t, true
		}
	}
	return nil, false
}
