package cm

// PlaceholderType stands in for a not-yet-known type referenced by a
// forward-reference id. It is a real Type —
// usable anywhere a type is needed and use-tracked like any other, one
// per id within a Builder — until Build() resolves it via ReplaceType.
// It is never held in the model's composite maps; once resolved, Build
// simply drops it from the builder.
type PlaceholderType struct {
	typeBase
	id string
}

// ID_ returns the forward-reference id this placeholder stands for.
func (p *PlaceholderType) ID_() string { return p.id }

// Builder is the fluent, context-scoped construction API.
// It composes hierarchically: beginning a namespace/record/template
// yields a sub-builder that ends with End(), returning to the parent.
// A Builder is single-use: once Build() is called it is Closed and
// further operations are undefined.
type Builder struct {
	model       *CodeModel
	placeholders map[string]*PlaceholderType
	resolved    map[string]Type
	layoutQueue []*Record
	closed      bool
}

// NewBuilder creates a builder driving m.
func NewBuilder(m *CodeModel) *Builder {
	return &Builder{
		model:        m,
		placeholders: make(map[string]*PlaceholderType),
		resolved:     make(map[string]Type),
	}
}

// TypeRef returns the placeholder type registered under id, creating it
// on first reference. Usable anywhere a type is needed; Build resolves
// it to the real type later supplied via SetType.
func (b *Builder) TypeRef(id string) *PlaceholderType {
	if p, ok := b.placeholders[id]; ok {
		return p
	}
	p := &PlaceholderType{typeBase: typeBase{newBase(KindPlaceholderType)}, id: id}
	b.placeholders[id] = p
	return p
}

// SetType records the real type for a forward-reference id, to be
// substituted for its placeholder when Build runs.
func (b *Builder) SetType(id string, actual Type) {
	b.resolved[id] = actual
}

func (b *Builder) enqueueLayout(r *Record) {
	b.layoutQueue = append(b.layoutQueue, r)
}

// Namespace starts building inside ns (commonly m.Root()), returning a
// sub-builder whose End() returns to this Builder.
func (b *Builder) Namespace(ns *Namespace) *NamespaceBuilder[*Builder] {
	return &NamespaceBuilder[*Builder]{b: b, parent: b, ns: ns}
}

// Build resolves every forward reference: placeholders with no
// corresponding SetType call are a programming error. Each resolved
// placeholder is swapped for its real type via ReplaceType, dead
// composites built over placeholders are swept, and the layout queue is
// drained by computing a default layout for every record enqueued since
// construction (or since the last Build). After Build, the builder is
// Closed.
func (b *Builder) Build() error {
	for id, p := range b.placeholders {
		actual, ok := b.resolved[id]
		if !ok {
			return newError(LookupMiss, "build", "forward reference \""+id+"\" was never resolved")
		}
		b.model.ReplaceType(p, actual)
	}
	b.model.RemoveUnusedCompositeTypes()
	for _, r := range b.layoutQueue {
		if _, err := b.model.LayoutOf(r); err != nil {
			return err
		}
	}
	b.layoutQueue = nil
	b.placeholders = make(map[string]*PlaceholderType)
	b.resolved = make(map[string]Type)
	b.closed = true
	return nil
}

// NamespaceBuilder is a sub-builder scoped to a single Namespace. P is
// the parent builder type, so End() can hand control back up the
// fluent chain without an interface escape hatch — a generic standing
// in for a CRTP-style parent parameter.
type NamespaceBuilder[P any] struct {
	b      *Builder
	parent P
	ns     *Namespace
}

// End closes this sub-builder, returning the parent.
func (nb *NamespaceBuilder[P]) End() P { return nb.parent }

// Namespace starts a nested namespace builder.
func (nb *NamespaceBuilder[P]) Namespace(name string) *NamespaceBuilder[*NamespaceBuilder[P]] {
	child := nb.ns.GetOrCreateNamespace(name)
	return &NamespaceBuilder[*NamespaceBuilder[P]]{b: nb.b, parent: nb, ns: child}
}

// Record starts building a record of the given kind and name. Starting
// a record that already exists returns a builder over it with IsNew
// false; its Base, Field, Method and StaticVar calls are then no-ops
// against the pre-existing record.
func (nb *NamespaceBuilder[P]) Record(kind RecordKind, name string) *RecordBuilder[*NamespaceBuilder[P]] {
	for _, r := range nb.ns.Records() {
		if r.Name() == name {
			return &RecordBuilder[*NamespaceBuilder[P]]{b: nb.b, parent: nb, rec: r, isNew: false}
		}
	}
	rec := nb.ns.CreateRecord(kind, name)
	nb.b.enqueueLayout(rec)
	return &RecordBuilder[*NamespaceBuilder[P]]{b: nb.b, parent: nb, rec: rec, isNew: true}
}

// Typedef declares a typedef in this namespace and returns self for
// chaining.
func (nb *NamespaceBuilder[P]) Typedef(name string, aliased QualifiedType) *NamespaceBuilder[P] {
	nb.ns.CreateTypedef(name, aliased)
	return nb
}

// Enum declares an enum in this namespace and returns self for chaining.
func (nb *NamespaceBuilder[P]) Enum(name string, underlying QualifiedType, scoped bool) *NamespaceBuilder[P] {
	nb.ns.CreateEnum(name, underlying, scoped)
	return nb
}

// Func declares a free function in this namespace and returns self.
func (nb *NamespaceBuilder[P]) Func(name string, ret QualifiedType) *NamespaceBuilder[P] {
	nb.ns.CreateFunction(name, ret)
	return nb
}

// Var declares a namespace-scope variable and returns self.
func (nb *NamespaceBuilder[P]) Var(name string, typ QualifiedType) *NamespaceBuilder[P] {
	nb.ns.CreateStaticVar(name, typ)
	return nb
}

// Template starts building a template in this namespace.
func (nb *NamespaceBuilder[P]) Template(name string) *TemplateBuilder[*NamespaceBuilder[P]] {
	t := nb.ns.CreateTemplate(name)
	return &TemplateBuilder[*NamespaceBuilder[P]]{b: nb.b, parent: nb, t: t}
}

// RecordBuilder is a sub-builder scoped to a single Record.
type RecordBuilder[P any] struct {
	b     *Builder
	parent P
	rec   *Record
	isNew bool
}

// End closes this sub-builder, returning the parent.
func (rb *RecordBuilder[P]) End() P { return rb.parent }

// IsNew reports whether this builder created a fresh record (false
// means operations against it were no-ops against a pre-existing one
// found by name).
func (rb *RecordBuilder[P]) IsNew() bool { return rb.isNew }

// Record returns the record under construction.
func (rb *RecordBuilder[P]) Record() *Record { return rb.rec }

// Base adds a base class and returns self for chaining. A duplicate
// base on a freshly created record panics: the caller supplied the same
// base twice in one fluent chain, which is always a programming error.
func (rb *RecordBuilder[P]) Base(base *Record, access AccessLevel, virtual bool) *RecordBuilder[P] {
	if rb.isNew {
		if _, err := rb.rec.AddBase(base, access, virtual); err != nil {
			panic(err)
		}
	}
	return rb
}

// Field adds a data member and returns self for chaining. An invalid
// bitfield on a freshly created record panics: the caller supplied a
// bitWidth on a non-integral type, always a programming error.
func (rb *RecordBuilder[P]) Field(name string, typ QualifiedType, access AccessLevel, bitWidth uint32) *RecordBuilder[P] {
	if rb.isNew {
		if _, err := rb.rec.AddField(name, typ, access, bitWidth); err != nil {
			panic(err)
		}
	}
	return rb
}

// Method adds a member function and returns self for chaining.
func (rb *RecordBuilder[P]) Method(name string, ret QualifiedType, static bool) *RecordBuilder[P] {
	if rb.isNew {
		rb.rec.AddMethod(name, ret, static)
	}
	return rb
}

// StaticVar adds a static data member and returns self for chaining.
func (rb *RecordBuilder[P]) StaticVar(name string, typ QualifiedType, access AccessLevel) *RecordBuilder[P] {
	if rb.isNew {
		rb.rec.AddStaticVar(name, typ, access)
	}
	return rb
}

// NestedRecord starts building a nested record.
func (rb *RecordBuilder[P]) NestedRecord(kind RecordKind, name string, access AccessLevel) *RecordBuilder[*RecordBuilder[P]] {
	for _, nr := range rb.rec.NestedRecords() {
		if nr.Name() == name {
			return &RecordBuilder[*RecordBuilder[P]]{b: rb.b, parent: rb, rec: nr, isNew: false}
		}
	}
	nr := rb.rec.AddNestedRecord(kind, name, access)
	rb.b.enqueueLayout(nr)
	return &RecordBuilder[*RecordBuilder[P]]{b: rb.b, parent: rb, rec: nr, isNew: true}
}

// TemplateBuilder is a sub-builder scoped to a single Template.
type TemplateBuilder[P any] struct {
	b      *Builder
	parent P
	t      *Template
}

// End closes this sub-builder, returning the parent.
func (tb *TemplateBuilder[P]) End() P { return tb.parent }

// Template returns the template under construction.
func (tb *TemplateBuilder[P]) Template() *Template { return tb.t }

// TypeParam appends a type parameter and returns self for chaining.
func (tb *TemplateBuilder[P]) TypeParam(name string) *TemplateBuilder[P] {
	tb.t.AddTypeParam(name, 0)
	return tb
}

// ValueParam appends a value parameter and returns self for chaining.
func (tb *TemplateBuilder[P]) ValueParam(name string, valType QualifiedType) *TemplateBuilder[P] {
	tb.t.AddValueParam(name, 0, valType)
	return tb
}

// Variadic marks the template variadic and returns self for chaining.
func (tb *TemplateBuilder[P]) Variadic() *TemplateBuilder[P] {
	tb.t.SetVariadic(true)
	return tb
}
