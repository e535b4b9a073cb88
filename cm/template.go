package cm

import "strings"

// TemplateParamKind distinguishes a type parameter (a named placeholder
// standing for a type) from a value parameter (a named entity of some
// concrete type, e.g. a non-type template parameter).
type TemplateParamKind int

const (
	TypeParam TemplateParamKind = iota
	ValueParam
)

// TemplateParam is one parameter of a Template, tracking its ordinal
// Index and its Depth (the nesting level of the template that declares
// it, so a type-parameter use inside a nested template can record which
// enclosing template it refers to).
type TemplateParam struct {
	base
	name      string
	paramKind TemplateParamKind
	depth     int
	index     int
	valueType TypeUse // only meaningful for ValueParam
}

func (p *TemplateParam) Name() string            { return p.name }
func (p *TemplateParam) setName(s string)        { p.name = s }
func (p *TemplateParam) ParamKind() TemplateParamKind { return p.paramKind }
func (p *TemplateParam) Depth() int               { return p.depth }
func (p *TemplateParam) Index() int               { return p.index }
func (p *TemplateParam) ValueType() QualifiedType { return p.valueType.Get() }

func newTypeTemplateParam(name string, depth, index int) *TemplateParam {
	return &TemplateParam{base: newBase(KindTemplateParam), name: name, paramKind: TypeParam, depth: depth, index: index}
}

func newValueTemplateParam(name string, depth, index int, valType QualifiedType) *TemplateParam {
	p := &TemplateParam{base: newBase(KindTemplateParam), name: name, paramKind: ValueParam, depth: depth, index: index}
	p.valueType = NewTypeUse(p, valType, UseGeneric)
	return p
}

// TemplateArg binds one parameter position to either a qualified type
// (type argument) or an opaque textual value (value argument). Value
// arguments compare by their literal text; broader value
// canonicalization is left to the front end.
type TemplateArg struct {
	base
	isType  bool
	typeUse TypeUse
	value   string
}

// IsType reports whether this is a type argument.
func (a *TemplateArg) IsType() bool { return a.isType }

// Type returns the bound qualified type; only meaningful if IsType().
func (a *TemplateArg) Type() QualifiedType { return a.typeUse.Get() }

// Value returns the bound textual literal; only meaningful if !IsType().
func (a *TemplateArg) Value() string { return a.value }

func newTypeTemplateArg(qt QualifiedType) *TemplateArg {
	a := &TemplateArg{base: newBase(KindTemplateArg), isType: true}
	a.typeUse = NewTypeUse(a, qt, UseTemplateArg)
	return a
}

func newValueTemplateArg(literal string) *TemplateArg {
	return &TemplateArg{base: newBase(KindTemplateArg), isType: false, value: literal}
}

// canonicalKey encodes a single argument into the comparable token used
// to build a substitution map key: type arguments canonicalize to their
// (type, const, volatile) triple, value arguments to their literal text
//.
func (a *TemplateArg) canonicalKey() string {
	if a.isType {
		return "T:" + encodeQualType(a.typeUse.Get())
	}
	return "V:" + a.value
}

func argListKey(args []*TemplateArg) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.canonicalKey())
	}
	return b.String()
}

// SubstitutionKind distinguishes the three nominal substitution
// entities that share one template's argument-keyed map.
type SubstitutionKind int

const (
	SubstInstantiation SubstitutionKind = iota
	SubstSpecialization
	SubstDependentInstantiation
)

func (k SubstitutionKind) entityKind() Kind {
	switch k {
	case SubstSpecialization:
		return KindSpecialization
	case SubstDependentInstantiation:
		return KindDependentInstantiation
	default:
		return KindInstantiation
	}
}

// Substitution is one entry in a template's substitution map: the
// template's parameters bound to a concrete argument list. It is
// simultaneously a Record (so members can be declared on the
// instantiated/specialized entity) — its dynamic Kind distinguishes
// instantiation, specialization, and dependent instantiation even
// though all three share the same argument-list key space.
type Substitution struct {
	Record
	template *Template
	args     []*TemplateArg
	key      string
	subKind  SubstitutionKind
}

func (s *Substitution) Template() *Template       { return s.template }
func (s *Substitution) Args() []*TemplateArg      { return s.args }
func (s *Substitution) SubstitutionKind() SubstitutionKind { return s.subKind }

// IsDependent reports whether this substitution was created as a
// dependent instantiation (SubstDependentInstantiation). It reads only
// that kind; the bound arguments are not inspected.
func (s *Substitution) IsDependent() bool { return s.subKind == SubstDependentInstantiation }

func newSubstitution(t *Template, owner *Context, kind SubstitutionKind, name string, args []*TemplateArg) *Substitution {
	s := &Substitution{
		Record: Record{
			typeBase:     typeBase{newBase(kind.entityKind())},
			ownerCtx:     owner,
			model:        t.model,
			name:         name,
			rkind:        RecordStruct,
			nestedAccess: make(map[*Record]AccessLevel),
		},
		template: t,
		args:     args,
		key:      argListKey(args),
		subKind:  kind,
	}
	return s
}

// Template is a named, parameterized entity: a class or
// function template. Its substitutions (instantiations, specializations,
// dependent instantiations) are entities of the template's *parent*
// context, but this struct keeps the lookup map so find-or-create is
// O(1) regardless of how many other declarations share that context.
type Template struct {
	base
	ownerCtx    *Context
	model       *CodeModel
	name        string
	params      []*TemplateParam
	variadic    bool
	subs        map[string]*Substitution
	subsOrder   []*Substitution
	partials    []*PartialSpecialization
	thisType    *ThisType
	forFunction bool
}

func (t *Template) Name() string     { return t.name }
func (t *Template) setName(s string) { t.name = s }
func (t *Template) ctx() *Context    { return t.ownerCtx }
func (t *Template) Params() []*TemplateParam { return t.params }
func (t *Template) IsVariadic() bool  { return t.variadic }
func (t *Template) SetVariadic(v bool) { t.variadic = v }

// IsFunctionTemplate reports whether this template was declared via
// CreateFunctionTemplate (a function template) rather than CreateTemplate
// (a class/record template).
func (t *Template) IsFunctionTemplate() bool { return t.forFunction }

// ThisType returns the template's injected this-type, created lazily on
// first access.
func (t *Template) ThisType() *ThisType {
	if t.thisType == nil {
		t.thisType = &ThisType{typeBase: typeBase{newBase(KindThisType)}, template: t}
	}
	return t.thisType
}

func newTemplate(owner *Context, name string, forFunction bool) *Template {
	return &Template{
		ownerCtx:    owner,
		base:        newBase(KindTemplate),
		name:        name,
		subs:        make(map[string]*Substitution),
		forFunction: forFunction,
	}
}

// AddTypeParam appends a new type parameter at the next index, depth
// levels deep (0 for a template declared directly in this scope).
func (t *Template) AddTypeParam(name string, depth int) *TemplateParam {
	p := newTypeTemplateParam(name, depth, len(t.params))
	t.params = append(t.params, p)
	return p
}

// AddValueParam appends a new value (non-type) parameter.
func (t *Template) AddValueParam(name string, depth int, valType QualifiedType) *TemplateParam {
	p := newValueTemplateParam(name, depth, len(t.params), valType)
	t.params = append(t.params, p)
	return p
}

// NewTypeArg builds a type argument for use with FindOrCreateSubstitution.
func NewTypeArg(qt QualifiedType) *TemplateArg { return newTypeTemplateArg(qt) }

// NewValueArg builds a value argument from its textual literal form.
func NewValueArg(literal string) *TemplateArg { return newValueTemplateArg(literal) }

// FindOrCreateSubstitution returns the existing substitution whose
// argument list matches args (same length, pairwise-equal arguments),
// creating one of the requested kind if none exists. Requesting a
// substitution under an existing key with a different kind is a
// DuplicateInsertion error — the key space is shared but each key names
// exactly one substitution.
func (t *Template) FindOrCreateSubstitution(kind SubstitutionKind, name string, args []*TemplateArg) (*Substitution, error) {
	key := argListKey(args)
	if existing, ok := t.subs[key]; ok {
		if existing.subKind != kind {
			return nil, newError(DuplicateInsertion, "find_or_create_substitution",
				"argument list already bound to a substitution of a different kind")
		}
		return existing, nil
	}
	s := newSubstitution(t, t.ownerCtx, kind, name, args)
	t.subs[key] = s
	t.subsOrder = append(t.subsOrder, s)
	t.ownerCtx.addChild(s)
	return s, nil
}

// Substitutions returns every substitution registered on this template,
// in creation order.
func (t *Template) Substitutions() []*Substitution {
	out := make([]*Substitution, len(t.subsOrder))
	copy(out, t.subsOrder)
	return out
}

// Instantiations filters Substitutions down to plain instantiations.
func (t *Template) Instantiations() []*Substitution {
	return filterSubstitutions(t.subsOrder, SubstInstantiation)
}

// Specializations filters Substitutions down to user-written
// specializations.
func (t *Template) Specializations() []*Substitution {
	return filterSubstitutions(t.subsOrder, SubstSpecialization)
}

// DependentInstantiations filters Substitutions down to dependent
// instantiations.
func (t *Template) DependentInstantiations() []*Substitution {
	return filterSubstitutions(t.subsOrder, SubstDependentInstantiation)
}

func filterSubstitutions(subs []*Substitution, kind SubstitutionKind) []*Substitution {
	var out []*Substitution
	for _, s := range subs {
		if s.subKind == kind {
			out = append(out, s)
		}
	}
	return out
}

// AddPartialSpecialization attaches a new partial specialization to this
// template: a secondary templated entity with its own parameters and
// its own argument list matching the parent's parameter arity.
func (t *Template) AddPartialSpecialization(args []*TemplateArg) *PartialSpecialization {
	ps := &PartialSpecialization{
		base:     newBase(KindPartialSpecialization),
		parent:   t,
		ownerCtx: t.ownerCtx,
		args:     args,
	}
	t.ownerCtx.addChild(ps)
	t.partials = append(t.partials, ps)
	return ps
}

// PartialSpecializations returns the template's attached partial
// specializations in declaration order.
func (t *Template) PartialSpecializations() []*PartialSpecialization {
	out := make([]*PartialSpecialization, len(t.partials))
	copy(out, t.partials)
	return out
}

// PartialSpecialization is a secondary templated declaration matching a
// subset of its parent template's instantiations: it has
// its own parameter list (for the parts left free) and an argument list
// (for the parts pinned), both independent of the parent's substitution
// map.
type PartialSpecialization struct {
	base
	parent   *Template
	ownerCtx *Context
	params   []*TemplateParam
	args     []*TemplateArg
}

func (ps *PartialSpecialization) Parent() *Template      { return ps.parent }
func (ps *PartialSpecialization) Args() []*TemplateArg   { return ps.args }
func (ps *PartialSpecialization) Params() []*TemplateParam { return ps.params }

// AddParam appends a free parameter to this partial specialization.
func (ps *PartialSpecialization) AddParam(name string, depth int) *TemplateParam {
	p := newTypeTemplateParam(name, depth, len(ps.params))
	ps.params = append(ps.params, p)
	return p
}

// ThisType is the injected self-referential type inside a template's
// body: it compares equal to itself (identity equality,
// like every other entity) and stands for "the template itself" when
// referenced from within its own definition.
type ThisType struct {
	typeBase
	template *Template
}

func (tt *ThisType) Template() *Template { return tt.template }
