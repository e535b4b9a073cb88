package cm

import "github.com/google/uuid"

// ID is a stable identity for an entity, independent of its Go pointer.
// The design notes favor an arena-of-entities-plus-stable-ids
// over raw back-pointers for graphs with cycles; ID is that stable
// handle. Entities in this package are still held by ordinary Go
// pointers (contexts own their children directly), but every entity
// carries an ID so external indexes (the debug-info sink, component L)
// can key off identity rather than pointer lifetime.
type ID = uuid.UUID

func newID() ID { return uuid.New() }

// Kind tags the dynamic variant of an Entity. Operations that would be
// dynamic casts in a C++-style class hierarchy become type
// switches/assertions on the concrete Go type; Kind lets callers do a
// cheap check before that assertion and lets the debug/dump code decide
// what to skip.
type Kind int

const (
	KindNamespace Kind = iota
	KindRecord
	KindTypedef
	KindEnum
	KindEnumerator
	KindFunction
	KindMethod
	KindField
	KindStaticVar
	KindParam
	KindTemplate
	KindTemplateParam
	KindTemplateArg
	KindInstantiation
	KindSpecialization
	KindDependentInstantiation
	KindPartialSpecialization
	KindThisType
	KindBuiltinType
	KindPointerType
	KindLValueRefType
	KindRValueRefType
	KindArrayType
	KindVectorType
	KindFunctionType
	KindMemberPointerType
	KindPlaceholderType
	KindDecltypeType
	KindDependentNameType
)

func (k Kind) String() string {
	names := [...]string{
		"Namespace", "Record", "Typedef", "Enum", "Enumerator",
		"Function", "Method", "Field", "StaticVar", "Param",
		"Template", "TemplateParam", "TemplateArg", "Instantiation", "Specialization",
		"DependentInstantiation", "PartialSpecialization", "ThisType",
		"BuiltinType", "PointerType", "LValueRefType", "RValueRefType",
		"ArrayType", "VectorType", "FunctionType", "MemberPointerType",
		"PlaceholderType", "DecltypeType", "DependentNameType",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// UseKind classifies the relationship a Use represents — not the kind
// of the referenced entity (which is always the target's own Kind) but
// what role the holder plays, so that e.g. UsesOfKind(e, UseBase)
// answers "which record types use me as a base".
type UseKind int

const (
	UseGeneric UseKind = iota
	UseField
	UseStaticVar
	UseParam
	UseReturnType
	UseBase
	UseTemplateArg
	UsePointee
	UseArrayElement
	UseVectorElement
	UseMemberPointerOwner
	UseMemberPointerMember
	UseTypedefAliased
	UseEnumUnderlying
	UseSubstitutionArg
	UseDecltypeOperand
)

// Entity is the common base for every node in the code model graph:
// every entity tracks the set of incoming uses that reference it, and
// must not be destroyed while that set is non-empty.
type Entity interface {
	ID() ID
	Kind() Kind
	IsBuiltin() bool

	// Uses returns the current incoming uses of this entity, in
	// unspecified order (a multiset keyed by use identity).
	Uses() []*Use

	addUse(u *Use)
	removeUse(u *Use)
	hasUses() bool
}

// Use is a non-owning, tracked reference from a holder to a target
// entity. The holder keeps the *Use around so it can rebind or release
// it later; the target keeps the same *Use in its incoming-use set.
// Holder is the entity that contains this use (e.g. the Field whose
// type this is, or the PointerType whose pointee this is) — it lets
// replace_type recover which concrete setter to call to actually swap
// the stored reference, not just the use-graph bookkeeping.
type Use struct {
	target Entity
	kind   UseKind
	holder Entity
}

// Target returns the entity this use currently points at, or nil.
func (u *Use) Target() Entity { return u.target }

// Kind returns the relationship this use represents.
func (u *Use) Kind() UseKind { return u.kind }

// Holder returns the entity that owns this use.
func (u *Use) Holder() Entity { return u.holder }

// newUse registers a new use of target tagged with kind, owned by
// holder. target may be nil, in which case the use starts out unbound.
func newUse(holder Entity, target Entity, kind UseKind) *Use {
	u := &Use{kind: kind, holder: holder}
	u.rebind(target)
	return u
}

// rebind releases the use's current target (if any) and registers it
// against the new target (if non-nil): adds on construction/assignment,
// deregisters on destruction/reassignment.
func (u *Use) rebind(target Entity) {
	if u.target != nil {
		u.target.removeUse(u)
	}
	u.target = target
	if target != nil {
		target.addUse(u)
	}
}

// release unregisters u from its current target, leaving u unbound.
// Safe to call on an already-unbound use.
func (u *Use) release() {
	if u.target != nil {
		u.target.removeUse(u)
		u.target = nil
	}
}

// base implements the Entity contract; every concrete node embeds it.
// Every entity, not just fields, can carry a SourceLocation: a front end
// parsing real source text has a position for any declaration it
// creates, not only data members.
type base struct {
	id      ID
	kind    Kind
	builtin bool
	uses    map[*Use]struct{}
	loc     SourceLocation
}

func newBase(k Kind) base {
	return base{id: newID(), kind: k}
}

func (b *base) ID() ID         { return b.id }
func (b *base) Kind() Kind     { return b.kind }
func (b *base) IsBuiltin() bool { return b.builtin }

// Location returns the source position recorded for this entity, or the
// zero SourceLocation if none was given.
func (b *base) Location() SourceLocation { return b.loc }

// SetLocation records where this entity was declared.
func (b *base) SetLocation(loc SourceLocation) { b.loc = loc }

func (b *base) addUse(u *Use) {
	if b.uses == nil {
		b.uses = make(map[*Use]struct{})
	}
	b.uses[u] = struct{}{}
}

func (b *base) removeUse(u *Use) {
	if _, ok := b.uses[u]; !ok {
		panic(newError(UseInvariant, "remove_use", "use not present on entity"))
	}
	delete(b.uses, u)
}

func (b *base) hasUses() bool { return len(b.uses) > 0 }

func (b *base) Uses() []*Use {
	out := make([]*Use, 0, len(b.uses))
	for u := range b.uses {
		out = append(out, u)
	}
	return out
}

// UsesOfKind filters e's incoming uses down to those tagged with kind,
// e.g. all uses of entity X that reference it as a pointee vs. a base.
func UsesOfKind(e Entity, kind UseKind) []*Use {
	var out []*Use
	for _, u := range e.Uses() {
		if u.kind == kind {
			out = append(out, u)
		}
	}
	return out
}

// checkNoUses panics with a UseInvariant error if e still has live
// incoming uses; called before an entity is actually removed.
func checkNoUses(op string, e Entity) {
	if e.hasUses() {
		panic(newError(UseInvariant, op, "entity has live uses"))
	}
}
