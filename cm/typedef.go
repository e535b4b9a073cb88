package cm

// Typedef is a type alias: `typedef T name;` or `using name = T;`. It is
// itself a Type (it can be used anywhere a type is expected) whose
// identity is distinct from its aliased type — two typedefs aliasing
// the same underlying type are not the same type; nominal typedefs are
// never structurally deduplicated.
type Typedef struct {
	typeBase
	ownerCtx *Context
	name     string
	aliased  TypeUse
}

func (t *Typedef) Name() string     { return t.name }
func (t *Typedef) setName(s string) { t.name = s }
func (t *Typedef) ctx() *Context    { return t.ownerCtx }

// Aliased returns the type this typedef names.
func (t *Typedef) Aliased() QualifiedType { return t.aliased.Get() }

// SetAliased changes the aliased type, e.g. once a forward reference
// resolves.
func (t *Typedef) SetAliased(q QualifiedType) { t.aliased.Set(q) }

func newTypedef(owner *Context, name string, aliased QualifiedType) *Typedef {
	t := &Typedef{typeBase: typeBase{newBase(KindTypedef)}, ownerCtx: owner, name: name}
	t.aliased = NewTypeUse(t, aliased, UseTypedefAliased)
	return t
}
