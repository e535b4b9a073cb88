package cm

// Named is implemented by every entity that can be looked up by name
// within a Context. Unnamed entities (e.g. an abstract Param, an
// anonymous Record) are still valid Context children; they just never
// appear in a name lookup.
type Named interface {
	Entity
	Name() string
}

// Context holds an ordered list of child entities plus a name-indexed
// multimap for lookup. It carries no identity of its own — Namespace
// and Record each embed both a base (or typeBase) for entity identity
// and a Context for their child bookkeeping, and implement asContext()
// so shared code (cascading remove, rename) can reach it.
type Context struct {
	children []Entity
	byName   map[string][]Entity
}

// Children returns this context's direct children in declaration order.
func (c *Context) Children() []Entity {
	out := make([]Entity, len(c.children))
	copy(out, c.children)
	return out
}

// addChild appends e to the ordered child list and, if e is Named with
// a non-empty name, indexes it for lookup. Insertion order is always
// preserved regardless of name.
func (c *Context) addChild(e Entity) {
	c.children = append(c.children, e)
	if n, ok := e.(Named); ok && n.Name() != "" {
		if c.byName == nil {
			c.byName = make(map[string][]Entity)
		}
		c.byName[n.Name()] = append(c.byName[n.Name()], e)
	}
}

// FindNamed returns every direct child registered under name, in
// declaration order (find_named_entity — a multimap lookup since
// overloaded functions share a name).
func (c *Context) FindNamed(name string) []Entity {
	out := make([]Entity, len(c.byName[name]))
	copy(out, c.byName[name])
	return out
}

// RenameEntity changes a child's indexed name, keeping the byName index
// consistent. e must already be a child of c. Passing an empty newName
// removes e from the name index entirely (it remains a child).
func (c *Context) RenameEntity(e Named, newName string) {
	old := e.Name()
	if old != "" {
		c.removeFromNameIndex(old, e)
	}
	e.(interface{ setName(string) }).setName(newName)
	if newName != "" {
		if c.byName == nil {
			c.byName = make(map[string][]Entity)
		}
		c.byName[newName] = append(c.byName[newName], e)
	}
}

func (c *Context) removeFromNameIndex(name string, e Entity) {
	list := c.byName[name]
	for i, cand := range list {
		if cand == e {
			c.byName[name] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(c.byName[name]) == 0 {
		delete(c.byName, name)
	}
}

// removeEntity removes e from c's child list (and name index), cascading
// to e's own children first if e is itself a context holder. Requires
// e to have no incoming uses.
func (c *Context) removeEntity(e Entity) {
	if ctxHolder, ok := e.(interface{ asContext() *Context }); ok {
		sub := ctxHolder.asContext()
		// cascade: remove children back-to-front so each child's own
		// removeEntity precondition (no uses) is checked in turn.
		for i := len(sub.children) - 1; i >= 0; i-- {
			sub.removeEntity(sub.children[i])
		}
	}
	checkNoUses("remove_entity", e)
	for i, child := range c.children {
		if child == e {
			c.children = append(c.children[:i], c.children[i+1:]...)
			break
		}
	}
	if n, ok := e.(Named); ok && n.Name() != "" {
		c.removeFromNameIndex(n.Name(), e)
	}
}
