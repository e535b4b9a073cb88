package cm

// CodeModel is the root owner of the whole graph: the global namespace
// (the root context), the builtin-type singletons, and the
// composite-type intern maps — composite types are owned by the code
// model, not by any context. A CodeModel is meant to be driven from a
// single logical owner; see the package doc.
type CodeModel struct {
	root *Namespace

	builtins map[builtinKey]*BuiltinType

	pointers   map[QualifiedType]*PointerType
	lvalueRefs map[QualifiedType]*LValueReferenceType
	rvalueRefs map[QualifiedType]*RValueReferenceType
	arrays     map[arrayKey]*ArrayType
	vectors    map[vectorKey]*VectorType
	functions  map[string]*FunctionType
	memberPtrs map[memberPtrKey]*MemberPointerType

	debug *DebugInfo
}

// New creates an empty code model with a fresh global namespace.
func New() *CodeModel {
	m := &CodeModel{
		builtins:   make(map[builtinKey]*BuiltinType),
		pointers:   make(map[QualifiedType]*PointerType),
		lvalueRefs: make(map[QualifiedType]*LValueReferenceType),
		rvalueRefs: make(map[QualifiedType]*RValueReferenceType),
		arrays:     make(map[arrayKey]*ArrayType),
		vectors:    make(map[vectorKey]*VectorType),
		functions:  make(map[string]*FunctionType),
		memberPtrs: make(map[memberPtrKey]*MemberPointerType),
	}
	m.debug = newDebugInfo()
	m.root = newRootNamespace(m)
	return m
}

// Root returns the global namespace, the root of the context hierarchy.
func (m *CodeModel) Root() *Namespace { return m.root }

// DebugInfo returns the model's debug/object-info sink (component L).
func (m *CodeModel) DebugInfo() *DebugInfo { return m.debug }

// compositeTypes returns every interned composite type currently owned
// by the model, used by the dead-type sweep.
func (m *CodeModel) compositeTypes() []Type {
	out := make([]Type, 0, len(m.pointers)+len(m.lvalueRefs)+len(m.rvalueRefs)+
		len(m.arrays)+len(m.vectors)+len(m.functions)+len(m.memberPtrs))
	for _, t := range m.pointers {
		out = append(out, t)
	}
	for _, t := range m.lvalueRefs {
		out = append(out, t)
	}
	for _, t := range m.rvalueRefs {
		out = append(out, t)
	}
	for _, t := range m.arrays {
		out = append(out, t)
	}
	for _, t := range m.vectors {
		out = append(out, t)
	}
	for _, t := range m.functions {
		out = append(out, t)
	}
	for _, t := range m.memberPtrs {
		out = append(out, t)
	}
	return out
}
