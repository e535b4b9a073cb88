package cm

// GetOrCreatePointer returns the canonical pointer type for the given
// pointee, creating it on first use. Rejects
// pointer-to-reference.
func (m *CodeModel) GetOrCreatePointer(pointee QualifiedType) (*PointerType, error) {
	if pointee.Type == nil {
		return nil, newError(TypeConstraint, "get_or_create_pointer", "pointee type is nil")
	}
	if IsReferenceType(pointee.Type) {
		return nil, newError(TypeConstraint, "get_or_create_pointer", "pointer to reference is not valid")
	}
	if t, ok := m.pointers[pointee]; ok {
		return t, nil
	}
	t := newPointerType(pointee)
	m.pointers[pointee] = t
	return t, nil
}

// GetOrCreateLValueReference returns the canonical lvalue-reference
// type for pointee. Rejects reference-to-reference.
func (m *CodeModel) GetOrCreateLValueReference(pointee QualifiedType) (*LValueReferenceType, error) {
	if pointee.Type == nil {
		return nil, newError(TypeConstraint, "get_or_create_lvalue_ref", "pointee type is nil")
	}
	if IsReferenceType(pointee.Type) {
		return nil, newError(TypeConstraint, "get_or_create_lvalue_ref", "reference to reference is not valid")
	}
	if t, ok := m.lvalueRefs[pointee]; ok {
		return t, nil
	}
	t := newLValueReferenceType(pointee)
	m.lvalueRefs[pointee] = t
	return t, nil
}

// GetOrCreateRValueReference returns the canonical rvalue-reference
// type for pointee. Rejects reference-to-reference.
func (m *CodeModel) GetOrCreateRValueReference(pointee QualifiedType) (*RValueReferenceType, error) {
	if pointee.Type == nil {
		return nil, newError(TypeConstraint, "get_or_create_rvalue_ref", "pointee type is nil")
	}
	if IsReferenceType(pointee.Type) {
		return nil, newError(TypeConstraint, "get_or_create_rvalue_ref", "reference to reference is not valid")
	}
	if t, ok := m.rvalueRefs[pointee]; ok {
		return t, nil
	}
	t := newRValueReferenceType(pointee)
	m.rvalueRefs[pointee] = t
	return t, nil
}

// GetOrCreateArray returns the canonical array type of elem and size.
// Rejects a nil element type.
func (m *CodeModel) GetOrCreateArray(elem Type, size uint64) (*ArrayType, error) {
	if elem == nil {
		return nil, newError(TypeConstraint, "get_or_create_array", "array element type must not be null")
	}
	key := arrayKey{elem: elem, size: size}
	if t, ok := m.arrays[key]; ok {
		return t, nil
	}
	t := newArrayType(elem, size)
	m.arrays[key] = t
	return t, nil
}

// GetOrCreateVector returns the canonical vector type of a builtin
// element and lane count. Rejects a zero lane count (not finite).
func (m *CodeModel) GetOrCreateVector(elem *BuiltinType, lanes uint64) (*VectorType, error) {
	if elem == nil {
		return nil, newError(TypeConstraint, "get_or_create_vector", "vector element type must not be null")
	}
	if lanes == 0 {
		return nil, newError(TypeConstraint, "get_or_create_vector", "vector size must be finite and nonzero")
	}
	key := vectorKey{elem: elem, lanes: lanes}
	if t, ok := m.vectors[key]; ok {
		return t, nil
	}
	t := newVectorType(elem, lanes)
	m.vectors[key] = t
	return t, nil
}

// GetOrCreateFunctionType returns the canonical function type for a
// return type and ordered parameter list. Rejects a return type that
// is itself a function type (pointer/reference to function is fine).
func (m *CodeModel) GetOrCreateFunctionType(ret QualifiedType, params []QualifiedType) (*FunctionType, error) {
	if ret.Type == nil {
		return nil, newError(TypeConstraint, "get_or_create_function_type", "return type must not be null")
	}
	if _, isFunc := ret.Type.(*FunctionType); isFunc {
		return nil, newError(TypeConstraint, "get_or_create_function_type", "function cannot return a function type")
	}
	key := encodeQualTypeSeq(ret, params)
	if t, ok := m.functions[key]; ok {
		return t, nil
	}
	t := newFunctionType(ret, params)
	m.functions[key] = t
	return t, nil
}

// GetOrCreateMemberPointer returns the canonical member-pointer type
// for the given owner record type and qualified member type.
func (m *CodeModel) GetOrCreateMemberPointer(owner Type, member QualifiedType) (*MemberPointerType, error) {
	if owner == nil {
		return nil, newError(TypeConstraint, "get_or_create_member_pointer", "owner type must not be null")
	}
	if member.Type == nil {
		return nil, newError(TypeConstraint, "get_or_create_member_pointer", "member type must not be null")
	}
	key := memberPtrKey{owner: owner, member: member}
	if t, ok := m.memberPtrs[key]; ok {
		return t, nil
	}
	t := newMemberPointerType(owner, member)
	m.memberPtrs[key] = t
	return t, nil
}

// rebuildComposite returns the composite equivalent to old, with src
// substituted by dst wherever old referenced it. The result comes from
// the matching GetOrCreate*, so it is interned and an equal composite
// already in the model is reused. Returns nil if old is not a composite
// type this function recognizes.
func (m *CodeModel) rebuildComposite(old Type, src, dst Type) Type {
	switch t := old.(type) {
	case *PointerType:
		nt, _ := m.GetOrCreatePointer(t.Pointee().ReplacedType(src, dst))
		return nt
	case *LValueReferenceType:
		nt, _ := m.GetOrCreateLValueReference(t.Pointee().ReplacedType(src, dst))
		return nt
	case *RValueReferenceType:
		nt, _ := m.GetOrCreateRValueReference(t.Pointee().ReplacedType(src, dst))
		return nt
	case *ArrayType:
		elem := t.Elem()
		if elem == src {
			elem = dst
		}
		nt, _ := m.GetOrCreateArray(elem, t.Size)
		return nt
	case *VectorType:
		elem := t.Elem()
		var newElem *BuiltinType = elem
		if Type(elem) == src {
			newElem = dst.(*BuiltinType)
		}
		nt, _ := m.GetOrCreateVector(newElem, t.Lanes)
		return nt
	case *FunctionType:
		ret := t.ReturnType().ReplacedType(src, dst)
		params := t.Params()
		for i := range params {
			params[i] = params[i].ReplacedType(src, dst)
		}
		nt, _ := m.GetOrCreateFunctionType(ret, params)
		return nt
	case *MemberPointerType:
		owner := t.Owner()
		if owner == src {
			owner = dst
		}
		member := t.Member().ReplacedType(src, dst)
		nt, _ := m.GetOrCreateMemberPointer(owner, member)
		return nt
	default:
		return nil
	}
}

// ReplaceType rewrites every use of src to instead reference dst.
// Composite uses are handled by rebuilding the equivalent composite and
// recursing; every other kind of use is updated via its holder's own
// setter. After ReplaceType returns, the only uses of src left are
// those held by the superseded composites; RemoveUnusedCompositeTypes
// releases them when it sweeps those composites away.
func (m *CodeModel) ReplaceType(src, dst Type) {
	if src == dst {
		return
	}
	// snapshot: rebinding mutates src's use set as we go
	for _, u := range src.Uses() {
		holder := u.Holder()
		if ht, isType := holder.(Type); isType {
			if composite := m.rebuildComposite(ht, src, dst); composite != nil {
				// old composite (holder) now becomes unreachable once its own
				// uses are redirected to the freshly rebuilt composite.
				m.ReplaceType(ht, composite)
				continue
			}
		}
		switch h := holder.(type) {
		case *Field:
			h.typeUse.Set(h.typeUse.Get().ReplacedType(src, dst))
		case *StaticVar:
			h.typeUse.Set(h.typeUse.Get().ReplacedType(src, dst))
		case *Typedef:
			h.aliased.Set(h.aliased.Get().ReplacedType(src, dst))
		case *Enum:
			h.underlying.Set(h.underlying.Get().ReplacedType(src, dst))
		case *Param:
			h.typeUse.Set(h.typeUse.Get().ReplacedType(src, dst))
		case *Function:
			h.ret.Set(h.ret.Get().ReplacedType(src, dst))
		case *Method:
			h.ret.Set(h.ret.Get().ReplacedType(src, dst))
		case *Record:
			h.replaceBaseUse(u, src, dst)
		case *TemplateArg:
			h.typeUse.Set(h.typeUse.Get().ReplacedType(src, dst))
		case *TemplateParam:
			h.valueType.Set(h.valueType.Get().ReplacedType(src, dst))
		default:
			panic(newError(TypeConstraint, "replace_type", "use held by an entity replace_type does not know how to rewrite"))
		}
	}
}

// RemoveUnusedCompositeTypes repeatedly sweeps every composite map,
// removing entries whose use set is empty, until a fixed point.
func (m *CodeModel) RemoveUnusedCompositeTypes() {
	for {
		removedAny := false
		for _, t := range m.compositeTypes() {
			if !t.hasUses() {
				m.removeComposite(t)
				removedAny = true
			}
		}
		if !removedAny {
			return
		}
	}
}

func (m *CodeModel) removeComposite(t Type) {
	switch v := t.(type) {
	case *PointerType:
		delete(m.pointers, v.Pointee())
		v.release()
	case *LValueReferenceType:
		delete(m.lvalueRefs, v.Pointee())
		v.release()
	case *RValueReferenceType:
		delete(m.rvalueRefs, v.Pointee())
		v.release()
	case *ArrayType:
		delete(m.arrays, arrayKey{elem: v.Elem(), size: v.Size})
		v.release()
	case *VectorType:
		delete(m.vectors, vectorKey{elem: v.Elem(), lanes: v.Lanes})
		v.release()
	case *FunctionType:
		delete(m.functions, encodeQualTypeSeq(v.ReturnType(), v.Params()))
		v.release()
	case *MemberPointerType:
		delete(m.memberPtrs, memberPtrKey{owner: v.Owner(), member: v.Member()})
		v.release()
	}
}

// RemoveType removes t, dispatching to the correct composite map or to
// remove_entity on its owning context for declared/builtin types.
// Precondition: t must have an empty use set.
func (m *CodeModel) RemoveType(t Type) {
	checkNoUses("remove_type", t)
	switch v := t.(type) {
	case *PointerType, *LValueReferenceType, *RValueReferenceType,
		*ArrayType, *VectorType, *FunctionType, *MemberPointerType:
		m.removeComposite(t)
	case *Record:
		v.ctx().removeEntity(v)
	case *Typedef:
		v.ctx().removeEntity(v)
	case *Enum:
		v.ctx().removeEntity(v)
	default:
		panic(newError(TypeConstraint, "remove_type", "unsupported type for removal"))
	}
}
