package cm

import (
	"fmt"
	"strings"
)

// Composite types are structural: two composites with equal keys are
// the same instance, interned by CodeModel.GetOrCreate*. Each composite
// embeds typeBase and a TypeUse per referenced component, so destroying
// one correctly releases its uses of its components.

// PointerType is `T *`.
type PointerType struct {
	typeBase
	pointee TypeUse
}

func (t *PointerType) Pointee() QualifiedType { return t.pointee.Get() }

func newPointerType(pointee QualifiedType) *PointerType {
	t := &PointerType{typeBase: typeBase{newBase(KindPointerType)}}
	t.pointee = NewTypeUse(t, pointee, UsePointee)
	return t
}

func (t *PointerType) release() { t.pointee.release() }

// LValueReferenceType is `T &`.
type LValueReferenceType struct {
	typeBase
	pointee TypeUse
}

func (t *LValueReferenceType) Pointee() QualifiedType { return t.pointee.Get() }

func newLValueReferenceType(pointee QualifiedType) *LValueReferenceType {
	t := &LValueReferenceType{typeBase: typeBase{newBase(KindLValueRefType)}}
	t.pointee = NewTypeUse(t, pointee, UsePointee)
	return t
}

func (t *LValueReferenceType) release() { t.pointee.release() }

// RValueReferenceType is `T &&`.
type RValueReferenceType struct {
	typeBase
	pointee TypeUse
}

func (t *RValueReferenceType) Pointee() QualifiedType { return t.pointee.Get() }

func newRValueReferenceType(pointee QualifiedType) *RValueReferenceType {
	t := &RValueReferenceType{typeBase: typeBase{newBase(KindRValueRefType)}}
	t.pointee = NewTypeUse(t, pointee, UsePointee)
	return t
}

func (t *RValueReferenceType) release() { t.pointee.release() }

// IsReferenceType reports whether t is an lvalue or rvalue reference,
// used by the reference-to-reference and pointer-to-reference checks.
func IsReferenceType(t Type) bool {
	switch t.(type) {
	case *LValueReferenceType, *RValueReferenceType:
		return true
	default:
		return false
	}
}

// ArrayType is `T[N]`: a fixed-size array of element type Elem. The
// element is a plain Type, not qualified — the array key is (element
// type, size).
type ArrayType struct {
	typeBase
	elem TypeUse
	Size uint64
}

func (t *ArrayType) Elem() Type { return t.elem.Get().Type }

func newArrayType(elem Type, size uint64) *ArrayType {
	t := &ArrayType{typeBase: typeBase{newBase(KindArrayType)}, Size: size}
	t.elem = NewTypeUse(t, Unqualified(elem), UseArrayElement)
	return t
}

func (t *ArrayType) release() { t.elem.release() }

// VectorType is a fixed-lane SIMD vector of a builtin element type.
type VectorType struct {
	typeBase
	elem  TypeUse
	Lanes uint64
}

func (t *VectorType) Elem() *BuiltinType { return t.elem.Get().Type.(*BuiltinType) }

func newVectorType(elem *BuiltinType, lanes uint64) *VectorType {
	t := &VectorType{typeBase: typeBase{newBase(KindVectorType)}, Lanes: lanes}
	t.elem = NewTypeUse(t, Unqualified(elem), UseVectorElement)
	return t
}

func (t *VectorType) release() { t.elem.release() }

// FunctionType is a function's signature: a qualified return type and
// an ordered list of qualified parameter types. Two function types with
// pairwise-equal qualified return/params are the same instance.
type FunctionType struct {
	typeBase
	ret    TypeUse
	params []TypeUse
}

func (t *FunctionType) ReturnType() QualifiedType { return t.ret.Get() }

func (t *FunctionType) Params() []QualifiedType {
	out := make([]QualifiedType, len(t.params))
	for i := range t.params {
		out[i] = t.params[i].Get()
	}
	return out
}

func newFunctionType(ret QualifiedType, params []QualifiedType) *FunctionType {
	t := &FunctionType{typeBase: typeBase{newBase(KindFunctionType)}}
	t.ret = NewTypeUse(t, ret, UseReturnType)
	t.params = make([]TypeUse, len(params))
	for i, p := range params {
		t.params[i] = NewTypeUse(t, p, UseParam)
	}
	return t
}

func (t *FunctionType) release() {
	t.ret.release()
	for i := range t.params {
		t.params[i].release()
	}
}

// MemberPointerType is `T Owner::*`: a pointer-to-member of Owner with
// qualified member type Member.
type MemberPointerType struct {
	typeBase
	owner  TypeUse
	member TypeUse
}

func (t *MemberPointerType) Owner() Type           { return t.owner.Get().Type }
func (t *MemberPointerType) Member() QualifiedType { return t.member.Get() }

func newMemberPointerType(owner Type, member QualifiedType) *MemberPointerType {
	t := &MemberPointerType{typeBase: typeBase{newBase(KindMemberPointerType)}}
	t.owner = NewTypeUse(t, Unqualified(owner), UseMemberPointerOwner)
	t.member = NewTypeUse(t, member, UseMemberPointerMember)
	return t
}

func (t *MemberPointerType) release() {
	t.owner.release()
	t.member.release()
}

// --- interning keys -------------------------------------------------

type arrayKey struct {
	elem Type
	size uint64
}

type vectorKey struct {
	elem  *BuiltinType
	lanes uint64
}

type memberPtrKey struct {
	owner  Type
	member QualifiedType
}

// encodeQualType produces a comparable, canonical token for a single
// qualified type, used to build string keys for composites (function
// types) and template substitutions whose natural key would otherwise
// need a variable-length, non-comparable slice.
func encodeQualType(q QualifiedType) string {
	var b strings.Builder
	if q.Type == nil {
		b.WriteString("<null>")
	} else {
		fmt.Fprintf(&b, "%s:%s", q.Type.Kind(), q.Type.ID())
	}
	if q.Const {
		b.WriteByte('C')
	}
	if q.Volatile {
		b.WriteByte('V')
	}
	return b.String()
}

func encodeQualTypeSeq(ret QualifiedType, params []QualifiedType) string {
	var b strings.Builder
	b.WriteString(encodeQualType(ret))
	for _, p := range params {
		b.WriteByte('|')
		b.WriteString(encodeQualType(p))
	}
	return b.String()
}
