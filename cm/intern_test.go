package cm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/codemodel/cm"
)

func TestGetOrCreatePointer_Interns(t *testing.T) {
	m := cm.New()
	int1 := cm.Unqualified(m.Int())

	p1, err := m.GetOrCreatePointer(int1)
	require.NoError(t, err)
	p2, err := m.GetOrCreatePointer(int1)
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.Equal(t, int1, p1.Pointee())
}

func TestGetOrCreatePointer_DistinctQualifiersDistinctPointers(t *testing.T) {
	m := cm.New()
	plain := cm.Unqualified(m.Int())
	constInt := cm.Qualified(m.Int(), true, false)

	p1, err := m.GetOrCreatePointer(plain)
	require.NoError(t, err)
	p2, err := m.GetOrCreatePointer(constInt)
	require.NoError(t, err)

	assert.NotSame(t, p1, p2)
}

func TestGetOrCreatePointer_RejectsPointerToReference(t *testing.T) {
	m := cm.New()
	ref, err := m.GetOrCreateLValueReference(cm.Unqualified(m.Int()))
	require.NoError(t, err)

	_, err = m.GetOrCreatePointer(cm.Unqualified(ref))
	require.Error(t, err)
	assert.True(t, cm.IsErrorKind(err, cm.TypeConstraint))
}

func TestGetOrCreateLValueReference_RejectsReferenceToReference(t *testing.T) {
	m := cm.New()
	ref, err := m.GetOrCreateLValueReference(cm.Unqualified(m.Int()))
	require.NoError(t, err)

	_, err = m.GetOrCreateLValueReference(cm.Unqualified(ref))
	require.Error(t, err)
	assert.True(t, cm.IsErrorKind(err, cm.TypeConstraint))
}

func TestGetOrCreateArray_InternsOnElemAndSize(t *testing.T) {
	m := cm.New()

	a1, err := m.GetOrCreateArray(m.Int(), 10)
	require.NoError(t, err)
	a2, err := m.GetOrCreateArray(m.Int(), 10)
	require.NoError(t, err)
	a3, err := m.GetOrCreateArray(m.Int(), 11)
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, a3)
}

func TestGetOrCreateFunctionType_InternsOnReturnAndParams(t *testing.T) {
	m := cm.New()
	ret := cm.Unqualified(m.Int())
	params := []cm.QualifiedType{cm.Unqualified(m.Int()), cm.Unqualified(m.Bool())}

	f1, err := m.GetOrCreateFunctionType(ret, params)
	require.NoError(t, err)
	f2, err := m.GetOrCreateFunctionType(ret, params)
	require.NoError(t, err)
	f3, err := m.GetOrCreateFunctionType(ret, []cm.QualifiedType{cm.Unqualified(m.Bool())})
	require.NoError(t, err)

	assert.Same(t, f1, f2)
	assert.NotSame(t, f1, f3)
	assert.Len(t, f1.Params(), 2)
}

func TestReplaceType_CascadesThroughComposite(t *testing.T) {
	m := cm.New()
	shapes := m.Root().GetOrCreateNamespace("shapes")

	old := shapes.CreateRecord(cm.RecordStruct, "Old")
	replacement := shapes.CreateRecord(cm.RecordStruct, "New")

	ptr, err := m.GetOrCreatePointer(cm.Unqualified(old))
	require.NoError(t, err)

	holder := shapes.CreateRecord(cm.RecordStruct, "Holder")
	_, err = holder.AddField("link", cm.Unqualified(ptr), cm.AccessPublic, 0)
	require.NoError(t, err)

	m.ReplaceType(old, replacement)

	field, ok := holder.FindField("link")
	require.True(t, ok)
	resolvedPtr, ok := field.Type().Type.(*cm.PointerType)
	require.True(t, ok)
	assert.Same(t, replacement, resolvedPtr.Pointee().Type)

	m.RemoveUnusedCompositeTypes()
	assert.Empty(t, old.Uses())
}
