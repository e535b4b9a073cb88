package cm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/codemodel/cm"
)

func TestBuilder_ResolvesForwardReference(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("list")
	b := cm.NewBuilder(m)

	node := ns.CreateRecord(cm.RecordStruct, "Node")
	placeholder := b.TypeRef("Node")
	nextPtr, err := m.GetOrCreatePointer(cm.Unqualified(placeholder))
	require.NoError(t, err)
	_, err = node.AddField("next", cm.Unqualified(nextPtr), cm.AccessPublic, 0)
	require.NoError(t, err)
	_, err = node.AddField("value", cm.Unqualified(m.Int()), cm.AccessPublic, 0)
	require.NoError(t, err)

	b.SetType("Node", node)
	require.NoError(t, b.Build())

	field, ok := node.FindField("next")
	require.True(t, ok)
	resolvedPtr, ok := field.Type().Type.(*cm.PointerType)
	require.True(t, ok)
	assert.Same(t, node, resolvedPtr.Pointee().Type)

	layout, err := m.LayoutOf(node)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), layout.SizeBytes)
}

func TestBuilder_UnresolvedReferenceFailsBuild(t *testing.T) {
	m := cm.New()
	b := cm.NewBuilder(m)
	b.TypeRef("Missing")

	err := b.Build()
	require.Error(t, err)
	assert.True(t, cm.IsErrorKind(err, cm.LookupMiss))
}

func TestNamespaceBuilder_RecordIsIdempotentByName(t *testing.T) {
	m := cm.New()
	b := cm.NewBuilder(m)

	first := b.Namespace(m.Root()).Namespace("geo").Record(cm.RecordStruct, "Point")
	first.Field("x", cm.Unqualified(m.Int()), cm.AccessPublic, 0)
	first.End().End()

	second := b.Namespace(m.Root()).Namespace("geo").Record(cm.RecordStruct, "Point")
	assert.False(t, second.IsNew())
	assert.Same(t, first.Record(), second.Record())

	require.NoError(t, b.Build())
	fields := first.Record().Fields()
	assert.Len(t, fields, 1)
}
