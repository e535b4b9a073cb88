package cm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/codemodel/cm"
)

func TestLayoutOf_PlainStruct(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("geo")
	point := ns.CreateRecord(cm.RecordStruct, "Point")
	_, err := point.AddField("x", cm.Unqualified(m.Int()), cm.AccessPublic, 0)
	require.NoError(t, err)
	_, err = point.AddField("y", cm.Unqualified(m.Int()), cm.AccessPublic, 0)
	require.NoError(t, err)

	layout, err := m.LayoutOf(point)
	require.NoError(t, err)
	require.Len(t, layout.Fields, 2)

	assert.Equal(t, uint64(0), layout.Fields[0].BitOffset)
	assert.Equal(t, uint64(32), layout.Fields[1].BitOffset)
	assert.Equal(t, uint64(8), layout.SizeBytes)
}

func TestLayoutOf_BitfieldsPackTight(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("flags")
	rec := ns.CreateRecord(cm.RecordStruct, "Flags")
	_, err := rec.AddField("a", cm.Unqualified(m.Bool()), cm.AccessPublic, 1)
	require.NoError(t, err)
	_, err = rec.AddField("b", cm.Unqualified(m.Bool()), cm.AccessPublic, 1)
	require.NoError(t, err)
	_, err = rec.AddField("c", cm.Unqualified(m.Int()), cm.AccessPublic, 6)
	require.NoError(t, err)

	layout, err := m.LayoutOf(rec)
	require.NoError(t, err)
	require.Len(t, layout.Fields, 3)

	assert.Equal(t, uint64(0), layout.Fields[0].BitOffset)
	assert.Equal(t, uint64(1), layout.Fields[1].BitOffset)
	assert.Equal(t, uint64(2), layout.Fields[2].BitOffset)
	assert.Equal(t, uint64(1), layout.SizeBytes)
}

func TestAddField_RejectsBitfieldOnNonIntegralBuiltin(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("flags")
	rec := ns.CreateRecord(cm.RecordStruct, "Flags")

	_, err := rec.AddField("frac", cm.Unqualified(m.Builtin(cm.BaseFloat, false)), cm.AccessPublic, 4)
	require.Error(t, err)
	assert.True(t, cm.IsErrorKind(err, cm.TypeConstraint))

	_, ok := rec.FindField("frac")
	assert.False(t, ok)
}

func TestLayoutOf_BaseThenFields(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("geo")

	base := ns.CreateRecord(cm.RecordStruct, "Base")
	_, err := base.AddField("b", cm.Unqualified(m.Int()), cm.AccessPublic, 0)
	require.NoError(t, err)

	derived := ns.CreateRecord(cm.RecordStruct, "Derived")
	_, err = derived.AddBase(base, cm.AccessPublic, false)
	require.NoError(t, err)
	_, err = derived.AddField("d", cm.Unqualified(m.Int()), cm.AccessPublic, 0)
	require.NoError(t, err)

	layout, err := m.LayoutOf(derived)
	require.NoError(t, err)
	require.Len(t, layout.Bases, 1)
	require.Len(t, layout.Fields, 1)

	assert.Equal(t, uint64(0), layout.Bases[0].BitOffset)
	assert.Equal(t, uint64(32), layout.Fields[0].BitOffset)
	assert.Equal(t, uint64(8), layout.SizeBytes)
}

func TestAddBase_RejectsDuplicateBase(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("geo")

	base := ns.CreateRecord(cm.RecordStruct, "Base")
	derived := ns.CreateRecord(cm.RecordStruct, "Derived")

	_, err := derived.AddBase(base, cm.AccessPublic, false)
	require.NoError(t, err)

	_, err = derived.AddBase(base, cm.AccessPublic, false)
	require.Error(t, err)
	assert.True(t, cm.IsErrorKind(err, cm.DuplicateInsertion))
	assert.Len(t, derived.Bases(), 1)
}

func TestLayoutOf_UnionSharesOffsetZero(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("variant")
	u := ns.CreateRecord(cm.RecordUnion, "U")
	_, err := u.AddField("i", cm.Unqualified(m.Int()), cm.AccessPublic, 0)
	require.NoError(t, err)
	_, err = u.AddField("c", cm.Unqualified(m.Char()), cm.AccessPublic, 0)
	require.NoError(t, err)

	layout, err := m.LayoutOf(u)
	require.NoError(t, err)
	require.Len(t, layout.Fields, 2)

	assert.Equal(t, uint64(0), layout.Fields[0].BitOffset)
	assert.Equal(t, uint64(0), layout.Fields[1].BitOffset)
	assert.Equal(t, uint64(4), layout.SizeBytes)
}

func TestLayoutOf_UnionWithBaseIsRejected(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("variant")
	base := ns.CreateRecord(cm.RecordStruct, "Base")
	u := ns.CreateRecord(cm.RecordUnion, "U")
	_, baseErr := u.AddBase(base, cm.AccessPublic, false)
	require.NoError(t, baseErr)

	_, err := m.LayoutOf(u)
	require.Error(t, err)
	assert.True(t, cm.IsErrorKind(err, cm.LayoutPrecondition))
}
