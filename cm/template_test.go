package cm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/codemodel/cm"
)

func TestFindOrCreateSubstitution_SameArgsReturnsSameInstance(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("containers")
	box := ns.CreateTemplate("Box")
	box.AddTypeParam("T", 0)

	intArg := cm.NewTypeArg(cm.Unqualified(m.Int()))
	s1, err := box.FindOrCreateSubstitution(cm.SubstInstantiation, "Box", []*cm.TemplateArg{intArg})
	require.NoError(t, err)

	intArg2 := cm.NewTypeArg(cm.Unqualified(m.Int()))
	s2, err := box.FindOrCreateSubstitution(cm.SubstInstantiation, "Box", []*cm.TemplateArg{intArg2})
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, cm.KindInstantiation, s1.Kind())
}

func TestFindOrCreateSubstitution_DifferentArgsDifferentInstance(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("containers")
	box := ns.CreateTemplate("Box")
	box.AddTypeParam("T", 0)

	intSub, err := box.FindOrCreateSubstitution(cm.SubstInstantiation, "Box",
		[]*cm.TemplateArg{cm.NewTypeArg(cm.Unqualified(m.Int()))})
	require.NoError(t, err)

	boolSub, err := box.FindOrCreateSubstitution(cm.SubstInstantiation, "Box",
		[]*cm.TemplateArg{cm.NewTypeArg(cm.Unqualified(m.Bool()))})
	require.NoError(t, err)

	assert.NotSame(t, intSub, boolSub)
	assert.Len(t, box.Instantiations(), 2)
}

func TestFindOrCreateSubstitution_ConflictingKindIsRejected(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("containers")
	box := ns.CreateTemplate("Box")
	box.AddTypeParam("T", 0)

	args := []*cm.TemplateArg{cm.NewTypeArg(cm.Unqualified(m.Int()))}
	_, err := box.FindOrCreateSubstitution(cm.SubstInstantiation, "Box", args)
	require.NoError(t, err)

	_, err = box.FindOrCreateSubstitution(cm.SubstSpecialization, "Box", args)
	require.Error(t, err)
	assert.True(t, cm.IsErrorKind(err, cm.DuplicateInsertion))
}

func TestSubstitutionFieldsAreDeclaredOnTheInstantiation(t *testing.T) {
	m := cm.New()
	ns := m.Root().GetOrCreateNamespace("containers")
	box := ns.CreateTemplate("Box")
	box.AddTypeParam("T", 0)

	intArg := cm.Unqualified(m.Int())
	sub, err := box.FindOrCreateSubstitution(cm.SubstInstantiation, "Box", []*cm.TemplateArg{cm.NewTypeArg(intArg)})
	require.NoError(t, err)

	_, err = sub.AddField("value", intArg, cm.AccessPublic, 0)
	require.NoError(t, err)

	field, ok := sub.FindField("value")
	require.True(t, ok)
	assert.Equal(t, intArg, field.Type())
}
