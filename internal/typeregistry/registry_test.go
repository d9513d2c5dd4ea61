package typeregistry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveOrderIsStable(t *testing.T) {
	r := New()

	tests := []struct {
		name string
		id   TypeID
	}{
		{"void", Void},
		{"char", Char},
		{"bool", Bool},
		{"u8", U8},
		{"u64", U64},
		{"i8", I8},
		{"i64", I64},
		{"int", Int},
		{"pointer", Pointer},
		{"float", Float},
		{"double", Double},
		{"cstr", CString},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.id, r.GetTypeID(tt.name), "primitive %s should have its fixed ID", tt.name)
	}
}

func TestPrimitiveIDsNeverCollideWithDerived(t *testing.T) {
	r := New()
	ptr := r.GetPointerTo(Int)
	assert.Greater(t, int(ptr), int(CString)+MaxPlaceholderTypes-1)
}

func TestPointerInterning(t *testing.T) {
	r := New()
	a := r.GetPointerTo(Int)
	b := r.GetPointerTo(Int)
	assert.Equal(t, a, b, "two requests for pointer-to-int must return the same ID")

	c := r.GetPointerTo(Float)
	assert.NotEqual(t, a, c)
}

func TestArrayInterning(t *testing.T) {
	r := New()
	a := r.GetArrayOf(Int, 8)
	b := r.GetArrayOf(Int, 8)
	assert.Equal(t, a, b)

	c := r.GetArrayOf(Int, 9)
	assert.NotEqual(t, a, c, "capacity is part of the intern key")

	d := r.GetArrayOf(Float, 8)
	assert.NotEqual(t, a, d, "element type is part of the intern key")
}

func TestSpecializedInterning(t *testing.T) {
	r := New()
	template := r.GetOrRegister("List")

	a := r.GetSpecialized(template, []TypeID{Int})
	b := r.GetSpecialized(template, []TypeID{Int})
	assert.Equal(t, a, b)
	assert.True(t, r.SpecializedExists(template, []TypeID{Int}))

	c := r.GetSpecialized(template, []TypeID{Float})
	assert.NotEqual(t, a, c)
}

func TestRegisterUserTypeIsIdempotentOnDesignation(t *testing.T) {
	r := New()
	members := []Member{{Name: "x", TypeID: Int}, {Name: "y", TypeID: Int}}

	a := r.RegisterUserType("Point", members)
	b := r.RegisterUserType("Point", members)
	assert.Equal(t, a, b, "re-registering the same designation must reuse the existing ID")

	rec := r.GetType(a)
	require.NotNil(t, rec)
	assert.True(t, rec.IsUserComposite())
	assert.Equal(t, 0, rec.MemberIndex("x"))
	assert.Equal(t, 1, rec.MemberIndex("y"))
	assert.Equal(t, -1, rec.MemberIndex("z"))
}

func TestForwardReferenceResolvesToSameIDAsLaterRegistration(t *testing.T) {
	r := New()

	forward := r.GetOrRegister("Node")
	require.NotEqual(t, InvalidTypeID, forward)

	registered := r.RegisterUserType("Node", []Member{{Name: "value", TypeID: Int}})
	assert.Equal(t, forward, registered, "a forward reference and its later declaration must share an ID")

	rec := r.GetType(registered)
	require.NotNil(t, rec)
	assert.True(t, rec.IsUserComposite())
}

func TestGetOrRegisterReturnsSameIDForKnownPrimitive(t *testing.T) {
	r := New()
	assert.Equal(t, Int, r.GetOrRegister("int"))
}

func TestIntegerAndFloatKindPredicates(t *testing.T) {
	r := New()
	assert.True(t, r.IsIntegerKind(Int))
	assert.True(t, r.IsIntegerKind(U8))
	assert.False(t, r.IsIntegerKind(Float))

	assert.True(t, r.IsFloatingPoint(Float))
	assert.True(t, r.IsFloatingPoint(Double))
	assert.False(t, r.IsFloatingPoint(Int))
}

// TestUserCompositeRecordShape compares the full Type record produced
// by RegisterUserType against an expected literal with cmp.Diff, so a
// stray field (wrong Capability, a Member out of order, a leaked
// Default) shows up as a precise diff instead of a string of separate
// field assertions.
func TestUserCompositeRecordShape(t *testing.T) {
	r := New()
	id := r.RegisterUserType("Point", []Member{
		{Name: "x", TypeID: Int},
		{Name: "y", TypeID: Int, Default: 0},
	})

	got := r.GetType(id)
	require.NotNil(t, got)

	want := &Type{
		Designation: "Point",
		ID:          id,
		Capability:  CapUserComposite,
		Members: []Member{
			{Name: "x", TypeID: Int},
			{Name: "y", TypeID: Int, Default: 0},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("user composite record mismatch (-want +got):\n%s", diff)
	}
}

// TestSpecializedRecordShape does the same for a templated
// instantiation's Parameters slice, where cmp.Diff's slice-ordering
// sensitivity catches a swapped type argument that == on the struct
// could not even attempt (Type is not comparable: it embeds a slice).
func TestSpecializedRecordShape(t *testing.T) {
	r := New()
	template := r.GetOrRegister("Pair")
	id := r.GetSpecialized(template, []TypeID{Int, Float})

	got := r.GetType(id)
	require.NotNil(t, got)

	want := &Type{
		Designation: "__placeholder_0<12,14>",
		ID:          id,
		Capability:  CapTemplated,
		TemplateID:  template,
		Parameters:  []TypeID{Int, Float},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("specialized record mismatch (-want +got):\n%s", diff)
	}
}
