package mapper

import (
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typed(typ, format string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{typ}, Format: format}}
}

func TestMapPropertyTypeTable(t *testing.T) {
	tests := []struct {
		name     string
		prop     string
		ref      *openapi3.SchemaRef
		wantKind Kind
		wantJava string
		wantImps []string
	}{
		{"string date-time", "lastLogin", typed("string", "date-time"), KindDateTime, "OffsetDateTime", []string{"java.time.OffsetDateTime"}},
		{"string plain", "username", typed("string", ""), KindString, "String", nil},
		{"string other format", "id", typed("string", "uuid"), KindString, "String", nil},
		{"double timestamp createdAt", "createdAt", typed("number", "double"), KindString, "String", nil},
		{"double timestamp updatedAt", "updatedAt", typed("number", "double"), KindString, "String", nil},
		{"double plain", "latitude", typed("number", "double"), KindDouble, "Double", nil},
		{"number no format", "price", typed("number", ""), KindDecimal, "BigDecimal", []string{"java.math.BigDecimal"}},
		{"number float", "ratio", typed("number", "float"), KindDecimal, "BigDecimal", []string{"java.math.BigDecimal"}},
		{"integer", "count", typed("integer", "int32"), KindInteger, "Integer", nil},
		{"boolean", "active", typed("boolean", ""), KindBoolean, "Boolean", nil},
		{"untyped", "anything", &openapi3.SchemaRef{Value: &openapi3.Schema{}}, KindString, "String", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := MapProperty("S", tt.prop, tt.ref, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, d.Kind)
			assert.Equal(t, tt.wantJava, d.JavaType())
			assert.Equal(t, tt.wantImps, d.Imports)
		})
	}
}

func TestMapPropertyArrays(t *testing.T) {
	withRef := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  &openapi3.Types{"array"},
		Items: &openapi3.SchemaRef{Ref: "#/components/schemas/UserResponse", Value: &openapi3.Schema{}},
	}}
	d, err := MapProperty("S", "users", withRef, nil)
	require.NoError(t, err)
	assert.Equal(t, KindList, d.Kind)
	assert.Equal(t, "List<UserResponse>", d.JavaType())
	assert.Equal(t, []string{"java.util.List"}, d.Imports)

	plain := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  &openapi3.Types{"array"},
		Items: &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
	}}
	d, err = MapProperty("S", "tags", plain, nil)
	require.NoError(t, err)
	assert.Equal(t, "List<String>", d.JavaType())
}

func TestMapPropertyIdempotent(t *testing.T) {
	ref := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:      &openapi3.Types{"string"},
		MinLength: 2,
		MaxLength: ptr(uint64(50)),
		Pattern:   "^[a-z]+$",
	}}
	first, err := MapProperty("S", "slug", ref, []string{"slug"})
	require.NoError(t, err)
	second, err := MapProperty("S", "slug", ref, []string{"slug"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMapPropertyValidationOrder(t *testing.T) {
	ref := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:    &openapi3.Types{"string"},
		Pattern: "^[^@]+@[^@]+$",
	}}
	d, err := MapProperty("S", "email", ref, []string{"email"})
	require.NoError(t, err)
	require.Len(t, d.Rules, 2)
	assert.Equal(t, RuleNotNull, d.Rules[0].Kind)
	assert.Equal(t, RulePattern, d.Rules[1].Kind)
	assert.True(t, d.HasValidation())
}

func TestMapPropertySizeBounds(t *testing.T) {
	both := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{"string"}, MinLength: 3, MaxLength: ptr(uint64(30)),
	}}
	d, err := MapProperty("S", "username", both, nil)
	require.NoError(t, err)
	require.Len(t, d.Rules, 1)
	assert.Equal(t, "@Size(min = 3, max = 30)", d.Rules[0].Annotation())

	minOnly := &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, MinLength: 8}}
	d, err = MapProperty("S", "password", minOnly, nil)
	require.NoError(t, err)
	assert.Equal(t, "@Size(min = 8)", d.Rules[0].Annotation())

	maxOnly := &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, MaxLength: ptr(uint64(255))}}
	d, err = MapProperty("S", "bio", maxOnly, nil)
	require.NoError(t, err)
	assert.Equal(t, "@Size(max = 255)", d.Rules[0].Annotation())
}

func TestPatternRoundTrip(t *testing.T) {
	// The regex must survive into the Java literal without
	// double-escape corruption: one backslash in the schema becomes
	// exactly two characters in the literal source.
	ref := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:    &openapi3.Types{"string"},
		Pattern: `^[^@]+@[^@]+\.[^@]+$`,
	}}
	d, err := MapProperty("S", "email", ref, nil)
	require.NoError(t, err)
	require.Len(t, d.Rules, 1)
	assert.Equal(t, `@Pattern(regexp = "^[^@]+@[^@]+\\.[^@]+$")`, d.Rules[0].Annotation())
}

func TestMapPropertyErrors(t *testing.T) {
	var mapErr *MappingError

	_, err := MapProperty("UserResponse", "id", nil, nil)
	require.True(t, errors.As(err, &mapErr))
	assert.Equal(t, "UserResponse", mapErr.Schema)
	assert.Equal(t, "id", mapErr.Property)

	_, err = MapProperty("UserResponse", "nested", typed("object", ""), nil)
	require.True(t, errors.As(err, &mapErr))
}

func TestMapSchemaScenario(t *testing.T) {
	schema := &openapi3.Schema{
		Type:     &openapi3.Types{"object"},
		Required: []string{"id"},
		Properties: openapi3.Schemas{
			"id":        typed("string", ""),
			"createdAt": typed("number", "double"),
		},
	}
	props, imports, err := MapSchema("UserResponse", schema)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Empty(t, imports)

	// Sorted property order: createdAt, id.
	assert.Equal(t, "createdAt", props[0].Name)
	assert.Equal(t, KindString, props[0].Kind)
	assert.Empty(t, props[0].Rules, "timestamp field is not required")

	assert.Equal(t, "id", props[1].Name)
	assert.Equal(t, KindString, props[1].Kind)
	require.Len(t, props[1].Rules, 1)
	assert.Equal(t, RuleNotNull, props[1].Rules[0].Kind)
}

func ptr[T any](v T) *T { return &v }
