package mapper

import (
	"sort"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexagen/hexagen/internal/spec"
)

func objectSchema(props ...string) *openapi3.SchemaRef {
	s := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: openapi3.Schemas{},
	}
	for _, p := range props {
		s.Properties[p] = typed("string", "")
	}
	return &openapi3.SchemaRef{Value: s}
}

func serviceSpec(service string, schemas map[string]*openapi3.SchemaRef, ops ...spec.Operation) spec.ServiceSpec {
	s := spec.ServiceSpec{Service: service, Schemas: schemas, Operations: ops}
	for name := range schemas {
		s.SchemaNames = append(s.SchemaNames, name)
	}
	// Callers rely on sorted scan order.
	sort.Strings(s.SchemaNames)
	return s
}

func TestEntityFromSchemaName(t *testing.T) {
	tests := []struct {
		schema string
		want   string
	}{
		{"UserResponse", "User"},
		{"GetUserResponseContent", "User"},
		{"CreateUserResponseContent", "CreateUser"},
		{"LocationResponse", "Location"},
		{"Response", ""},
		{"GetResponseContent", ""},
		{"BadRequestError", ""},
		{"CreateUserRequestContent", ""},
	}
	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			assert.Equal(t, tt.want, entityFromSchemaName(tt.schema))
		})
	}
}

func TestInferEntities(t *testing.T) {
	specs := []spec.ServiceSpec{
		serviceSpec("user", map[string]*openapi3.SchemaRef{
			"UserResponse":             objectSchema("id", "username"),
			"CreateUserRequestContent": objectSchema("username"),
		}),
		serviceSpec("location", map[string]*openapi3.SchemaRef{
			"LocationResponse":       objectSchema("id", "name"),
			"GetUserResponseContent": objectSchema("id", "username"),
		}),
	}

	entities := InferEntities(specs)
	require.Len(t, entities, 2)
	assert.Equal(t, "User", entities[0].Name)
	assert.Equal(t, "user", entities[0].Service)
	assert.Equal(t, "Location", entities[1].Name)
	assert.Equal(t, "location", entities[1].Service)
}

func TestInferEntitiesSkipsPropertyless(t *testing.T) {
	specs := []spec.ServiceSpec{
		serviceSpec("user", map[string]*openapi3.SchemaRef{
			"UserResponse": {Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}},
		}),
	}
	assert.Empty(t, InferEntities(specs))
}

func TestInferEntitiesDeduplicates(t *testing.T) {
	specs := []spec.ServiceSpec{
		serviceSpec("catalog", map[string]*openapi3.SchemaRef{
			"LocationResponse": objectSchema("id"),
		}),
		serviceSpec("travel", map[string]*openapi3.SchemaRef{
			"LocationResponse": objectSchema("id", "name"),
		}),
	}
	entities := InferEntities(specs)
	require.Len(t, entities, 1)
	assert.Equal(t, "Location", entities[0].Name)
	assert.Equal(t, "catalog", entities[0].Service)
}

func TestIsDomainEntity(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"User", true},
		{"Location", true},
		{"SuperUser", true},
		{"CreateUser", false},
		{"GetCity", false},
		{"UpdateOrder", false},
		{"DeleteUser", false},
		{"ListUsers", false},
		{"ValidationError", false},
		{"UserContent", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDomainEntity(tt.name))
		})
	}
}

func TestFindEntitySchema(t *testing.T) {
	direct := objectSchema("id", "username")
	content := objectSchema("id")
	specs := []spec.ServiceSpec{
		serviceSpec("user", map[string]*openapi3.SchemaRef{
			"UserResponse": direct,
		}),
		serviceSpec("city", map[string]*openapi3.SchemaRef{
			"GetCityResponseContent": content,
		}),
	}

	schema, svc := FindEntitySchema(specs, "User")
	assert.Same(t, direct.Value, schema)
	assert.Equal(t, "user", svc)

	schema, svc = FindEntitySchema(specs, "City")
	assert.Same(t, content.Value, schema)
	assert.Equal(t, "city", svc)

	schema, svc = FindEntitySchema(specs, "Order")
	assert.Nil(t, schema)
	assert.Empty(t, svc)
}
