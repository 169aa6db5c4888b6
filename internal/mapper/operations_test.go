package mapper

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexagen/hexagen/internal/spec"
)

func op(id, service string) spec.Operation {
	return spec.Operation{ID: id, Service: service, Method: "POST", Path: "/" + id}
}

func TestGroupOperationsCRUDScenario(t *testing.T) {
	specs := []spec.ServiceSpec{
		serviceSpec("user", map[string]*openapi3.SchemaRef{
			"UserResponse": objectSchema("id", "username"),
		},
			op("CreateUser", "user"),
			op("GetUser", "user"),
			op("ListUsers", "user"),
			op("GetUsersByRegion", "user"),
		),
	}
	entities := InferEntities(specs)
	require.Len(t, entities, 1)

	groups, err := GroupOperations(specs, entities, nil)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	user := groups[0]
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, "user", user.Service)
	assert.True(t, user.CRUD.HasCreate)
	assert.True(t, user.CRUD.HasGet)
	assert.True(t, user.CRUD.HasList)
	assert.False(t, user.CRUD.HasUpdate)
	assert.False(t, user.CRUD.HasDelete)
	assert.True(t, user.CRUD.Any())
	assert.Len(t, user.CRUDOps, 3)

	require.Len(t, user.Complex, 1)
	assert.Equal(t, "GetUsersByRegion", user.Complex[0].OperationID)
	assert.Equal(t, "getUsersByRegion", user.Complex[0].MethodName)

	require.NotNil(t, user.SourceSchema)
	assert.Len(t, user.SourceSchema.Properties, 2)
}

func TestGroupOperationsLongestMatchWins(t *testing.T) {
	specs := []spec.ServiceSpec{
		serviceSpec("admin", map[string]*openapi3.SchemaRef{
			"UserResponse":      objectSchema("id"),
			"SuperUserResponse": objectSchema("id", "role"),
		},
			op("CreateUser", "admin"),
			op("CreateSuperUser", "admin"),
		),
	}
	entities := InferEntities(specs)

	groups, err := GroupOperations(specs, entities, nil)
	require.NoError(t, err)

	byName := map[string]EntitySpec{}
	for _, g := range groups {
		byName[g.Name] = g
	}

	require.Len(t, byName["User"].CRUDOps, 1)
	assert.Equal(t, "CreateUser", byName["User"].CRUDOps[0].ID)
	require.Len(t, byName["SuperUser"].CRUDOps, 1)
	assert.Equal(t, "CreateSuperUser", byName["SuperUser"].CRUDOps[0].ID)
}

func TestGroupOperationsRelatedKeywords(t *testing.T) {
	specs := []spec.ServiceSpec{
		serviceSpec("city", map[string]*openapi3.SchemaRef{
			"CityResponse": objectSchema("id", "name"),
		},
			op("GetCity", "city"),
			op("GetWeatherByZone", "city"),
			op("GetForecastByDate", "city"),
		),
	}
	entities := InferEntities(specs)

	related := func(entity string) []string {
		if entity == "City" {
			return []string{"Weather"}
		}
		return nil
	}
	groups, err := GroupOperations(specs, entities, related)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	city := groups[0]
	require.Len(t, city.Complex, 1)
	assert.Equal(t, "GetWeatherByZone", city.Complex[0].OperationID)
}

func TestGroupOperationsServiceFallback(t *testing.T) {
	// An entity with no CRUD operations and no resolvable response
	// schema keeps the lowercase entity name as its service and gets no
	// source schema.
	specs := []spec.ServiceSpec{
		serviceSpec("catalog", map[string]*openapi3.SchemaRef{}),
	}
	entities := []Entity{{Name: "Location", Schema: objectSchema("id").Value}}

	groups, err := GroupOperations(specs, entities, nil)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "location", groups[0].Service)
	assert.False(t, groups[0].CRUD.Any())
	assert.Nil(t, groups[0].SourceSchema)
}

func TestMatchesCRUD(t *testing.T) {
	tests := []struct {
		opID   string
		entity string
		want   bool
	}{
		{"CreateUser", "User", true},
		{"GetUser", "User", true},
		{"UpdateUser", "User", true},
		{"DeleteUser", "User", true},
		{"ListUsers", "User", true},
		{"ListUser", "User", false},
		{"GetUsersByRegion", "User", false},
		{"CreateUserProfile", "User", false},
	}
	for _, tt := range tests {
		t.Run(tt.opID, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesCRUD(tt.opID, tt.entity))
		})
	}
}

func TestIsComplexFor(t *testing.T) {
	tests := []struct {
		name     string
		opID     string
		entity   string
		keywords []string
		want     bool
	}{
		{"entity substring", "GetUsersByRegion", "User", nil, true},
		{"case insensitive", "GetusersByRegion", "User", nil, true},
		{"keyword match", "GetWeatherByZone", "City", []string{"Weather"}, true},
		{"no By", "GetUserRegion", "User", nil, false},
		{"not Get", "ListUsersByRegion", "User", nil, false},
		{"unrelated", "GetOrdersByDate", "User", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isComplexFor(tt.opID, tt.entity, tt.keywords))
		})
	}
}
