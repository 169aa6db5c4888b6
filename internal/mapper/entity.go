package mapper

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/hexagen/hexagen/internal/spec"
)

// Entity is a domain concept inferred from response schema naming.
type Entity struct {
	Name    string
	Service string
	// Schema is the response schema the entity was derived from.
	Schema *openapi3.Schema
}

// InferEntities scans the schema sets of all service specs and returns
// the inferred entities in insertion order (specs in load order, schema
// names sorted within each spec). A name contributes an entity when it
// ends in Response or ResponseContent, the suffix-stripped remainder
// (minus a leading Get) is non-empty, and the schema has properties.
// Duplicate names across specs collapse to the first occurrence.
func InferEntities(specs []spec.ServiceSpec) []Entity {
	seen := map[string]bool{}
	var entities []Entity

	for _, s := range specs {
		for _, schemaName := range s.SchemaNames {
			name := entityFromSchemaName(schemaName)
			if name == "" || seen[name] {
				continue
			}
			schema := s.Schema(schemaName)
			if schema == nil || len(schema.Properties) == 0 {
				continue
			}
			seen[name] = true
			entities = append(entities, Entity{Name: name, Service: s.Service, Schema: schema})
		}
	}
	return entities
}

// entityFromSchemaName strips the Response/ResponseContent suffix and a
// leading Get prefix. Schemas named exactly "Response" or
// "GetResponseContent" reduce to the empty string and yield no entity.
func entityFromSchemaName(name string) string {
	var base string
	switch {
	case strings.HasSuffix(name, "ResponseContent"):
		base = strings.TrimSuffix(name, "ResponseContent")
	case strings.HasSuffix(name, "Response"):
		base = strings.TrimSuffix(name, "Response")
	default:
		return ""
	}
	return strings.TrimPrefix(base, "Get")
}

// IsDomainEntity filters inference artifacts that are not standalone
// domain concepts: error shapes, nested content types and candidates
// produced by CRUD-verb-prefixed schema names.
func IsDomainEntity(name string) bool {
	if strings.Contains(name, "Error") || strings.Contains(name, "Content") {
		return false
	}
	for _, prefix := range []string{"Create", "Get", "Update", "Delete", "List"} {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// FindEntitySchema resolves the canonical response schema for an
// entity: {Entity}Response first, then Get{Entity}ResponseContent.
func FindEntitySchema(specs []spec.ServiceSpec, entity string) (*openapi3.Schema, string) {
	for _, candidate := range []string{entity + "Response", "Get" + entity + "ResponseContent"} {
		for _, s := range specs {
			if schema := s.Schema(candidate); schema != nil {
				return schema, s.Service
			}
		}
	}
	return nil, ""
}
