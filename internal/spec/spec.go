// Package spec loads the OpenAPI documents produced by smithy build and
// exposes them as ServiceSpecs: the schema set and the deterministic
// operation scan order the mapper and planner work from.
package spec

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ServiceSpec is one parsed OpenAPI document.
type ServiceSpec struct {
	// Service is the short lowercase service name derived from the
	// spec file name (e.g. "UserService.openapi.json" -> "user").
	Service string

	// Schemas maps schema name to its definition.
	Schemas map[string]*openapi3.SchemaRef

	// SchemaNames holds the schema names in sorted order so every walk
	// over the schema set is reproducible.
	SchemaNames []string

	// Operations holds the operations in scan order: paths sorted,
	// methods in a fixed order per path.
	Operations []Operation
}

// Operation identifies one service action.
type Operation struct {
	ID      string
	Service string
	Method  string
	Path    string
}

// Schema returns the named schema value, or nil when absent or
// unresolved.
func (s ServiceSpec) Schema(name string) *openapi3.Schema {
	if ref, ok := s.Schemas[name]; ok && ref != nil {
		return ref.Value
	}
	return nil
}

// NotFoundError reports that no spec output exists for a project. In
// multi-project runs it fails that project only.
type NotFoundError struct {
	Project string
	Folder  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no OpenAPI spec found for project %q (folder %q); run 'smithy build' first", e.Project, e.Folder)
}
