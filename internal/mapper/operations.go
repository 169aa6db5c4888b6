package mapper

import (
	"strings"

	"github.com/hexagen/hexagen/internal/naming"
	"github.com/hexagen/hexagen/internal/spec"
)

// CRUDFlags records which of the conventional operations exist for an
// entity.
type CRUDFlags struct {
	HasCreate bool
	HasGet    bool
	HasUpdate bool
	HasDelete bool
	HasList   bool
}

// Any reports whether at least one CRUD operation was matched.
func (f CRUDFlags) Any() bool {
	return f.HasCreate || f.HasGet || f.HasUpdate || f.HasDelete || f.HasList
}

// OperationRef names a non-CRUD operation attributed to an entity.
type OperationRef struct {
	OperationID string
	Service     string
	MethodName  string
}

// EntitySpec is the per-entity grouping result the planner consumes.
type EntitySpec struct {
	Name         string
	Service      string
	SourceSchema *PropertySet
	CRUD         CRUDFlags
	// CRUDOps holds the matched CRUD operations in scan order.
	CRUDOps []spec.Operation
	// Complex holds the heuristically associated non-CRUD operations
	// in scan order.
	Complex []OperationRef
}

// PropertySet is an entity's mapped source schema.
type PropertySet struct {
	Properties []PropertyDescriptor
	Imports    []string
}

// GroupOperations attributes operations to entities. CRUD ids
// ({Create|Get|Update|Delete}{E}, List{E}s) match exactly one entity;
// when several entity names match the same id the longest name wins, so
// "CreateSuperUser" belongs to SuperUser even if User was inferred
// first. Remaining Get...By... operations are classified complex for an
// entity when the id contains the entity name (case-insensitive) or one
// of its configured related keywords.
func GroupOperations(specs []spec.ServiceSpec, entities []Entity, related func(entity string) []string) ([]EntitySpec, error) {
	if related == nil {
		related = func(string) []string { return nil }
	}

	var ops []spec.Operation
	for _, s := range specs {
		ops = append(ops, s.Operations...)
	}

	byName := make(map[string]*EntitySpec, len(entities))
	result := make([]EntitySpec, len(entities))
	for i, e := range entities {
		es := EntitySpec{Name: e.Name, Service: e.Service}

		// Only the canonical response schema produces a source schema;
		// entities without one get no domain or persistence artifacts.
		schema, svc := FindEntitySchema(specs, e.Name)
		if schema != nil {
			if svc != "" {
				es.Service = svc
			}
			props, imports, err := MapSchema(e.Name, schema)
			if err != nil {
				return nil, err
			}
			es.SourceSchema = &PropertySet{Properties: props, Imports: imports}
		}

		result[i] = es
		byName[e.Name] = &result[i]
	}

	for _, op := range ops {
		if match := bestCRUDMatch(op.ID, entities); match != "" {
			es := byName[match]
			es.CRUDOps = append(es.CRUDOps, op)
			switch {
			case op.ID == "Create"+match:
				es.CRUD.HasCreate = true
			case op.ID == "Get"+match:
				es.CRUD.HasGet = true
			case op.ID == "Update"+match:
				es.CRUD.HasUpdate = true
			case op.ID == "Delete"+match:
				es.CRUD.HasDelete = true
			case op.ID == "List"+match+"s":
				es.CRUD.HasList = true
			}
			// The first CRUD operation decides the owning service.
			if len(es.CRUDOps) == 1 {
				es.Service = op.Service
			}
		}
	}

	for i := range result {
		es := &result[i]
		keywords := related(es.Name)
		for _, op := range ops {
			if isOwnCRUD(op.ID, es) {
				continue
			}
			if isComplexFor(op.ID, es.Name, keywords) {
				es.Complex = append(es.Complex, OperationRef{
					OperationID: op.ID,
					Service:     op.Service,
					MethodName:  naming.MethodName(op.ID),
				})
			}
		}
		if es.Service == "" {
			es.Service = strings.ToLower(es.Name)
		}
	}

	return result, nil
}

// bestCRUDMatch returns the entity whose CRUD pattern matches the
// operation id, preferring the longest entity name when several match.
func bestCRUDMatch(opID string, entities []Entity) string {
	best := ""
	for _, e := range entities {
		if !matchesCRUD(opID, e.Name) {
			continue
		}
		if len(e.Name) > len(best) {
			best = e.Name
		}
	}
	return best
}

func matchesCRUD(opID, entity string) bool {
	switch opID {
	case "Create" + entity, "Get" + entity, "Update" + entity, "Delete" + entity, "List" + entity + "s":
		return true
	}
	return false
}

func isOwnCRUD(opID string, es *EntitySpec) bool {
	for _, op := range es.CRUDOps {
		if op.ID == opID {
			return true
		}
	}
	return false
}

// isComplexFor applies the Get...By... heuristic with the closed,
// configured keyword list.
func isComplexFor(opID, entity string, keywords []string) bool {
	if !strings.HasPrefix(opID, "Get") || !strings.Contains(opID, "By") {
		return false
	}
	if strings.Contains(strings.ToLower(opID), strings.ToLower(entity)) {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(opID, kw) {
			return true
		}
	}
	return false
}
