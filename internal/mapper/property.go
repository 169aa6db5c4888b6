// Package mapper turns OpenAPI schema and operation definitions into
// the generic descriptors the planner renders from: property
// descriptors with Java types and validation rules, inferred domain
// entities, and per-entity operation groupings.
package mapper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Kind is the semantic type of a mapped property.
type Kind int

const (
	KindString Kind = iota
	KindDateTime
	KindInteger
	KindDouble
	KindDecimal
	KindBoolean
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindDateTime:
		return "DateTime"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindDecimal:
		return "Decimal"
	case KindBoolean:
		return "Boolean"
	case KindList:
		return "List"
	default:
		return "String"
	}
}

// PropertyDescriptor is the mapped form of one schema property.
// Immutable after MapProperty returns it.
type PropertyDescriptor struct {
	Name     string
	Kind     Kind
	Elem     string // element type name when Kind == KindList
	Required bool
	Rules    []Rule
	Imports  []string
}

// JavaType renders the descriptor's Java type name.
func (d PropertyDescriptor) JavaType() string {
	switch d.Kind {
	case KindDateTime:
		return "OffsetDateTime"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindDecimal:
		return "BigDecimal"
	case KindBoolean:
		return "Boolean"
	case KindList:
		return "List<" + d.Elem + ">"
	default:
		return "String"
	}
}

// HasValidation reports whether any validation annotation applies.
func (d PropertyDescriptor) HasValidation() bool { return len(d.Rules) > 0 }

// Annotations renders the validation annotations in rule order.
func (d PropertyDescriptor) Annotations() []string {
	out := make([]string, 0, len(d.Rules))
	for _, r := range d.Rules {
		out = append(out, r.Annotation())
	}
	return out
}

// RuleKind enumerates the supported validation constraints.
type RuleKind int

const (
	RuleNotNull RuleKind = iota
	RuleSize
	RulePattern
)

// Rule is one validation constraint. For RuleSize at least one bound is
// set; for RulePattern the regex is kept byte-for-byte as declared in
// the schema.
type Rule struct {
	Kind    RuleKind
	Min     *uint64
	Max     *uint64
	Pattern string
}

// Annotation renders the Jakarta Bean Validation annotation. Pattern
// regexes are escaped as Java string literals only (backslash and
// quote), so the compiled literal is exactly the schema's regex.
func (r Rule) Annotation() string {
	switch r.Kind {
	case RuleNotNull:
		return "@NotNull"
	case RuleSize:
		switch {
		case r.Min != nil && r.Max != nil:
			return fmt.Sprintf("@Size(min = %d, max = %d)", *r.Min, *r.Max)
		case r.Min != nil:
			return fmt.Sprintf("@Size(min = %d)", *r.Min)
		default:
			return fmt.Sprintf("@Size(max = %d)", *r.Max)
		}
	case RulePattern:
		return fmt.Sprintf("@Pattern(regexp = %s)", javaStringLiteral(r.Pattern))
	default:
		return ""
	}
}

func javaStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// MappingError reports a schema property that cannot be mapped.
type MappingError struct {
	Schema   string
	Property string
	Reason   string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map property %s.%s: %s", e.Schema, e.Property, e.Reason)
}

// timestampFields are doubles carried as text by service convention.
var timestampFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
}

// MapProperty converts one OpenAPI property into a PropertyDescriptor.
// The mapping is a total function over the supported (type, format)
// table; any other explicit type is a MappingError rather than a silent
// default.
func MapProperty(schemaName, propName string, ref *openapi3.SchemaRef, required []string) (PropertyDescriptor, error) {
	if ref == nil || ref.Value == nil {
		return PropertyDescriptor{}, &MappingError{Schema: schemaName, Property: propName, Reason: "schema fragment is not an object"}
	}
	v := ref.Value

	d := PropertyDescriptor{Name: propName}
	imports := map[string]bool{}

	switch {
	case v.Type == nil || len(*v.Type) == 0:
		d.Kind = KindString
	case v.Type.Is(openapi3.TypeString):
		if v.Format == "date-time" {
			d.Kind = KindDateTime
			imports["java.time.OffsetDateTime"] = true
		} else {
			d.Kind = KindString
		}
	case v.Type.Is(openapi3.TypeNumber):
		if v.Format == "double" {
			if timestampFields[propName] {
				d.Kind = KindString
			} else {
				d.Kind = KindDouble
			}
		} else {
			d.Kind = KindDecimal
			imports["java.math.BigDecimal"] = true
		}
	case v.Type.Is(openapi3.TypeInteger):
		d.Kind = KindInteger
	case v.Type.Is(openapi3.TypeBoolean):
		d.Kind = KindBoolean
	case v.Type.Is(openapi3.TypeArray):
		d.Kind = KindList
		d.Elem = "String"
		if v.Items != nil && v.Items.Ref != "" {
			parts := strings.Split(v.Items.Ref, "/")
			d.Elem = parts[len(parts)-1]
		}
		imports["java.util.List"] = true
	default:
		return PropertyDescriptor{}, &MappingError{
			Schema:   schemaName,
			Property: propName,
			Reason:   fmt.Sprintf("unsupported type %v (format %q)", *v.Type, v.Format),
		}
	}

	for _, name := range required {
		if name == propName {
			d.Required = true
			break
		}
	}

	// Rule order is fixed: NotNull, Size, Pattern.
	if d.Required {
		d.Rules = append(d.Rules, Rule{Kind: RuleNotNull})
	}
	var minLen, maxLen *uint64
	if v.MinLength > 0 {
		m := v.MinLength
		minLen = &m
	}
	if v.MaxLength != nil {
		m := *v.MaxLength
		maxLen = &m
	}
	if minLen != nil || maxLen != nil {
		d.Rules = append(d.Rules, Rule{Kind: RuleSize, Min: minLen, Max: maxLen})
	}
	if v.Pattern != "" {
		d.Rules = append(d.Rules, Rule{Kind: RulePattern, Pattern: v.Pattern})
	}

	for imp := range imports {
		d.Imports = append(d.Imports, imp)
	}
	sort.Strings(d.Imports)

	return d, nil
}

// MapSchema maps every property of an object schema in sorted property
// order, returning the descriptors and the union of their imports.
func MapSchema(schemaName string, schema *openapi3.Schema) ([]PropertyDescriptor, []string, error) {
	if schema == nil {
		return nil, nil, &MappingError{Schema: schemaName, Reason: "schema is not an object"}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		props   []PropertyDescriptor
		imports []string
		seen    = map[string]bool{}
	)
	for _, name := range names {
		d, err := MapProperty(schemaName, name, schema.Properties[name], schema.Required)
		if err != nil {
			return nil, nil, err
		}
		props = append(props, d)
		for _, imp := range d.Imports {
			if !seen[imp] {
				seen[imp] = true
				imports = append(imports, imp)
			}
		}
	}
	sort.Strings(imports)
	return props, imports, nil
}
