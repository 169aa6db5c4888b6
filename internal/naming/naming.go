// Package naming holds the string transforms shared by the mapper and
// planner: Java identifier casing, pluralized path segments and the
// kebab-case endpoint paths derived from operation ids.
package naming

import (
	"strings"
	"unicode"
)

func LowerFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func UpperFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// VarName returns the variable name used for an entity in generated
// code, e.g. "Location" -> "location".
func VarName(entity string) string {
	return strings.ToLower(entity)
}

// PluralPath returns the REST path segment / table name for an entity,
// e.g. "User" -> "users". The convention mirrors the List{Entity}s
// operation naming, so a plain "s" suffix is correct by construction.
func PluralPath(entity string) string {
	return strings.ToLower(entity) + "s"
}

// SplitCamel splits a PascalCase or camelCase identifier into words.
// Acronym runs stay together: "HTTPServer" -> ["HTTP", "Server"].
func SplitCamel(s string) []string {
	if s == "" {
		return nil
	}
	var words []string
	runes := []rune(s)
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		if unicode.IsUpper(cur) && unicode.IsLower(prev) {
			boundary = true
		} else if i+1 < len(runes) && unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

// EndpointPath converts a complex operation id to its URL segment:
// "GetCitiesByRegion" -> "cities-by-region". A leading Get is dropped;
// remaining camel words are joined with dashes.
func EndpointPath(opID string) string {
	id := strings.TrimPrefix(opID, "Get")
	words := SplitCamel(id)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// MethodName returns the Java method name for an operation id,
// e.g. "GetCitiesByRegion" -> "getCitiesByRegion".
func MethodName(opID string) string {
	return LowerFirst(opID)
}
