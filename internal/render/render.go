// Package render resolves and executes the artifact templates. A
// template is looked up by file name in the optional override
// directory first, then in the embedded defaults.
package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/hexagen/hexagen/internal/naming"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// TemplateMissingError reports an artifact whose template is in neither
// the override directory nor the embedded defaults.
type TemplateMissingError struct {
	Artifact string
	Template string
}

func (e *TemplateMissingError) Error() string {
	return fmt.Sprintf("artifact %s: template %s not found", e.Artifact, e.Template)
}

// Renderer executes named templates against artifact contexts. Parsed
// templates are cached per name.
type Renderer struct {
	// Dir overrides the embedded templates when it holds a file with
	// the requested name. Empty means embedded only.
	Dir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir, cache: map[string]*template.Template{}}
}

// Funcs is the function map available to all templates: the sprig text
// helpers plus the generator's naming transforms.
func Funcs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["lowerFirst"] = naming.LowerFirst
	funcs["upperFirst"] = naming.UpperFirst
	funcs["varName"] = naming.VarName
	funcs["pluralPath"] = naming.PluralPath
	funcs["endpointPath"] = naming.EndpointPath
	return funcs
}

// Render executes the named template with the given context. The
// artifact name is only used for error reporting.
func (r *Renderer) Render(artifact, name string, ctx any) (string, error) {
	tmpl, err := r.lookup(artifact, name)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, ctx); err != nil {
		return "", fmt.Errorf("render %s with %s: %w", artifact, name, err)
	}
	return b.String(), nil
}

func (r *Renderer) lookup(artifact, name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}

	text, err := r.read(name)
	if err != nil {
		return nil, &TemplateMissingError{Artifact: artifact, Template: name}
	}
	tmpl, err := template.New(name).Funcs(Funcs()).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	r.cache[name] = tmpl
	return tmpl, nil
}

func (r *Renderer) read(name string) ([]byte, error) {
	if r.Dir != "" {
		if text, err := os.ReadFile(filepath.Join(r.Dir, name)); err == nil {
			return text, nil
		}
	}
	return defaultTemplates.ReadFile("templates/" + name)
}
