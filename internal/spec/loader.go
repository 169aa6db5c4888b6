package spec

import (
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// methodOrder fixes the per-path operation scan order.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// Loader locates and parses smithy build output for a project.
type Loader struct {
	// BaseDir is the directory holding the smithy build tree. Empty
	// means the working directory.
	BaseDir string
}

// LoadProject returns one ServiceSpec per OpenAPI document found under
// build/smithy/<folder>/openapi and any <folder>-* projection. The
// result is ordered by file path so repeated runs scan identically.
func (l Loader) LoadProject(project, folder string) ([]ServiceSpec, error) {
	patterns := []string{
		filepath.Join(l.BaseDir, "build", "smithy", folder, "openapi", "*.openapi.json"),
		filepath.Join(l.BaseDir, "build", "smithy", folder+"-*", "openapi", "*.openapi.json"),
	}

	// Primary folder first, projections after; sorted within each so
	// repeated runs scan identically.
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, &NotFoundError{Project: project, Folder: folder}
	}

	specs := make([]ServiceSpec, 0, len(files))
	for _, file := range files {
		s, err := loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func loadFile(path string) (ServiceSpec, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return ServiceSpec{}, err
	}

	service := serviceName(path)
	s := ServiceSpec{
		Service: service,
		Schemas: map[string]*openapi3.SchemaRef{},
	}

	if doc.Components != nil {
		for name, ref := range doc.Components.Schemas {
			s.Schemas[name] = ref
			s.SchemaNames = append(s.SchemaNames, name)
		}
		sort.Strings(s.SchemaNames)
	}

	if doc.Paths != nil {
		pathMap := doc.Paths.Map()
		urls := make([]string, 0, len(pathMap))
		for url := range pathMap {
			urls = append(urls, url)
		}
		sort.Strings(urls)

		for _, url := range urls {
			item := pathMap[url]
			if item == nil {
				continue
			}
			for _, method := range methodOrder {
				op := item.GetOperation(method)
				if op == nil || op.OperationID == "" {
					continue
				}
				s.Operations = append(s.Operations, Operation{
					ID:      op.OperationID,
					Service: service,
					Method:  method,
					Path:    url,
				})
			}
		}
	}

	return s, nil
}

// serviceName derives the lowercase service name from a spec file name:
// "UserService.openapi.json" -> "user".
func serviceName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".json")
	name = strings.TrimSuffix(name, ".openapi")
	name = strings.TrimSuffix(name, "Service")
	return strings.ToLower(name)
}
