package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is the conventional location of the projects
// configuration file, relative to the working directory.
const DefaultPath = "config/params.json"

// ConfigurationError is fatal: it aborts the whole run before any file
// is written.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Load reads and validates the projects configuration file. The file
// holds a JSON array with one entry per project.
func Load(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}
	if len(projects) == 0 {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("no projects configured")}
	}

	for i, p := range projects {
		if p.Name() == "" {
			return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("project %d: missing project.general.name", i)}
		}
		if p.Folder() == "" {
			return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("project %q: missing project.general.folder", p.Name())}
		}
		if p.BasePackage() == "" {
			return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("project %q: missing project.params.configOptions.basePackage", p.Name())}
		}
		if _, err := ParseDatabaseKind(p.Database.SGBD); err != nil {
			return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("project %q: %w", p.Name(), err)}
		}
	}
	return projects, nil
}
