// Package config models the projects configuration file consumed by the
// generator: one JSON array entry per project to scaffold, carrying the
// project metadata, the target database and the per-entity options used
// by operation classification.
package config

import (
	"fmt"
	"strings"
)

// Project is a single entry of the projects configuration array.
type Project struct {
	Spec     ProjectSpec              `json:"project"`
	Database Database                 `json:"database"`
	Entities map[string]EntityOptions `json:"entities"`
}

type ProjectSpec struct {
	General General `json:"general"`
	Params  Params  `json:"params"`
}

type General struct {
	Name        string `json:"name"`
	Folder      string `json:"folder"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Version     string `json:"version"`
}

type Params struct {
	ArtifactVersion string        `json:"artifactVersion"`
	ConfigOptions   ConfigOptions `json:"configOptions"`
}

type ConfigOptions struct {
	BasePackage string `json:"basePackage"`
	MainClass   string `json:"mainClass"`
}

// EntityOptions carries per-entity knobs. RelatedKeywords is the closed
// list of nouns that associate non-CRUD operations with the entity
// (e.g. "Cities" for a Location entity); it is configuration, never
// inferred.
type EntityOptions struct {
	RelatedKeywords []string `json:"relatedKeywords"`
}

// DatabaseKind enumerates the supported target databases.
type DatabaseKind string

const (
	PostgreSQL DatabaseKind = "postgresql"
	MySQL      DatabaseKind = "mysql"
	Oracle     DatabaseKind = "oracle"
	SQLServer  DatabaseKind = "sqlserver"
	H2         DatabaseKind = "h2"
)

// ParseDatabaseKind normalizes a configured database identifier. The
// empty string defaults to h2; "msserver" is accepted as a legacy alias
// for sqlserver.
func ParseDatabaseKind(s string) (DatabaseKind, error) {
	switch strings.ToLower(s) {
	case "", "h2":
		return H2, nil
	case "postgresql":
		return PostgreSQL, nil
	case "mysql":
		return MySQL, nil
	case "oracle":
		return Oracle, nil
	case "sqlserver", "msserver":
		return SQLServer, nil
	default:
		return "", fmt.Errorf("unknown database kind %q", s)
	}
}

type Database struct {
	SGBD     string `json:"sgbd"`
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Kind returns the parsed database kind; Load validates it, so a loaded
// Project never fails here.
func (d Database) Kind() DatabaseKind {
	k, err := ParseDatabaseKind(d.SGBD)
	if err != nil {
		return H2
	}
	return k
}

// Name is the project name used for the output directory.
func (p Project) Name() string { return p.Spec.General.Name }

// Folder is the smithy build output folder holding the OpenAPI specs.
func (p Project) Folder() string { return p.Spec.General.Folder }

func (p Project) BasePackage() string { return p.Spec.Params.ConfigOptions.BasePackage }

func (p Project) MainClass() string {
	if mc := p.Spec.Params.ConfigOptions.MainClass; mc != "" {
		return mc
	}
	return "Application"
}

func (p Project) Author() string {
	if p.Spec.General.Author != "" {
		return p.Spec.General.Author
	}
	return "Generator"
}

func (p Project) Version() string {
	if p.Spec.General.Version != "" {
		return p.Spec.General.Version
	}
	return "1.0.0"
}

func (p Project) ArtifactVersion() string {
	if p.Spec.Params.ArtifactVersion != "" {
		return p.Spec.Params.ArtifactVersion
	}
	return "1.0.0"
}

// RelatedKeywords returns the configured related-noun keywords for an
// entity, or nil when none are configured.
func (p Project) RelatedKeywords(entity string) []string {
	if opts, ok := p.Entities[entity]; ok {
		return opts.RelatedKeywords
	}
	return nil
}
