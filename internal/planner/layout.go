// Package planner turns mapped entities and project configuration into
// an ordered artifact plan: one request per file to generate, each
// carrying its template name, output path and a fully resolved context.
// The plan is derived purely from spec data; nothing here touches the
// filesystem.
package planner

import (
	"path/filepath"
	"strings"
)

// Layout is the hexagonal package structure rooted at the project's
// base package.
type Layout struct {
	Root              string
	Utils             string
	DomainModel       string
	DomainPortsInput  string
	DomainPortsOutput string
	AppService        string
	AppDTO            string
	AppMapper         string
	InfraConfig       string
	InfraExceptions   string
	InfraRest         string
	InfraEntity       string
	InfraRepository   string
	InfraAdapter      string
}

func NewLayout(basePackage string) Layout {
	return Layout{
		Root:              basePackage,
		Utils:             basePackage + ".utils",
		DomainModel:       basePackage + ".domain.model",
		DomainPortsInput:  basePackage + ".domain.ports.input",
		DomainPortsOutput: basePackage + ".domain.ports.output",
		AppService:        basePackage + ".application.service",
		AppDTO:            basePackage + ".application.dto",
		AppMapper:         basePackage + ".application.mapper",
		InfraConfig:       basePackage + ".infrastructure.config",
		InfraExceptions:   basePackage + ".infrastructure.config.exceptions",
		InfraRest:         basePackage + ".infrastructure.adapters.input.rest",
		InfraEntity:       basePackage + ".infrastructure.adapters.output.persistence.entity",
		InfraRepository:   basePackage + ".infrastructure.adapters.output.persistence.repository",
		InfraAdapter:      basePackage + ".infrastructure.adapters.output.persistence.adapter",
	}
}

// DTOPackage is the per-service DTO subpackage.
func (l Layout) DTOPackage(service string) string {
	return l.AppDTO + "." + service
}

// JavaFile maps a dotted package and class name to the source file path
// relative to the project root.
func JavaFile(pkg, class string) string {
	dir := filepath.Join(strings.Split(pkg, ".")...)
	return filepath.Join("src", "main", "java", dir, class+".java")
}
