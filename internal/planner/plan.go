package planner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/hexagen/hexagen/internal/config"
	"github.com/hexagen/hexagen/internal/mapper"
	"github.com/hexagen/hexagen/internal/naming"
	"github.com/hexagen/hexagen/internal/spec"
)

// Kind names an artifact category; it doubles as the template base
// name.
type Kind string

const (
	KindDTO               Kind = "dto"
	KindEntityStatus      Kind = "entity-status"
	KindDomainModel       Kind = "domain-model"
	KindRepositoryPort    Kind = "repository-port"
	KindUseCase           Kind = "use-case"
	KindService           Kind = "application-service"
	KindMapper            Kind = "mapper"
	KindJpaEntity         Kind = "jpa-entity"
	KindJpaRepository     Kind = "jpa-repository"
	KindRepositoryAdapter Kind = "repository-adapter"
	KindController        Kind = "controller"
	KindApplication       Kind = "application"
	KindAppConfig         Kind = "application-configuration"
	KindSecurityConfig    Kind = "security-configuration"
	KindOpenAPIConfig     Kind = "openapi-configuration"
	KindExceptionHandler  Kind = "global-exception-handler"
	KindNotFoundException Kind = "not-found-exception"
	KindLoggingUtils      Kind = "logging-utils"
	KindPom               Kind = "pom"
	KindProperties        Kind = "application-properties"
	KindReadme            Kind = "readme"
	KindDockerCompose     Kind = "docker-compose"
	KindDockerfile        Kind = "dockerfile"
	KindMvnw              Kind = "mvnw"
	KindMvnwCmd           Kind = "mvnw-cmd"
	KindWrapperProps      Kind = "maven-wrapper-properties"
)

// Template is the template file name for the kind.
func (k Kind) Template() string { return string(k) + ".tmpl" }

// Artifact is one planned output file.
type Artifact struct {
	Kind       Kind
	Path       string
	Context    any
	Executable bool
}

// Plan is the full ordered artifact list for one project.
type Plan struct {
	Project   ProjectContext
	Artifacts []Artifact
}

func (p *Plan) add(kind Kind, path string, ctx any) {
	p.Artifacts = append(p.Artifacts, Artifact{Kind: kind, Path: path, Context: ctx})
}

// BuildPlan derives the complete artifact plan for a project from its
// loaded service specs. Layer order: DTOs, domain, application,
// persistence, controllers, then project-level files.
func BuildPlan(project config.Project, specs []spec.ServiceSpec) (*Plan, error) {
	layout := NewLayout(project.BasePackage())
	pc := NewProjectContext(project)

	entities := mapper.InferEntities(specs)
	groups, err := mapper.GroupOperations(specs, entities, project.RelatedKeywords)
	if err != nil {
		return nil, fmt.Errorf("group operations for %s: %w", project.Name(), err)
	}

	plan := &Plan{Project: pc}
	reg := NewRegistry()

	if err := planDTOs(plan, pc, layout, specs, reg); err != nil {
		return nil, err
	}

	plan.add(KindEntityStatus,
		JavaFile(layout.DomainModel, "EntityStatus"),
		ClassContext{ProjectContext: pc, Package: layout.DomainModel, Class: "EntityStatus"})

	planDomain(plan, pc, layout, groups)
	planMappers(plan, pc, layout, groups, reg)
	planUseCasesAndServices(plan, pc, layout, groups, reg)
	planPersistence(plan, pc, layout, groups)
	planControllers(plan, pc, layout, groups, reg)
	planProjectFiles(plan, pc, layout)

	return plan, nil
}

// planDTOs emits one DTO per object schema, excluding error shapes, and
// registers each planned class.
func planDTOs(plan *Plan, pc ProjectContext, layout Layout, specs []spec.ServiceSpec, reg *Registry) error {
	for _, s := range specs {
		for _, name := range s.SchemaNames {
			schema := s.Schema(name)
			if schema == nil || schema.Type == nil || !schema.Type.Is(openapi3.TypeObject) {
				continue
			}
			if strings.Contains(name, "Error") {
				continue
			}
			fields, imports, err := mapper.MapSchema(name, schema)
			if err != nil {
				return err
			}
			pkg := layout.DTOPackage(s.Service)
			reg.Add(s.Service, name)
			plan.add(KindDTO, JavaFile(pkg, name), DTOContext{
				ClassContext: ClassContext{ProjectContext: pc, Package: pkg, Class: name},
				Service:      s.Service,
				Fields:       fields,
				Imports:      imports,
			})
		}
	}
	return nil
}

func planDomain(plan *Plan, pc ProjectContext, layout Layout, groups []mapper.EntitySpec) {
	for _, g := range groups {
		if g.SourceSchema == nil {
			continue
		}
		plan.add(KindDomainModel, JavaFile(layout.DomainModel, g.Name), DomainModelContext{
			ClassContext: ClassContext{ProjectContext: pc, Package: layout.DomainModel, Class: g.Name},
			Entity:       g.Name,
			Fields:       g.SourceSchema.Properties,
			Imports:      g.SourceSchema.Imports,
		})

		port := g.Name + "RepositoryPort"
		plan.add(KindRepositoryPort, JavaFile(layout.DomainPortsOutput, port), PortContext{
			ClassContext: ClassContext{ProjectContext: pc, Package: layout.DomainPortsOutput, Class: port},
			Entity:       g.Name,
			EntityVar:    naming.VarName(g.Name),
		})
	}
}

func planMappers(plan *Plan, pc ProjectContext, layout Layout, groups []mapper.EntitySpec, reg *Registry) {
	for _, g := range groups {
		if !mapper.IsDomainEntity(g.Name) || g.SourceSchema == nil {
			continue
		}
		service := dtoService(reg, g)
		var imports []string
		hasCreate := reg.Has("Create" + g.Name + "RequestContent")
		hasUpdate := reg.Has("Update" + g.Name + "RequestContent")
		hasResponse := reg.Has(g.Name + "Response")
		hasListResponse := reg.Has("List" + g.Name + "sResponseContent")
		hasGet := reg.Has("Get" + g.Name + "ResponseContent")
		if hasCreate {
			imports = append(imports,
				layout.DTOPackage(service)+".Create"+g.Name+"RequestContent")
			if reg.Has("Create" + g.Name + "ResponseContent") {
				imports = append(imports,
					layout.DTOPackage(service)+".Create"+g.Name+"ResponseContent")
			}
		}
		if hasUpdate {
			imports = append(imports,
				layout.DTOPackage(service)+".Update"+g.Name+"RequestContent")
			if reg.Has("Update" + g.Name + "ResponseContent") {
				imports = append(imports,
					layout.DTOPackage(service)+".Update"+g.Name+"ResponseContent")
			}
		}
		if hasResponse {
			imports = append(imports, layout.DTOPackage(service)+"."+g.Name+"Response")
		}
		if hasListResponse {
			imports = append(imports, layout.DTOPackage(service)+".List"+g.Name+"sResponseContent")
		}
		if hasGet {
			imports = append(imports, layout.DTOPackage(service)+".Get"+g.Name+"ResponseContent")
		}

		class := g.Name + "Mapper"
		plan.add(KindMapper, JavaFile(layout.AppMapper, class), MapperContext{
			ClassContext:    ClassContext{ProjectContext: pc, Package: layout.AppMapper, Class: class},
			Entity:          g.Name,
			EntityVar:       naming.VarName(g.Name),
			Dbo:             g.Name + "Dbo",
			Service:         service,
			HasCreate:       hasCreate,
			HasUpdate:       hasUpdate,
			HasResponse:     hasResponse,
			HasListResponse: hasListResponse,
			HasGet:          hasGet,
			DTOImports:      imports,
		})
	}
}

func planUseCasesAndServices(plan *Plan, pc ProjectContext, layout Layout, groups []mapper.EntitySpec, reg *Registry) {
	for _, g := range groups {
		// The service implementation needs the domain model and port, so
		// entities without a canonical schema expose no endpoints.
		if !g.CRUD.Any() || g.SourceSchema == nil {
			continue
		}
		flags := endpointFlags(g, reg)
		complex := complexOps(g, reg)
		if !flags.Any() && len(complex) == 0 {
			continue
		}
		imports := endpointImports(layout, g, flags, complex, reg)
		entityVar := naming.VarName(g.Name)

		useCase := g.Name + "UseCase"
		plan.add(KindUseCase, JavaFile(layout.DomainPortsInput, useCase), UseCaseContext{
			ClassContext:  ClassContext{ProjectContext: pc, Package: layout.DomainPortsInput, Class: useCase},
			Entity:        g.Name,
			EntityVar:     entityVar,
			Service:       g.Service,
			EndpointFlags: flags,
			Complex:       complex,
			DTOImports:    imports,
		})

		service := g.Name + "Service"
		plan.add(KindService, JavaFile(layout.AppService, service), ServiceContext{
			ClassContext:  ClassContext{ProjectContext: pc, Package: layout.AppService, Class: service},
			Entity:        g.Name,
			EntityVar:     entityVar,
			Service:       g.Service,
			UseCase:       useCase,
			Mapper:        g.Name + "Mapper",
			Port:          g.Name + "RepositoryPort",
			EndpointFlags: flags,
			Complex:       complex,
			DTOImports:    imports,
		})
	}
}

func planPersistence(plan *Plan, pc ProjectContext, layout Layout, groups []mapper.EntitySpec) {
	for _, g := range groups {
		if g.SourceSchema == nil {
			continue
		}
		fields, imports := dboFields(g.SourceSchema.Properties)

		dbo := g.Name + "Dbo"
		plan.add(KindJpaEntity, JavaFile(layout.InfraEntity, dbo), JpaEntityContext{
			ClassContext: ClassContext{ProjectContext: pc, Package: layout.InfraEntity, Class: dbo},
			Entity:       g.Name,
			EntityVar:    naming.VarName(g.Name),
			Table:        naming.PluralPath(g.Name),
			Fields:       fields,
			Imports:      imports,
		})

		searchFields := searchFields(g.SourceSchema.Properties)
		repo := "Jpa" + g.Name + "Repository"
		plan.add(KindJpaRepository, JavaFile(layout.InfraRepository, repo), JpaRepositoryContext{
			ClassContext:    ClassContext{ProjectContext: pc, Package: layout.InfraRepository, Class: repo},
			Entity:          g.Name,
			Dbo:             dbo,
			SearchFields:    searchFields,
			SearchQuery:     searchQuery(searchFields),
			HasSearchFields: len(searchFields) > 0,
		})

		adapter := g.Name + "RepositoryAdapter"
		plan.add(KindRepositoryAdapter, JavaFile(layout.InfraAdapter, adapter), AdapterContext{
			ClassContext:  ClassContext{ProjectContext: pc, Package: layout.InfraAdapter, Class: adapter},
			Entity:        g.Name,
			EntityVar:     naming.VarName(g.Name),
			Dbo:           dbo,
			Port:          g.Name + "RepositoryPort",
			JpaRepository: repo,
			Mapper:        g.Name + "Mapper",
		})
	}
}

func planControllers(plan *Plan, pc ProjectContext, layout Layout, groups []mapper.EntitySpec, reg *Registry) {
	for _, g := range groups {
		if !mapper.IsDomainEntity(g.Name) || !g.CRUD.Any() || g.SourceSchema == nil {
			continue
		}
		flags := endpointFlags(g, reg)
		complex := complexOps(g, reg)
		if !flags.Any() && len(complex) == 0 {
			continue
		}
		entityVar := naming.VarName(g.Name)

		class := g.Name + "Controller"
		plan.add(KindController, JavaFile(layout.InfraRest, class), ControllerContext{
			ClassContext:   ClassContext{ProjectContext: pc, Package: layout.InfraRest, Class: class},
			Entity:         g.Name,
			EntityVar:      entityVar,
			Path:           naming.PluralPath(g.Name),
			IDPath:         "{" + entityVar + "Id}",
			Service:        g.Service,
			EndpointFlags:  flags,
			Complex:        complex,
			DTOImports:     endpointImports(layout, g, flags, complex, reg),
			UseCaseImports: []string{layout.DomainPortsInput + "." + g.Name + "UseCase"},
		})
	}
}

func planProjectFiles(plan *Plan, pc ProjectContext, layout Layout) {
	class := func(pkg, name string) ClassContext {
		return ClassContext{ProjectContext: pc, Package: pkg, Class: name}
	}

	plan.add(KindApplication, JavaFile(layout.Root, pc.MainClass), class(layout.Root, pc.MainClass))
	plan.add(KindAppConfig, JavaFile(layout.InfraConfig, "ApplicationConfiguration"), class(layout.InfraConfig, "ApplicationConfiguration"))
	plan.add(KindSecurityConfig, JavaFile(layout.InfraConfig, "SecurityConfiguration"), class(layout.InfraConfig, "SecurityConfiguration"))
	plan.add(KindOpenAPIConfig, JavaFile(layout.InfraConfig, "OpenApiConfiguration"), class(layout.InfraConfig, "OpenApiConfiguration"))
	plan.add(KindExceptionHandler, JavaFile(layout.InfraExceptions, "GlobalExceptionHandler"), class(layout.InfraExceptions, "GlobalExceptionHandler"))
	plan.add(KindNotFoundException, JavaFile(layout.InfraExceptions, "NotFoundException"), class(layout.InfraExceptions, "NotFoundException"))
	plan.add(KindLoggingUtils, JavaFile(layout.Utils, "LoggingUtils"), class(layout.Utils, "LoggingUtils"))

	plan.add(KindPom, "pom.xml", pc)
	plan.add(KindProperties, filepath.Join("src", "main", "resources", "application.properties"), pc)
	plan.add(KindReadme, "README.md", pc)
	plan.add(KindDockerCompose, "docker-compose.yml", pc)
	plan.add(KindDockerfile, "Dockerfile", pc)

	plan.Artifacts = append(plan.Artifacts, Artifact{Kind: KindMvnw, Path: "mvnw", Context: pc, Executable: true})
	plan.add(KindMvnwCmd, "mvnw.cmd", pc)
	plan.add(KindWrapperProps, filepath.Join(".mvn", "wrapper", "maven-wrapper.properties"), pc)
}

// endpointFlags gates each matched CRUD operation on the DTOs its
// signature references being in the plan.
func endpointFlags(g mapper.EntitySpec, reg *Registry) EndpointFlags {
	e := g.Name
	return EndpointFlags{
		HasCreate: g.CRUD.HasCreate &&
			reg.Has("Create"+e+"RequestContent") && reg.Has("Create"+e+"ResponseContent"),
		HasGet: g.CRUD.HasGet && reg.Has("Get"+e+"ResponseContent"),
		HasUpdate: g.CRUD.HasUpdate &&
			reg.Has("Update"+e+"RequestContent") && reg.Has("Update"+e+"ResponseContent"),
		HasDelete: g.CRUD.HasDelete && reg.Has("Delete"+e+"ResponseContent"),
		HasList:   g.CRUD.HasList && reg.Has("List"+e+"sResponseContent"),
	}
}

// complexOps keeps the complex operations whose response DTO is in the
// plan, preserving scan order.
func complexOps(g mapper.EntitySpec, reg *Registry) []ComplexOp {
	var ops []ComplexOp
	for _, op := range g.Complex {
		response := op.OperationID + "ResponseContent"
		if !reg.Has(response) {
			continue
		}
		ops = append(ops, ComplexOp{
			OperationID:  op.OperationID,
			MethodName:   op.MethodName,
			PathSegment:  naming.EndpointPath(op.OperationID),
			ResponseType: response,
		})
	}
	return ops
}

// endpointImports lists the DTO imports for the enabled endpoints, in
// endpoint order.
func endpointImports(layout Layout, g mapper.EntitySpec, flags EndpointFlags, complex []ComplexOp, reg *Registry) []string {
	e := g.Name
	service := dtoService(reg, g)
	pkg := layout.DTOPackage(service)

	var imports []string
	if flags.HasCreate {
		imports = append(imports, pkg+".Create"+e+"RequestContent", pkg+".Create"+e+"ResponseContent")
	}
	if flags.HasGet {
		imports = append(imports, pkg+".Get"+e+"ResponseContent")
	}
	if flags.HasUpdate {
		imports = append(imports, pkg+".Update"+e+"RequestContent", pkg+".Update"+e+"ResponseContent")
	}
	if flags.HasDelete {
		imports = append(imports, pkg+".Delete"+e+"ResponseContent")
	}
	if flags.HasList {
		imports = append(imports, pkg+".List"+e+"sResponseContent")
	}
	for _, op := range complex {
		if s, ok := reg.Service(op.ResponseType); ok {
			imports = append(imports, layout.DTOPackage(s)+"."+op.ResponseType)
		}
	}
	return imports
}

// dtoService resolves the DTO subpackage for an entity from the
// registry, preferring the package its response DTO was planned in.
func dtoService(reg *Registry, g mapper.EntitySpec) string {
	for _, class := range []string{
		g.Name + "Response",
		"Get" + g.Name + "ResponseContent",
		"Create" + g.Name + "RequestContent",
	} {
		if s, ok := reg.Service(class); ok {
			return s
		}
	}
	return g.Service
}

// dboFields filters the entity fields persisted on the DBO: managed
// columns (createdAt, updatedAt, status) and foreign key references
// (*Id) are declared by the template itself.
func dboFields(props []mapper.PropertyDescriptor) ([]mapper.PropertyDescriptor, []string) {
	var (
		fields  []mapper.PropertyDescriptor
		imports []string
		seen    = map[string]bool{}
	)
	for _, p := range props {
		if p.Name == "createdAt" || p.Name == "updatedAt" || p.Name == "status" {
			continue
		}
		if strings.HasSuffix(p.Name, "Id") {
			continue
		}
		fields = append(fields, p)
		for _, imp := range p.Imports {
			if !seen[imp] {
				seen[imp] = true
				imports = append(imports, imp)
			}
		}
	}
	sort.Strings(imports)
	return fields, imports
}

// searchFields picks the text columns the repository search query
// matches, in fixed priority order.
func searchFields(props []mapper.PropertyDescriptor) []string {
	byName := map[string]bool{}
	for _, p := range props {
		byName[p.Name] = true
	}
	var fields []string
	for _, f := range []string{"name", "title", "description"} {
		if byName[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// searchQuery builds the JPQL WHERE clause for the search helper. With
// no text columns it falls back to matching on the id.
func searchQuery(fields []string) string {
	if len(fields) == 0 {
		return "LOWER(CAST(e.id AS string)) LIKE LOWER(CONCAT('%', :search, '%'))"
	}
	conditions := make([]string, 0, len(fields))
	for _, f := range fields {
		conditions = append(conditions, fmt.Sprintf("LOWER(e.%s) LIKE LOWER(CONCAT('%%', :search, '%%'))", f))
	}
	return strings.Join(conditions, " OR ")
}
