package planner

import (
	"github.com/hexagen/hexagen/internal/config"
	"github.com/hexagen/hexagen/internal/mapper"
)

// DatabaseContext expands the configured database into the per-kind
// booleans the build-file templates switch on.
type DatabaseContext struct {
	Kind     config.DatabaseKind
	Name     string
	Host     string
	Port     int
	User     string
	Password string

	PostgreSQL bool
	MySQL      bool
	Oracle     bool
	SQLServer  bool
	H2         bool
}

func newDatabaseContext(d config.Database) DatabaseContext {
	kind := d.Kind()
	return DatabaseContext{
		Kind:       kind,
		Name:       d.Name,
		Host:       d.Host,
		Port:       d.Port,
		User:       d.User,
		Password:   d.Password,
		PostgreSQL: kind == config.PostgreSQL,
		MySQL:      kind == config.MySQL,
		Oracle:     kind == config.Oracle,
		SQLServer:  kind == config.SQLServer,
		H2:         kind == config.H2,
	}
}

// ProjectContext is the project-wide slice of context shared by every
// artifact.
type ProjectContext struct {
	Name            string
	Description     string
	Author          string
	Version         string
	ArtifactVersion string
	BasePackage     string
	MainClass       string
	Database        DatabaseContext
}

func NewProjectContext(p config.Project) ProjectContext {
	return ProjectContext{
		Name:            p.Name(),
		Description:     p.Spec.General.Description,
		Author:          p.Author(),
		Version:         p.Version(),
		ArtifactVersion: p.ArtifactVersion(),
		BasePackage:     p.BasePackage(),
		MainClass:       p.MainClass(),
		Database:        newDatabaseContext(p.Database),
	}
}

// ClassContext is the common context of a generated Java class.
type ClassContext struct {
	ProjectContext
	Package string
	Class   string
}

// DTOContext renders an application-layer DTO with bean validation.
type DTOContext struct {
	ClassContext
	Service string
	Fields  []mapper.PropertyDescriptor
	Imports []string
}

// DomainModelContext renders a pure domain POJO; validation rules on
// the fields are ignored by the template.
type DomainModelContext struct {
	ClassContext
	Entity  string
	Fields  []mapper.PropertyDescriptor
	Imports []string
}

// PortContext renders the domain repository port interface.
type PortContext struct {
	ClassContext
	Entity    string
	EntityVar string
}

// ComplexOp is a non-CRUD operation exposed on the use case, service
// and controller.
type ComplexOp struct {
	OperationID  string
	MethodName   string
	PathSegment  string
	ResponseType string
}

// EndpointFlags are the CRUD endpoints an entity actually exposes.
// A flag is set only when the operation was matched and every DTO the
// endpoint's signature references is in the plan.
type EndpointFlags struct {
	HasCreate bool
	HasGet    bool
	HasUpdate bool
	HasDelete bool
	HasList   bool
}

func (f EndpointFlags) Any() bool {
	return f.HasCreate || f.HasGet || f.HasUpdate || f.HasDelete || f.HasList
}

// UseCaseContext renders the consolidated use case interface.
type UseCaseContext struct {
	ClassContext
	Entity    string
	EntityVar string
	Service   string
	EndpointFlags
	Complex    []ComplexOp
	DTOImports []string
}

// ServiceContext renders the consolidated application service.
type ServiceContext struct {
	ClassContext
	Entity    string
	EntityVar string
	Service   string
	UseCase   string
	Mapper    string
	Port      string
	EndpointFlags
	Complex    []ComplexOp
	DTOImports []string
}

// MapperContext renders the MapStruct mapper between domain model, DBO
// and DTOs.
type MapperContext struct {
	ClassContext
	Entity          string
	EntityVar       string
	Dbo             string
	Service         string
	HasCreate       bool
	HasUpdate       bool
	HasResponse     bool
	HasListResponse bool
	HasGet          bool
	DTOImports      []string
}

// JpaEntityContext renders the persistence DBO class.
type JpaEntityContext struct {
	ClassContext
	Entity    string
	EntityVar string
	Table     string
	Fields    []mapper.PropertyDescriptor
	Imports   []string
}

// JpaRepositoryContext renders the Spring Data repository with its
// search query.
type JpaRepositoryContext struct {
	ClassContext
	Entity          string
	Dbo             string
	SearchFields    []string
	SearchQuery     string
	HasSearchFields bool
}

// AdapterContext renders the repository adapter implementing the
// domain port over the JPA repository.
type AdapterContext struct {
	ClassContext
	Entity        string
	EntityVar     string
	Dbo           string
	Port          string
	JpaRepository string
	Mapper        string
}

// ControllerContext renders the REST controller.
type ControllerContext struct {
	ClassContext
	Entity    string
	EntityVar string
	Path      string
	IDPath    string
	Service   string
	EndpointFlags
	Complex        []ComplexOp
	DTOImports     []string
	UseCaseImports []string
}
