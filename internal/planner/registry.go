package planner

// Registry records the DTO artifacts planned so far, keyed by class
// name. Contexts that reference generated request/response types
// consult the registry instead of probing output files, so a type is
// only ever referenced when its artifact is actually in the plan.
type Registry struct {
	services map[string]string
}

func NewRegistry() *Registry {
	return &Registry{services: map[string]string{}}
}

// Add records a planned DTO class in a service subpackage. The first
// registration of a class name wins.
func (r *Registry) Add(service, class string) {
	if _, ok := r.services[class]; !ok {
		r.services[class] = service
	}
}

// Has reports whether a DTO class is in the plan.
func (r *Registry) Has(class string) bool {
	_, ok := r.services[class]
	return ok
}

// Service returns the service subpackage a DTO class was planned in.
func (r *Registry) Service(class string) (string, bool) {
	s, ok := r.services[class]
	return s, ok
}
