package directory

// Service resolves employee IDs to display names. The register only does a
// display-level join: unresolved IDs are shown as-is, no referential
// integrity is enforced against the directory.
type Service interface {
	// DisplayName resolves an employee ID to a human readable name.
	// Returns the ID itself when unknown.
	DisplayName(id string) string
}

// Static is a Service backed by a fixed ID-to-name table, typically loaded
// from the application config.
type Static struct {
	names map[string]string
}

var _ Service = &Static{}

// NewStatic builds a Static directory from an ID-to-name table
func NewStatic(names map[string]string) *Static {
	copied := make(map[string]string, len(names))
	for id, name := range names {
		copied[id] = name
	}
	return &Static{names: copied}
}

func (s *Static) DisplayName(id string) string {
	if name, ok := s.names[id]; ok {
		return name
	}
	return id
}
