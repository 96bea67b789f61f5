package dag

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DependencyMap maps every job name to its ordered list of prerequisite job
// names. Keys keep the declaration order of the jobs, and each list keeps the
// order in which the prerequisites were declared.
type DependencyMap struct {
	edges *orderedmap.OrderedMap[string, []string]
}

// NewDependencyMap creates an empty map.
func NewDependencyMap() *DependencyMap {
	return &DependencyMap{edges: orderedmap.New[string, []string]()}
}

// Set records the prerequisites of name, replacing any previous entry but
// keeping its original position.
func (m *DependencyMap) Set(name string, prerequisites []string) {
	deps := make([]string, len(prerequisites))
	copy(deps, prerequisites)
	m.edges.Set(name, deps)
}

// Prerequisites returns a copy of the prerequisite list of name.
func (m *DependencyMap) Prerequisites(name string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	deps, ok := m.edges.Get(name)
	if !ok {
		return nil, false
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out, true
}

// Has reports whether name is a key of the map.
func (m *DependencyMap) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.edges.Get(name)
	return ok
}

// Len returns the number of jobs in the map.
func (m *DependencyMap) Len() int {
	if m == nil {
		return 0
	}
	return m.edges.Len()
}

// Names returns the keys in insertion order.
func (m *DependencyMap) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, m.edges.Len())
	for pair := m.edges.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// prerequisitesOf returns the stored slice without copying. Callers must not
// modify it.
func (m *DependencyMap) prerequisitesOf(name string) []string {
	deps, _ := m.edges.Get(name)
	return deps
}
