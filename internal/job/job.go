package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrEmptyName is returned when a definition has no name.
	ErrEmptyName = errors.New("job name is required")

	// ErrDuplicateJob is returned when two definitions share a name.
	ErrDuplicateJob = errors.New("duplicate job name")
)

// Definition is a single, independently configured backup job.
type Definition struct {
	Name      string
	Enabled   bool
	DependsOn []string

	// Host-only fields. The dependency engine never reads them.
	Description string
	Command     string
	Timeout     time.Duration
	Source      string
}

// New returns an enabled definition with the given prerequisites.
func New(name string, dependsOn ...string) Definition {
	return Definition{Name: name, Enabled: true, DependsOn: dependsOn}
}

// Disabled returns a copy of d with Enabled set to false.
func (d Definition) Disabled() Definition {
	d.Enabled = false
	return d
}

// Set is an insertion-ordered collection of job definitions keyed by name.
type Set struct {
	defs *orderedmap.OrderedMap[string, Definition]
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{defs: orderedmap.New[string, Definition]()}
}

// FromDefinitions builds a Set in argument order.
func FromDefinitions(defs ...Definition) (*Set, error) {
	s := NewSet()
	for _, d := range defs {
		if err := s.Add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSet is like FromDefinitions but panics on error. Intended for tests and
// static tables.
func MustSet(defs ...Definition) *Set {
	s, err := FromDefinitions(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a definition. Names are case-sensitive and must be unique.
func (s *Set) Add(d Definition) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if prev, exists := s.defs.Get(d.Name); exists {
		if prev.Source != "" && d.Source != "" {
			return fmt.Errorf("%w: %q (declared in %s and %s)", ErrDuplicateJob, d.Name, prev.Source, d.Source)
		}
		return fmt.Errorf("%w: %q", ErrDuplicateJob, d.Name)
	}
	deps := make([]string, len(d.DependsOn))
	copy(deps, d.DependsOn)
	d.DependsOn = deps
	s.defs.Set(d.Name, d)
	return nil
}

// Get returns the definition for name.
func (s *Set) Get(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	return s.defs.Get(name)
}

// Has reports whether name is a known job.
func (s *Set) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// IsEnabled reports whether name is known and enabled.
func (s *Set) IsEnabled(name string) bool {
	d, ok := s.Get(name)
	return ok && d.Enabled
}

// Len returns the number of definitions.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.defs.Len()
}

// Names returns every job name in declaration order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, s.defs.Len())
	for pair := s.defs.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// All returns every definition in declaration order.
func (s *Set) All() []Definition {
	if s == nil {
		return nil
	}
	out := make([]Definition, 0, s.defs.Len())
	for pair := s.defs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
