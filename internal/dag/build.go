package dag

import (
	"strings"

	"github.com/vk/backupctl/internal/job"
)

// BuildMap constructs the dependency map for every job in jobs, enabled or
// not. Each prerequisite entry is trimmed of surrounding whitespace; blank
// entries are kept as "" so Validate can report them. Referenced names are not
// checked here.
func BuildMap(jobs *job.Set) *DependencyMap {
	m := NewDependencyMap()
	for _, def := range jobs.All() {
		deps := make([]string, 0, len(def.DependsOn))
		for _, raw := range def.DependsOn {
			deps = append(deps, strings.TrimSpace(raw))
		}
		m.Set(def.Name, deps)
	}
	return m
}
