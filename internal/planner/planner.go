package planner

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vk/backupctl/internal/dag"
	"github.com/vk/backupctl/internal/job"
)

// Result is a successful plan.
type Result struct {
	// Order lists every job in the working set such that each job's
	// prerequisites in the working set come first.
	Order []string
	// Notes are the diagnostics collected during expansion, in discovery order.
	Notes []Note
}

// Planner computes execution plans. The zero value uses SkipDependents.
type Planner struct {
	Policy DisabledPolicy
}

// New returns a Planner with the given policy.
func New(policy DisabledPolicy) Planner {
	return Planner{Policy: policy}
}

// Plan computes the execution order for requested with the default policy.
func Plan(requested []string, deps *dag.DependencyMap, jobs *job.Set) ([]string, error) {
	res, err := Planner{}.Plan(requested, deps, jobs)
	if err != nil {
		return nil, err
	}
	return res.Order, nil
}

// workingSet is the insertion-ordered set of jobs selected for a plan.
type workingSet = orderedmap.OrderedMap[string, struct{}]

// Plan expands requested into its working set and orders it. It has no side
// effects: identical inputs always give identical results.
func (p Planner) Plan(requested []string, deps *dag.DependencyMap, jobs *job.Set) (*Result, error) {
	res := &Result{Order: []string{}}

	working, err := p.expand(requested, deps, jobs, res)
	if err != nil {
		return nil, err
	}

	order := topoSort(working, deps)
	if len(order) != working.Len() {
		placed := make(map[string]bool, len(order))
		for _, name := range order {
			placed[name] = true
		}
		var left []string
		for pair := working.Oldest(); pair != nil; pair = pair.Next() {
			if !placed[pair.Key] {
				left = append(left, pair.Key)
			}
		}
		return nil, &PlanningError{Kind: ResidualCycle, Jobs: left}
	}

	res.Order = order
	return res, nil
}

// expand runs the breadth-first closure over the dependency map.
func (p Planner) expand(requested []string, deps *dag.DependencyMap, jobs *job.Set, res *Result) (*workingSet, error) {
	working := orderedmap.New[string, struct{}]()
	// disabled maps each disabled prerequisite left out of the set to the
	// first dependent that required it.
	disabled := orderedmap.New[string, string]()
	var queue, roots []string

	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		if seen[name] {
			continue
		}
		seen[name] = true

		def, ok := jobs.Get(name)
		switch {
		case !ok:
			res.Notes = append(res.Notes, Note{Kind: UnknownRequested, Job: name})
		case !def.Enabled:
			res.Notes = append(res.Notes, Note{Kind: DisabledRequested, Job: name})
		default:
			working.Set(name, struct{}{})
			queue = append(queue, name)
			roots = append(roots, name)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		prereqs, _ := deps.Prerequisites(current)
		for _, dep := range prereqs {
			if dep == "" {
				continue
			}
			if _, in := working.Get(dep); in {
				continue
			}
			def, ok := jobs.Get(dep)
			if !ok {
				return nil, &PlanningError{Kind: MissingPrerequisite, Jobs: []string{dep}, Dependent: current}
			}
			if !def.Enabled {
				if p.Policy != RunDisabled {
					if _, known := disabled.Get(dep); !known {
						disabled.Set(dep, current)
						res.Notes = append(res.Notes, Note{Kind: DisabledPrerequisite, Job: dep, Cause: current})
					}
					continue
				}
				res.Notes = append(res.Notes, Note{Kind: DisabledIncluded, Job: dep, Cause: current})
			}
			working.Set(dep, struct{}{})
			queue = append(queue, dep)
		}
	}

	if p.Policy == SkipDependents && disabled.Len() > 0 {
		excluded := excludeDependents(working, disabled, deps, res)
		working = prune(working, roots, excluded, deps)
	}
	return working, nil
}

// excludeDependents returns every job in working that transitively requires
// one of the disabled prerequisites, noting each exclusion.
func excludeDependents(working *workingSet, disabled *orderedmap.OrderedMap[string, string], deps *dag.DependencyMap, res *Result) map[string]bool {
	dependents := make(map[string][]string)
	for pair := working.Oldest(); pair != nil; pair = pair.Next() {
		prereqs, _ := deps.Prerequisites(pair.Key)
		for _, dep := range prereqs {
			dependents[dep] = append(dependents[dep], pair.Key)
		}
	}

	excluded := make(map[string]bool)
	for pair := disabled.Oldest(); pair != nil; pair = pair.Next() {
		queue := []string{pair.Key}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, dependent := range dependents[current] {
				if excluded[dependent] {
					continue
				}
				excluded[dependent] = true
				res.Notes = append(res.Notes, Note{Kind: ExcludedDependent, Job: dependent, Cause: pair.Key})
				queue = append(queue, dependent)
			}
		}
	}

	return excluded
}

// prune recomputes the closure of the surviving roots inside working, so
// prerequisites that were only needed by excluded jobs are dropped too.
func prune(working *workingSet, roots []string, excluded map[string]bool, deps *dag.DependencyMap) *workingSet {
	kept := orderedmap.New[string, struct{}]()
	var queue []string
	for _, name := range roots {
		if !excluded[name] {
			kept.Set(name, struct{}{})
			queue = append(queue, name)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		prereqs, _ := deps.Prerequisites(current)
		for _, dep := range prereqs {
			if _, in := working.Get(dep); !in || excluded[dep] {
				continue
			}
			if _, in := kept.Get(dep); in {
				continue
			}
			kept.Set(dep, struct{}{})
			queue = append(queue, dep)
		}
	}
	return kept
}

// topoSort orders the working set with Kahn's algorithm. Only edges with both
// endpoints in the working set count. The ready queue is FIFO and seeded in
// working-set order.
func topoSort(working *workingSet, deps *dag.DependencyMap) []string {
	inDegree := make(map[string]int, working.Len())
	adjacency := make(map[string][]string, working.Len())

	for pair := working.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		prereqs, _ := deps.Prerequisites(name)
		for _, dep := range prereqs {
			if _, in := working.Get(dep); !in {
				continue
			}
			adjacency[dep] = append(adjacency[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for pair := working.Oldest(); pair != nil; pair = pair.Next() {
		if inDegree[pair.Key] == 0 {
			queue = append(queue, pair.Key)
		}
	}

	order := make([]string, 0, working.Len())
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, dependent := range adjacency[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}
	return order
}
