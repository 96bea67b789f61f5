package dag

import (
	"github.com/vk/backupctl/internal/job"
)

// Validate checks the dependency map against the job definitions and returns
// every problem found. An empty result means the graph is structurally sound
// and acyclic. Inputs are never modified.
func Validate(jobs *job.Set, deps *DependencyMap) Messages {
	var msgs Messages
	if deps == nil {
		return msgs
	}
	msgs = append(msgs, checkReferences(jobs, deps)...)
	msgs = append(msgs, detectCycles(deps)...)
	return msgs
}

// ValidateJobs builds the map for jobs and validates it.
func ValidateJobs(jobs *job.Set) Messages {
	return Validate(jobs, BuildMap(jobs))
}

// checkReferences reports blank, missing and disabled prerequisites, one
// message per offending entry.
func checkReferences(jobs *job.Set, deps *DependencyMap) Messages {
	var msgs Messages
	for _, name := range deps.Names() {
		for i, target := range deps.prerequisitesOf(name) {
			switch def, ok := jobs.Get(target); {
			case target == "":
				msgs = append(msgs, ValidationMessage{Kind: KindBlank, Job: name, Position: i})
			case !ok:
				msgs = append(msgs, ValidationMessage{Kind: KindMissing, Job: name, Target: target})
			case !def.Enabled:
				msgs = append(msgs, ValidationMessage{Kind: KindDisabled, Job: name, Target: target})
			}
		}
	}
	return msgs
}

// detectCycles walks the map depth-first with three colours. visiting holds the
// nodes on the current DFS stack, processed the nodes whose prerequisites have
// all been explored. Only prerequisites that are themselves keys of the map
// are followed.
//
// A back-edge to a visiting node reports the cycle it closes and ends that
// branch only; the node's remaining prerequisites are still explored. Every
// node is entered once, so each back-edge and therefore each cycle found is
// reported once.
func detectCycles(deps *DependencyMap) Messages {
	var msgs Messages
	visiting := make(map[string]bool)
	processed := make(map[string]bool)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		visiting[name] = true
		stack = append(stack, name)

		for _, dep := range deps.prerequisitesOf(name) {
			switch {
			case !deps.Has(dep) || processed[dep]:
				continue
			case visiting[dep]:
				path := cyclePath(stack, dep)
				msgs = append(msgs, ValidationMessage{Kind: KindCycle, Job: path[0], Path: path})
			default:
				visit(dep)
			}
		}

		stack = stack[:len(stack)-1]
		delete(visiting, name)
		processed[name] = true
	}

	for _, root := range deps.Names() {
		if !processed[root] {
			visit(root)
		}
	}
	return msgs
}

// cyclePath extracts the cycle closed by a back-edge to target from the DFS
// stack, e.g. [A B C] + A gives A -> B -> C -> A.
func cyclePath(stack []string, target string) []string {
	start := 0
	for i, name := range stack {
		if name == target {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	return append(path, target)
}
