// Package graph implements the directed acyclic graph of task dependencies
// that drives pipeline scheduling.
package graph

import (
	"fmt"
	"sort"
)

// Graph is a directed acyclic graph of task names. Edges point from a task
// to the tasks that depend on it.
type Graph struct {
	nodes      map[string]struct{}
	downstream map[string][]string // task -> tasks that depend on it
	upstream   map[string][]string // task -> tasks it depends on
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]struct{}),
		downstream: make(map[string][]string),
		upstream:   make(map[string][]string),
	}
}

// AddTask registers a task node. Adding the same task twice is an error.
func (g *Graph) AddTask(name string) error {
	if name == "" {
		return fmt.Errorf("task name must not be empty")
	}
	if _, ok := g.nodes[name]; ok {
		return fmt.Errorf("task '%s' is already registered", name)
	}
	g.nodes[name] = struct{}{}
	return nil
}

// AddEdge declares that 'to' depends on 'from'. Both tasks must already be
// registered.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("unknown task '%s' in edge %s -> %s", from, from, to)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("unknown task '%s' in edge %s -> %s", to, from, to)
	}
	if from == to {
		return fmt.Errorf("self-dependency on task '%s'", from)
	}
	for _, existing := range g.downstream[from] {
		if existing == to {
			return fmt.Errorf("duplicate edge %s -> %s", from, to)
		}
	}
	g.downstream[from] = append(g.downstream[from], to)
	g.upstream[to] = append(g.upstream[to], from)
	return nil
}

// Tasks returns all registered task names in sorted order.
func (g *Graph) Tasks() []string {
	names := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether the named task is registered.
func (g *Graph) Contains(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Dependencies returns the direct upstream tasks of the named task.
func (g *Graph) Dependencies(name string) []string {
	deps := make([]string, len(g.upstream[name]))
	copy(deps, g.upstream[name])
	sort.Strings(deps)
	return deps
}

// Dependents returns the direct downstream tasks of the named task.
func (g *Graph) Dependents(name string) []string {
	deps := make([]string, len(g.downstream[name]))
	copy(deps, g.downstream[name])
	sort.Strings(deps)
	return deps
}

// TransitiveDependents returns every task reachable downstream of the named
// task, in sorted order.
func (g *Graph) TransitiveDependents(name string) []string {
	visited := make(map[string]struct{})
	var walk func(n string)
	walk = func(n string) {
		for _, d := range g.downstream[n] {
			if _, ok := visited[d]; ok {
				continue
			}
			visited[d] = struct{}{}
			walk(d)
		}
	}
	walk(name)
	out := make([]string, 0, len(visited))
	for n := range visited {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Roots returns tasks with no upstream dependencies, in sorted order.
func (g *Graph) Roots() []string {
	var roots []string
	for n := range g.nodes {
		if len(g.upstream[n]) == 0 {
			roots = append(roots, n)
		}
	}
	sort.Strings(roots)
	return roots
}

// Validate checks that the graph is non-empty and acyclic. The error for a
// cycle names one task on the cycle.
func (g *Graph) Validate() error {
	if len(g.nodes) == 0 {
		return fmt.Errorf("graph has no tasks")
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.nodes))
	var visit func(n string) error
	visit = func(n string) error {
		color[n] = gray
		for _, d := range g.downstream[n] {
			switch color[d] {
			case gray:
				return fmt.Errorf("dependency cycle detected involving task '%s'", d)
			case white:
				if err := visit(d); err != nil {
					return err
				}
			}
		}
		color[n] = black
		return nil
	}
	for _, n := range g.Tasks() {
		if color[n] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopologicalOrder returns the tasks in a valid execution order. Tasks at
// the same depth are ordered lexicographically for determinism.
func (g *Graph) TopologicalOrder() ([]string, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	inDegree := make(map[string]int, len(g.nodes))
	for n := range g.nodes {
		inDegree[n] = len(g.upstream[n])
	}
	ready := g.Roots()
	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		sort.Strings(ready)
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, d := range g.downstream[n] {
			inDegree[d]--
			if inDegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}
	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("dependency cycle detected")
	}
	return order, nil
}
