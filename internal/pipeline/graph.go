package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/planpilot-ai/planpilot/internal/agent"
)

var (
	// ErrCycleDetected is returned when the node graph contains a cycle.
	ErrCycleDetected = errors.New("dependency cycle detected")

	// ErrUnknownDependency is returned when a node depends on an
	// undeclared node.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrDuplicateNode is returned when a node name is declared twice.
	ErrDuplicateNode = errors.New("duplicate node")
)

// CycleError reports the path of a detected dependency cycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Is allows errors.Is(err, ErrCycleDetected) to match CycleError.
func (e *CycleError) Is(target error) bool { return target == ErrCycleDetected }

type graphNode struct {
	agent agent.Agent
	deps  []string
}

// Graph declares agents as named nodes with explicit dependency edges.
// Compile validates the graph and fixes the execution order once; the
// compiled Pipeline is then invoked per request with a fresh initial state.
//
// Ordering is topological with declaration order as the tie-break, so
// independent nodes run in the order they were added. The transition
// workflow relies on this to keep its externally observable
// risk-before-comms ordering even though neither depends on the other.
type Graph struct {
	name  string
	order []string
	nodes map[string]graphNode
}

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{name: name, nodes: make(map[string]graphNode)}
}

// AddNode declares an agent as a node with the given dependencies.
func (g *Graph) AddNode(a agent.Agent, deps ...string) error {
	name := a.Name()
	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, name)
	}

	copied := make([]string, len(deps))
	copy(copied, deps)

	g.nodes[name] = graphNode{agent: a, deps: copied}
	g.order = append(g.order, name)
	return nil
}

// Compile validates the graph and returns a Pipeline with a fixed
// sequential execution order honoring every declared edge.
func (g *Graph) Compile() (*Pipeline, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	// Kahn's algorithm, scanning candidates in declaration order so ties
	// resolve deterministically.
	inDegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string)
	for _, name := range g.order {
		node := g.nodes[name]
		inDegree[name] = len(node.deps)
		for _, dep := range node.deps {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	agents := make([]agent.Agent, 0, len(g.nodes))
	scheduled := make(map[string]bool, len(g.nodes))

	for len(agents) < len(g.nodes) {
		progressed := false
		for _, name := range g.order {
			if scheduled[name] || inDegree[name] != 0 {
				continue
			}
			scheduled[name] = true
			agents = append(agents, g.nodes[name].agent)
			for _, d := range dependents[name] {
				inDegree[d]--
			}
			progressed = true
		}
		if !progressed {
			// Unreachable after validate, kept as a guard.
			return nil, ErrCycleDetected
		}
	}

	return New(g.name, agents...), nil
}

// validate checks for unknown dependencies and cycles using DFS coloring.
func (g *Graph) validate() error {
	for _, name := range g.order {
		for _, dep := range g.nodes[name].deps {
			if _, exists := g.nodes[dep]; !exists {
				return fmt.Errorf("%w: node %q depends on unknown node %q",
					ErrUnknownDependency, name, dep)
			}
		}
	}

	// Colors: 0=white (unvisited), 1=gray (visiting), 2=black (visited)
	colors := make(map[string]int)
	var stack []string

	var dfs func(name string) error
	dfs = func(name string) error {
		if colors[name] == 1 {
			cycleStart := 0
			for i, n := range stack {
				if n == name {
					cycleStart = i
					break
				}
			}
			return &CycleError{Path: append(append([]string{}, stack[cycleStart:]...), name)}
		}
		if colors[name] == 2 {
			return nil
		}

		colors[name] = 1
		stack = append(stack, name)

		for _, dep := range g.nodes[name].deps {
			if err := dfs(dep); err != nil {
				return err
			}
		}

		colors[name] = 2
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, name := range g.order {
		if colors[name] == 0 {
			if err := dfs(name); err != nil {
				return err
			}
		}
	}

	return nil
}
