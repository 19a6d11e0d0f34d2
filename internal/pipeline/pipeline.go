// Package pipeline executes agents over a shared accumulating state.
//
// Two orchestrators are provided: Pipeline runs a flat ordered list of
// agents, and Graph compiles a declared dependency graph into a fixed
// sequential order before execution. Both guarantee strictly sequential
// execution: agent i+1 observes every artifact produced by agents 1..i and
// nothing from later agents. There is no conditional skipping, looping, or
// parallelism; a run always performs exactly one invocation per agent.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/pkg/observability"
)

// Pipeline executes a fixed ordered list of agents.
type Pipeline struct {
	name   string
	agents []agent.Agent
}

// New creates a pipeline that runs the given agents in declaration order.
func New(name string, agents ...agent.Agent) *Pipeline {
	return &Pipeline{name: name, agents: agents}
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Agents returns the agents in execution order.
func (p *Pipeline) Agents() []agent.Agent {
	out := make([]agent.Agent, len(p.agents))
	copy(out, p.agents)
	return out
}

// Execute runs every agent in order against a copy of the initial state,
// merging each agent's partial output before invoking the next. The full
// accumulated state is returned. An agent error aborts the run; completion
// failures do not surface as errors and flow through as artifact content.
func (p *Pipeline) Execute(ctx context.Context, initial agent.State) (agent.State, error) {
	state := initial.Clone()

	for i, a := range p.agents {
		log.Printf("pipeline %s: stage %d/%d (%s)", p.name, i+1, len(p.agents), a.Name())

		start := time.Now()
		partial, err := a.Run(ctx, state)
		observability.RecordAgentExecution(a.Name(), time.Since(start))
		if err != nil {
			return state, fmt.Errorf("pipeline %s: agent %s: %w", p.name, a.Name(), err)
		}

		state.Merge(partial)
	}

	return state, nil
}
