// Package agent defines the agent contract and the shared pipeline state.
//
// An agent is a stateless unit that reads selected keys from the shared
// state, builds one role-specific prompt, invokes the completion backend,
// and returns a partial state containing exactly the artifact key it is
// responsible for producing. Agents hold no mutable state between runs.
package agent

import (
	"context"

	"github.com/planpilot-ai/planpilot/pkg/llm"
)

// Completer is the completion capability agents depend on.
// *llm.Client satisfies it; tests substitute stubs.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) string
}

// Agent is the interface all pipeline agents implement.
type Agent interface {
	// Name returns the unique identifier for this agent.
	Name() string

	// Description returns a human-readable summary of the agent's purpose.
	Description() string

	// Run reads the shared state and returns a partial state holding the
	// agent's output artifact. The input state must not be mutated. An
	// error aborts the enclosing pipeline; completion failures are not
	// errors (they surface as sentinel text inside the artifact).
	Run(ctx context.Context, state State) (State, error)
}

// Func adapts a function to the Agent interface.
type Func struct {
	AgentName string
	Desc      string
	RunFunc   func(ctx context.Context, state State) (State, error)
}

// Name returns the agent name.
func (f Func) Name() string { return f.AgentName }

// Description returns the agent description.
func (f Func) Description() string { return f.Desc }

// Run invokes the wrapped function.
func (f Func) Run(ctx context.Context, state State) (State, error) {
	return f.RunFunc(ctx, state)
}
