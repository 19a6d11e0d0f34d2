package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/pkg/llm"
)

// writerAgent writes one fixed artifact key and records the state keys it
// observed at run time.
type writerAgent struct {
	name     string
	key      string
	value    string
	observed [][]string
}

func (w *writerAgent) Name() string        { return w.name }
func (w *writerAgent) Description() string { return "test writer " + w.name }

func (w *writerAgent) Run(_ context.Context, state agent.State) (agent.State, error) {
	w.observed = append(w.observed, state.Keys())
	return agent.State{w.key: w.value}, nil
}

func TestPipeline_AccumulatesOneArtifactPerAgent(t *testing.T) {
	a1 := &writerAgent{name: "one", key: "artifact_1", value: "v1"}
	a2 := &writerAgent{name: "two", key: "artifact_2", value: "v2"}
	a3 := &writerAgent{name: "three", key: "artifact_3", value: "v3"}

	p := New("test", a1, a2, a3)
	final, err := p.Execute(context.Background(), agent.State{"input": "x"})
	require.NoError(t, err)

	// Final state = initial keys plus exactly one new key per agent.
	assert.Len(t, final, 4)
	assert.Equal(t, "x", final["input"])
	assert.Equal(t, "v1", final["artifact_1"])
	assert.Equal(t, "v2", final["artifact_2"])
	assert.Equal(t, "v3", final["artifact_3"])
}

func TestPipeline_NoAgentSeesLaterArtifacts(t *testing.T) {
	a1 := &writerAgent{name: "one", key: "artifact_1", value: "v1"}
	a2 := &writerAgent{name: "two", key: "artifact_2", value: "v2"}

	p := New("test", a1, a2)
	_, err := p.Execute(context.Background(), agent.State{"input": "x"})
	require.NoError(t, err)

	require.Len(t, a1.observed, 1)
	assert.ElementsMatch(t, []string{"input"}, a1.observed[0])

	require.Len(t, a2.observed, 1)
	assert.ElementsMatch(t, []string{"input", "artifact_1"}, a2.observed[0])
}

func TestPipeline_InitialStateNotMutated(t *testing.T) {
	a1 := &writerAgent{name: "one", key: "artifact_1", value: "v1"}

	initial := agent.State{"input": "x"}
	p := New("test", a1)
	_, err := p.Execute(context.Background(), initial)
	require.NoError(t, err)

	assert.Equal(t, agent.State{"input": "x"}, initial)
}

func TestPipeline_AgentErrorAborts(t *testing.T) {
	boom := errors.New("prompt construction failed")
	failing := agent.Func{
		AgentName: "broken",
		Desc:      "always fails",
		RunFunc: func(_ context.Context, _ agent.State) (agent.State, error) {
			return nil, boom
		},
	}
	after := &writerAgent{name: "after", key: "artifact_after", value: "v"}

	p := New("test", failing, after)
	_, err := p.Execute(context.Background(), agent.State{})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
	assert.Empty(t, after.observed, "agents after a failure must not run")
}

func TestPipeline_SentinelErrorFlowsThrough(t *testing.T) {
	// One agent in the chain produces sentinel error text, as the
	// completion client does on backend failure. The pipeline must still
	// produce every artifact.
	sentinel := llm.ErrorPrefix + " backend unreachable"
	agents := make([]agent.Agent, 0, 3)
	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("artifact_%d", i)
		value := fmt.Sprintf("content_%d", i)
		if i == 1 {
			value = sentinel
		}
		agents = append(agents, &writerAgent{name: fmt.Sprintf("a%d", i), key: key, value: value})
	}

	p := New("test", agents...)
	final, err := p.Execute(context.Background(), agent.State{})
	require.NoError(t, err)

	assert.Equal(t, "content_0", final["artifact_0"])
	assert.Equal(t, sentinel, final["artifact_1"])
	assert.Equal(t, "content_2", final["artifact_2"])
}

func TestGraph_CompileOrdersTopologically(t *testing.T) {
	g := NewGraph("workflow")
	project := &writerAgent{name: "project", key: "p", value: "1"}
	risk := &writerAgent{name: "risk", key: "r", value: "2"}
	comms := &writerAgent{name: "comms", key: "c", value: "3"}
	supervisor := &writerAgent{name: "supervisor", key: "s", value: "4"}

	require.NoError(t, g.AddNode(project))
	require.NoError(t, g.AddNode(risk, "project"))
	require.NoError(t, g.AddNode(comms, "project"))
	require.NoError(t, g.AddNode(supervisor, "project", "risk", "comms"))

	plan, err := g.Compile()
	require.NoError(t, err)

	var names []string
	for _, a := range plan.Agents() {
		names = append(names, a.Name())
	}
	// risk and comms both depend only on project; declaration order is
	// preserved between them.
	assert.Equal(t, []string{"project", "risk", "comms", "supervisor"}, names)
}

func TestGraph_UnknownDependency(t *testing.T) {
	g := NewGraph("workflow")
	require.NoError(t, g.AddNode(&writerAgent{name: "a", key: "k", value: "v"}, "ghost"))

	_, err := g.Compile()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDependency)
	assert.Contains(t, err.Error(), "ghost")
}

func TestGraph_CycleDetected(t *testing.T) {
	g := NewGraph("workflow")
	require.NoError(t, g.AddNode(&writerAgent{name: "a", key: "ka", value: "v"}, "b"))
	require.NoError(t, g.AddNode(&writerAgent{name: "b", key: "kb", value: "v"}, "a"))

	_, err := g.Compile()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycleDetected)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Len(t, cycleErr.Path, 3)
}

func TestGraph_DuplicateNode(t *testing.T) {
	g := NewGraph("workflow")
	require.NoError(t, g.AddNode(&writerAgent{name: "a", key: "k", value: "v"}))

	err := g.AddNode(&writerAgent{name: "a", key: "k2", value: "v"})
	assert.ErrorIs(t, err, ErrDuplicateNode)
}

func TestGraph_ExecuteSharesState(t *testing.T) {
	g := NewGraph("workflow")
	first := &writerAgent{name: "first", key: "artifact_first", value: "f"}
	second := &writerAgent{name: "second", key: "artifact_second", value: "s"}

	require.NoError(t, g.AddNode(first))
	require.NoError(t, g.AddNode(second, "first"))

	plan, err := g.Compile()
	require.NoError(t, err)

	final, err := plan.Execute(context.Background(), agent.State{"question": "q"})
	require.NoError(t, err)

	assert.Equal(t, "f", final["artifact_first"])
	assert.Equal(t, "s", final["artifact_second"])
	require.Len(t, second.observed, 1)
	assert.Contains(t, second.observed[0], "artifact_first")
}
