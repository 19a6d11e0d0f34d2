package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Clone(t *testing.T) {
	s := State{"a": "1", "b": 2}
	c := s.Clone()

	c["a"] = "changed"
	c["c"] = "new"

	assert.Equal(t, "1", s["a"])
	assert.NotContains(t, s, "c")
}

func TestState_Merge(t *testing.T) {
	s := State{"a": "1"}
	s.Merge(State{"b": "2"})

	assert.Equal(t, State{"a": "1", "b": "2"}, s)
}

func TestState_MergeOverwrites(t *testing.T) {
	s := State{"a": "old"}
	s.Merge(State{"a": "new"})

	assert.Equal(t, "new", s["a"])
}

func TestState_GetString(t *testing.T) {
	s := State{"str": "value", "num": 42}

	assert.Equal(t, "value", s.GetString("str"))
	assert.Equal(t, "", s.GetString("num"))
	assert.Equal(t, "", s.GetString("missing"))
}

func TestState_Render(t *testing.T) {
	s := State{
		"str":    "plain",
		"nested": map[string]any{"k": "v"},
		"nil":    nil,
	}

	assert.Equal(t, "plain", s.Render("str"))
	assert.Equal(t, `{"k":"v"}`, s.Render("nested"))
	assert.Equal(t, "", s.Render("nil"))
	assert.Equal(t, "", s.Render("missing"))
}

func TestFunc_ImplementsAgent(t *testing.T) {
	var a Agent = Func{
		AgentName: "noop",
		Desc:      "does nothing",
		RunFunc: func(_ context.Context, _ State) (State, error) {
			return State{"out": "done"}, nil
		},
	}

	assert.Equal(t, "noop", a.Name())
	assert.Equal(t, "does nothing", a.Description())

	out, err := a.Run(context.Background(), State{})
	assert.NoError(t, err)
	assert.Equal(t, State{"out": "done"}, out)
}
