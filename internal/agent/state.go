package agent

import (
	"encoding/json"
	"fmt"
)

// State is the accumulating mapping passed through a pipeline. Each agent's
// partial output is merged into it before the next agent runs. Merges are
// additive or overwriting; keys are never removed. A State lives for one
// pipeline invocation and is discarded afterwards.
type State map[string]any

// Clone returns a shallow copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge copies every entry of partial into the state, overwriting keys that
// already exist. By convention artifact keys are unique to one agent, so
// overwrites do not occur in practice.
func (s State) Merge(partial State) {
	for k, v := range partial {
		s[k] = v
	}
}

// GetString returns the value at key as a string. A missing key or a
// non-string value degrades silently to the empty string; prompt builders
// proceed with whatever context is available.
func (s State) GetString(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

// Render returns the value at key as text suitable for prompt
// interpolation: strings pass through, structured values are rendered as
// JSON, and a missing key becomes the empty string.
func (s State) Render(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// Keys returns the state's keys in unspecified order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}
