// Package tools is the dispatch boundary between the HTTP surface and the
// pipelines. Every capability is a named tool taking one uniform request
// shape and returning a JSON-friendly map.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/internal/chat"
	"github.com/planpilot-ai/planpilot/internal/transition"
	"github.com/planpilot-ai/planpilot/pkg/config"
	"github.com/planpilot-ai/planpilot/pkg/llm"
)

// ErrUnknownTool is returned by Invoke for a tool name that is not
// registered. The wrapped message lists the registered names.
var ErrUnknownTool = errors.New("unknown tool")

// Request is the uniform tool invocation payload. Model, Input, and Extra
// are optional; each tool applies its own defaults.
type Request struct {
	Tool  string         `json:"tool"`
	Model string         `json:"model,omitempty"`
	Input string         `json:"input,omitempty"`
	Extra map[string]any `json:"extra,omitempty"`
}

// Handler executes one tool and returns its JSON-friendly result.
type Handler func(ctx context.Context, req Request) (map[string]any, error)

// Registry holds the fixed tool set: chat, workflow, compare, judge.
type Registry struct {
	client   agent.Completer
	cfg      *config.Config
	sessions *chat.Store
	fixtures transition.Fixtures
	handlers map[string]Handler
}

// NewRegistry wires the four tools against the given client and config.
func NewRegistry(client agent.Completer, cfg *config.Config, sessions *chat.Store, fixtures transition.Fixtures) *Registry {
	r := &Registry{
		client:   client,
		cfg:      cfg,
		sessions: sessions,
		fixtures: fixtures,
	}
	r.handlers = map[string]Handler{
		"chat":     r.chatTool,
		"workflow": r.workflowTool,
		"compare":  r.compareTool,
		"judge":    r.judgeTool,
	}
	return r
}

// Register installs or replaces a tool handler.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches the request to its tool. An unregistered tool name
// returns ErrUnknownTool listing the valid names; any other error comes
// from the tool itself.
func (r *Registry) Invoke(ctx context.Context, req Request) (map[string]any, error) {
	handler, ok := r.handlers[req.Tool]
	if !ok {
		return nil, fmt.Errorf("%w '%s'. Available tools: [%s]",
			ErrUnknownTool, req.Tool, strings.Join(r.Names(), ", "))
	}
	return handler(ctx, req)
}

// chatTool answers one conversational turn with session history and
// returns follow-up suggestions alongside the session id.
func (r *Registry) chatTool(ctx context.Context, req Request) (map[string]any, error) {
	model := r.resolve(req.Model, r.cfg.DefaultChatModel)
	session := r.sessions.Get(extraString(req.Extra, "session_id"))

	prompt := fmt.Sprintf(`You are an IT Transition & Risk Tracking Chatbot.

Conversation so far:
%s

New user message:
%s

Respond concisely, but with actionable insights.`, session.History(), req.Input)

	answer := r.client.Complete(ctx, llm.Request{
		Model:       model,
		Prompt:      prompt,
		System:      "You are an expert in IT Transition, KT, and Risk Management.",
		Temperature: 0.2,
	})

	session.Append("user", req.Input)
	session.Append("assistant", answer)

	suggestions, _ := chat.SuggestFollowups(ctx, r.client, model, req.Input, answer)

	return map[string]any{
		"answer":      answer,
		"suggestions": suggestions,
		"session_id":  session.ID(),
	}, nil
}

// workflowTool runs the four-agent transition workflow.
func (r *Registry) workflowTool(ctx context.Context, req Request) (map[string]any, error) {
	model := r.resolve(req.Model, r.cfg.DefaultAgentModel)

	result, err := transition.Run(ctx, r.client, model, req.Input, r.fixtures)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"project_agent": result.Project,
		"risk_agent":    result.Risk,
		"comms_agent":   result.Comms,
		"supervisor":    result.Supervisor,
	}, nil
}

// compareTool answers the same question with two models.
func (r *Registry) compareTool(ctx context.Context, req Request) (map[string]any, error) {
	model1 := r.resolve(req.Model, r.cfg.DefaultCompareModel)
	model2 := r.resolve(extraString(req.Extra, "model2"), r.cfg.DefaultCompareModel)

	ans1 := r.client.Complete(ctx, llm.Request{Model: model1, Prompt: req.Input})
	ans2 := r.client.Complete(ctx, llm.Request{Model: model2, Prompt: req.Input})

	return map[string]any{
		"model_1":  model1,
		"model_2":  model2,
		"answer_1": ans1,
		"answer_2": ans2,
	}, nil
}

// judgeTool picks the better of two answers to the same question.
func (r *Registry) judgeTool(ctx context.Context, req Request) (map[string]any, error) {
	model := r.resolve(req.Model, r.cfg.DefaultJudgeModel)
	ans1 := extraString(req.Extra, "answer_1")
	ans2 := extraString(req.Extra, "answer_2")

	prompt := fmt.Sprintf(`You are a Senior IT Transition Architect.

Question:
%s

Answer A:
%s

Answer B:
%s

Compare A and B across:
- Relevance to transition
- Risk identification quality
- Clarity & depth
- Actionability
- Alignment with transition best practices

Return:
1. A short comparison
2. A final verdict strictly in format: "Winner: A" or "Winner: B"`, req.Input, ans1, ans2)

	verdict := r.client.Complete(ctx, llm.Request{
		Model:  model,
		Prompt: prompt,
		System: "You are an expert LLM Judge for IT Transition.",
	})

	return map[string]any{"comparison": verdict}, nil
}

// resolve maps a model label or id through the registry, falling back to
// the given default when the request carries none.
func (r *Registry) resolve(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return r.cfg.Resolve(model)
}

func extraString(extra map[string]any, key string) string {
	if extra == nil {
		return ""
	}
	if v, ok := extra[key].(string); ok {
		return v
	}
	return ""
}
