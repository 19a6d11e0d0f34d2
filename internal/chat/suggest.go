package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/pkg/llm"
)

// FallbackSuggestions is returned whenever the model's output cannot be
// used as a suggestion list.
var FallbackSuggestions = []string{
	"What are the top risks I should focus on next?",
	"Which dependencies may delay the transition?",
	"What metrics should I track weekly?",
}

// SuggestFollowups asks the model for three follow-up questions based on
// the latest exchange. The second return value reports whether the model's
// own output was used: a response that is not a JSON array of at least
// three strings falls back to FallbackSuggestions and returns false.
func SuggestFollowups(ctx context.Context, client agent.Completer, model, userMsg, botMsg string) ([]string, bool) {
	prompt := fmt.Sprintf(`You are assisting in an IT Transition Chatbot.

Given:
User said: %s
Assistant answered: %s

Suggest 3 meaningful follow-up questions that the user may ask next.
Return ONLY a JSON list of strings: ["q1", "q2", "q3"].`, userMsg, botMsg)

	raw := client.Complete(ctx, llm.Request{
		Model:       model,
		Prompt:      prompt,
		System:      "You generate follow-up questions only.",
		Temperature: 0.1,
	})

	if suggestions, ok := parseSuggestions(raw); ok {
		return suggestions, true
	}

	out := make([]string, len(FallbackSuggestions))
	copy(out, FallbackSuggestions)
	return out, false
}

// parseSuggestions accepts a JSON array of at least three strings and
// returns the first three. Anything else is rejected.
func parseSuggestions(raw string) ([]string, bool) {
	var items []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &items); err != nil {
		return nil, false
	}
	if len(items) < 3 {
		return nil, false
	}
	return items[:3], true
}
