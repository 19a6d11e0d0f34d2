package travel

import (
	"context"
	"fmt"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/pkg/llm"
)

// preferencesAgent normalizes raw traveler preferences into actionable
// constraints.
type preferencesAgent struct {
	client agent.Completer
	model  string
}

func (a *preferencesAgent) Name() string { return "preferences" }

func (a *preferencesAgent) Description() string {
	return "Normalize and expand user preferences into actionable constraints."
}

func (a *preferencesAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`You are a travel preference normalizer. Convert raw preferences into actionable constraints:
- Activity types (e.g., museums, food, nature)
- Pace (relaxed/medium/fast)
- Budget per day (currency retained)
- Time windows, meal preferences, accessibility needs
- Hard constraints (must-see items), soft constraints (nice-to-have)

Raw preferences:
%s
Output JSON with keys: activity_types, pace, budget_per_day, must_see, soft_constraints, accessibility, time_windows, meal_prefs.`,
		state.Render("preferences"))

	content := a.client.Complete(ctx, llm.Request{Model: a.model, Prompt: prompt})
	return agent.State{KeyPreferences: content}, nil
}

// catalogAgent summarizes destination data into a compact attraction catalog.
type catalogAgent struct {
	client agent.Completer
	model  string
}

func (a *catalogAgent) Name() string { return "catalog" }

func (a *catalogAgent) Description() string {
	return "Summarize destination data (attractions, hours, fees, coords, transit)."
}

func (a *catalogAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`You are a destination data summarizer. Given structured/partial data, produce a compact catalog:
- Attractions (name, category, opening hours, entry fees, coords)
- Transit options (public/cabs/walking times)
- Seasonal notes/weather constraints
- Booking requirements and typical crowds

Destination:
%s

Output Markdown and a JSON block named 'catalog' with fields described above.`,
		state.Render("destination_data"))

	content := a.client.Complete(ctx, llm.Request{Model: a.model, Prompt: prompt})
	return agent.State{KeyCatalog: content}, nil
}

// constraintsAgent consolidates hard and soft constraints from the upstream
// artifacts and the trip window.
type constraintsAgent struct {
	client agent.Completer
	model  string
}

func (a *constraintsAgent) Name() string { return "constraints" }

func (a *constraintsAgent) Description() string {
	return "Consolidate hard constraints from preferences, availability, and timing."
}

func (a *constraintsAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	trip := fmt.Sprintf("destination=%s start_date=%s end_date=%s",
		state.GetString("destination"), state.GetString("start_date"), state.GetString("end_date"))

	prompt := fmt.Sprintf(`Unify constraints for itinerary planning:
- Trip window: %s
- Preferences summary (JSON/text allowed)
- Destination catalog summary (JSON/text allowed)

Goal: Produce hard constraints (opening hours, budget caps, must-see items, transit limitations) and soft constraints.

Inputs:
Preferences:
%s
Catalog:
%s

Return a JSON 'constraints' object with keys: calendar_days, daily_time_bands, budget_cap, must_do, avoid, transit_limits.`,
		trip, state.GetString(KeyPreferences), state.GetString(KeyCatalog))

	content := a.client.Complete(ctx, llm.Request{Model: a.model, Prompt: prompt})
	return agent.State{KeyConstraints: content}, nil
}

// itineraryAgent plans the day-by-day schedule.
type itineraryAgent struct {
	client agent.Completer
	model  string
}

func (a *itineraryAgent) Name() string { return "itinerary" }

func (a *itineraryAgent) Description() string {
	return "Create the day-by-day schedule with time slots, locations, transit, and fees."
}

func (a *itineraryAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`Plan a coherent day-by-day itinerary based on constraints:
- Include time slots, locations, transit modes/times, expected fees
- Respect opening hours and budget cap
- Spread must-see items across the trip window
- Include short breaks/meals; note reservations if needed

Constraints JSON:
%s

Output:
1) Markdown itinerary per day
2) JSON object 'itinerary' with day -> [events], where each event has: start_time, end_time, title, location, transit, fee, notes.`,
		state.GetString(KeyConstraints))

	content := a.client.Complete(ctx, llm.Request{Model: a.model, Prompt: prompt})
	return agent.State{KeyItinerary: content}, nil
}

// alternatesAgent suggests per-slot alternatives for flexibility.
type alternatesAgent struct {
	client agent.Completer
	model  string
}

func (a *alternatesAgent) Name() string { return "alternates" }

func (a *alternatesAgent) Description() string {
	return "Suggest alternates per slot for flexibility (e.g., weather changes)."
}

func (a *alternatesAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`For each itinerary event, suggest 2 alternates (indoor/outdoor or cost-friendly/premium).
Consider weather, crowding, and same-day transit feasibility.

Itinerary JSON/Markdown:
%s

Return Markdown section 'Alternates' and JSON 'alternates' mapping event IDs to two alternatives.`,
		state.GetString(KeyItinerary))

	content := a.client.Complete(ctx, llm.Request{Model: a.model, Prompt: prompt})
	return agent.State{KeyAlternates: content}, nil
}

// synthesizerAgent merges everything into the final deliverable.
type synthesizerAgent struct {
	client agent.Completer
	model  string
}

func (a *synthesizerAgent) Name() string { return "synthesizer" }

func (a *synthesizerAgent) Description() string {
	return "Merge itinerary, alternates, and export blocks (iCal, CSV)."
}

func (a *synthesizerAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`Synthesize a final deliverable:
- Executive summary
- Markdown itinerary
- Alternates section
- iCal (VCALENDAR) snippet with events
- CSV with columns: day, start_time, end_time, title, location, transit, fee
Ensure consistent times within the trip window.

Inputs:
Constraints:
%s
Itinerary:
%s
Alternates:
%s

Output a single Markdown document including code blocks for iCal and CSV.`,
		state.GetString(KeyConstraints), state.GetString(KeyItinerary), state.GetString(KeyAlternates))

	content := a.client.Complete(ctx, llm.Request{Model: a.model, Prompt: prompt})
	return agent.State{KeyFinal: content}, nil
}
