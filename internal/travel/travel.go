// Package travel assembles the itinerary planning team: six agents that run
// strictly in sequence over a shared state, each contributing one artifact,
// ending in a single Markdown deliverable with embedded iCal and CSV blocks.
package travel

import (
	"context"
	"fmt"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/internal/pipeline"
)

// Artifact keys written by the team, in execution order.
const (
	KeyPreferences = "preferences_artifact"
	KeyCatalog     = "catalog_artifact"
	KeyConstraints = "constraints_artifact"
	KeyItinerary   = "itinerary_artifact"
	KeyAlternates  = "alternates_artifact"
	KeyFinal       = "final_markdown"
)

// Preferences holds the traveler's raw inputs before normalization.
type Preferences struct {
	Pace          string   `json:"pace"`
	BudgetPerDay  string   `json:"budget_per_day"`
	ActivityTypes []string `json:"activity_types"`
	MustSee       string   `json:"must_see"`
	Notes         string   `json:"notes"`
}

// Request describes one itinerary planning task.
type Request struct {
	Destination     string         `json:"destination"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	Preferences     Preferences    `json:"preferences"`
	DestinationData map[string]any `json:"destination_data"`
}

// Result carries every artifact the team produced.
type Result struct {
	Preferences   string `json:"preferences_artifact"`
	Catalog       string `json:"catalog_artifact"`
	Constraints   string `json:"constraints_artifact"`
	Itinerary     string `json:"itinerary_artifact"`
	Alternates    string `json:"alternates_artifact"`
	FinalMarkdown string `json:"final_markdown"`
}

// Team builds the six-agent pipeline in its fixed order. Every agent calls
// the same completion client with the same model.
func Team(client agent.Completer, model string) *pipeline.Pipeline {
	return pipeline.New("travel",
		&preferencesAgent{client: client, model: model},
		&catalogAgent{client: client, model: model},
		&constraintsAgent{client: client, model: model},
		&itineraryAgent{client: client, model: model},
		&alternatesAgent{client: client, model: model},
		&synthesizerAgent{client: client, model: model},
	)
}

// Run executes the full team against the request and collects the artifacts.
func Run(ctx context.Context, client agent.Completer, model string, req Request) (Result, error) {
	initial := agent.State{
		"destination":      req.Destination,
		"start_date":       req.StartDate,
		"end_date":         req.EndDate,
		"preferences":      preferencesState(req.Preferences),
		"destination_data": req.DestinationData,
	}

	final, err := Team(client, model).Execute(ctx, initial)
	if err != nil {
		return Result{}, fmt.Errorf("travel team: %w", err)
	}

	return Result{
		Preferences:   final.GetString(KeyPreferences),
		Catalog:       final.GetString(KeyCatalog),
		Constraints:   final.GetString(KeyConstraints),
		Itinerary:     final.GetString(KeyItinerary),
		Alternates:    final.GetString(KeyAlternates),
		FinalMarkdown: final.GetString(KeyFinal),
	}, nil
}

func preferencesState(p Preferences) map[string]any {
	activities := make([]any, len(p.ActivityTypes))
	for i, a := range p.ActivityTypes {
		activities[i] = a
	}
	return map[string]any{
		"pace":           p.Pace,
		"budget_per_day": p.BudgetPerDay,
		"activity_types": activities,
		"must_see":       p.MustSee,
		"notes":          p.Notes,
	}
}
