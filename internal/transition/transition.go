// Package transition runs the four-node transition analysis workflow:
// project understanding, risk analysis, communication analysis, and a
// supervisor that fans the three summaries into one leadership report.
//
// The nodes are declared as a dependency graph and compiled into a fixed
// sequential order. Risk and comms both depend only on project; declaration
// order keeps risk ahead of comms so the externally observable ordering of
// the original workflow is preserved.
package transition

import (
	"context"
	"fmt"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/internal/pipeline"
)

// Result carries the four agent outputs. Missing outputs degrade to "".
type Result struct {
	Project    string `json:"project_agent"`
	Risk       string `json:"risk_agent"`
	Comms      string `json:"comms_agent"`
	Supervisor string `json:"supervisor"`
}

// Workflow compiles the four-agent graph for the given client and model.
func Workflow(client agent.Completer, model string, fixtures Fixtures) (*pipeline.Pipeline, error) {
	g := pipeline.NewGraph("transition")

	project := &projectAgent{client: client, model: model, fixtures: fixtures}
	risk := &riskAgent{client: client, model: model, fixtures: fixtures}
	comms := &commsAgent{client: client, model: model, fixtures: fixtures}
	supervisor := &supervisorAgent{client: client, model: model, fixtures: fixtures}

	if err := g.AddNode(project); err != nil {
		return nil, err
	}
	if err := g.AddNode(risk, project.Name()); err != nil {
		return nil, err
	}
	if err := g.AddNode(comms, project.Name()); err != nil {
		return nil, err
	}
	if err := g.AddNode(supervisor, project.Name(), risk.Name(), comms.Name()); err != nil {
		return nil, err
	}

	plan, err := g.Compile()
	if err != nil {
		return nil, fmt.Errorf("transition workflow: %w", err)
	}
	return plan, nil
}

// Run executes the full workflow for one question.
func Run(ctx context.Context, client agent.Completer, model, question string, fixtures Fixtures) (Result, error) {
	plan, err := Workflow(client, model, fixtures)
	if err != nil {
		return Result{}, err
	}

	final, err := plan.Execute(ctx, agent.State{
		KeyQuestion: question,
		"model":     model,
	})
	if err != nil {
		return Result{}, fmt.Errorf("transition workflow: %w", err)
	}

	return Result{
		Project:    final.GetString(KeyProject),
		Risk:       final.GetString(KeyRisk),
		Comms:      final.GetString(KeyComms),
		Supervisor: final.GetString(KeySupervisor),
	}, nil
}
