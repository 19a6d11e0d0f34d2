package transition

import (
	"context"
	"fmt"

	"github.com/planpilot-ai/planpilot/internal/agent"
	"github.com/planpilot-ai/planpilot/pkg/llm"
)

// State keys read and written by the workflow.
const (
	KeyQuestion   = "question"
	KeyProject    = "project_agent_output"
	KeyRisk       = "risk_agent_output"
	KeyComms      = "comms_agent_output"
	KeySupervisor = "supervisor_output"
)

// projectAgent interprets the question and produces a transition-aligned
// project analysis for the downstream agents.
type projectAgent struct {
	client   agent.Completer
	model    string
	fixtures Fixtures
}

func (a *projectAgent) Name() string { return "project" }

func (a *projectAgent) Description() string {
	return "Project understanding: milestones, KT progress, scope, dependencies."
}

func (a *projectAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`You are the Project Understanding Agent for an IT Transition Program.

Your job is to:
- Interpret the user's question.
- Provide transition-aligned project understanding using real transition language.
- Identify major milestones, readiness progress, KT state, gaps, ownership, and dependencies.
- Consider project metadata as part of your reasoning.
- Produce a structured summary usable by Risk, Comms, and Supervisor agents.

---------------------------------------
USER QUESTION:
%s

---------------------------------------
PROJECT METADATA:
%s

---------------------------------------
TRANSITION EXAMPLES:
(Examples of transitions, milestone definitions, KT progress, effectiveness measures)
%s

---------------------------------------
EXPECTED OUTPUT STRUCTURE (STRICT):
1. High-Level Understanding of the Ask
2. Relevant Transition Milestones & Current Status
3. Scope Clarifications & Assumptions
4. KT Progress Summary (Readiness Matrix + Risks)
5. Dependencies (Teams, Systems, SMEs, Environments)
6. Open Items / Backlog Tasks
7. Early Observed Risks (Avoid duplicating risk agent)
8. Recommended Next Steps (Actionable)

Make your response structured, crisp, and aligned with IT Transition best practices.`,
		state.GetString(KeyQuestion),
		render(a.fixtures.ProjectData),
		render(a.fixtures.TransitionExamples))

	content := a.client.Complete(ctx, llm.Request{
		Model:       a.model,
		Prompt:      prompt,
		System:      "You are an IT Transition Project Lead with deep expertise in migrations, KT, and hypercare.",
		Temperature: 0.1,
	})
	return agent.State{KeyProject: content}, nil
}

// riskAgent classifies and assesses transition risks using the project
// summary and synthetic risk logs.
type riskAgent struct {
	client   agent.Completer
	model    string
	fixtures Fixtures
}

func (a *riskAgent) Name() string { return "risk" }

func (a *riskAgent) Description() string {
	return "Risk analysis: severity, root causes, mitigation, early warnings."
}

func (a *riskAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`You are the RISK ANALYST AGENT for an IT Transition & KT Program.

Your responsibilities:
- Identify, classify, and assess risks that affect timeline, KT effectiveness, documentation, environment setup, and delivery.
- Use the risk logs for realistic patterns.
- Use project metadata and the Project Agent's understanding as context.
- Provide mitigation steps that are specific and actionable.

---------------------------------------
USER QUESTION:
%s

---------------------------------------
PROJECT AGENT SUMMARY:
%s

---------------------------------------
PROJECT METADATA:
%s

---------------------------------------
RISK LOGS:
%s

---------------------------------------
TRANSITION EXAMPLES (for context and patterns):
%s

---------------------------------------
EXPECTED OUTPUT STRUCTURE (STRICT):
1. Key Transition Risks
2. Severity & Likelihood Assessment
3. Root Cause Analysis
4. Dependencies & Blockers
5. Mitigation Recommendations (Specific, Actionable)
6. Risk Heat-Map Categorization (Critical / High / Medium / Low)
7. Early Warning Indicators
8. Required Stakeholder Actions

Ensure clarity, avoid generic answers, and reference the log data where appropriate.`,
		state.GetString(KeyQuestion),
		state.GetString(KeyProject),
		render(a.fixtures.ProjectData),
		render(a.fixtures.RiskLogs),
		render(a.fixtures.TransitionExamples))

	content := a.client.Complete(ctx, llm.Request{
		Model:       a.model,
		Prompt:      prompt,
		System:      "You are an expert IT Transition & Program Risk Manager. Be precise, structured, and directly linked to transition execution.",
		Temperature: 0.15,
	})
	return agent.State{KeyRisk: content}, nil
}

// commsAgent reviews stakeholder alignment and communication quality.
type commsAgent struct {
	client   agent.Completer
	model    string
	fixtures Fixtures
}

func (a *commsAgent) Name() string { return "comms" }

func (a *commsAgent) Description() string {
	return "Communication analysis: stakeholder alignment, cadence, escalation paths."
}

func (a *commsAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`You are the Communication Analysis Agent in an IT Transition & Risk Tracking system.

Your responsibilities:
- Identify stakeholder misalignment.
- Detect communication gaps that may cause delays or misinterpretations.
- Review cadence & escalation maturity.
- Evaluate KT knowledge flow and documentation quality.
- Measure how well teams collaborate across onshore/offshore.
- Highlight areas where poor communication increases risk.

Use the context below:

-------------------------------------
USER QUESTION:
%s

-------------------------------------
PROJECT AGENT SUMMARY:
%s

-------------------------------------
PROJECT METADATA:
%s

-------------------------------------
COMMUNICATION LOGS:
%s

-------------------------------------
EXPECTED OUTPUT STRUCTURE:
Provide a clear structured analysis:

1. Stakeholder Alignment Issues
2. Weak Communication Channels
3. Cadence & Escalation Quality
4. Documentation / KT Gaps
5. Collaboration Score (with reasoning)
6. Communication-Based Risks
7. Recommendations & Fixes (actionable)

Ensure clarity, avoid generic statements, and reference the log data where useful.`,
		state.GetString(KeyQuestion),
		state.GetString(KeyProject),
		render(a.fixtures.ProjectData),
		render(a.fixtures.CommsLogs))

	content := a.client.Complete(ctx, llm.Request{
		Model:       a.model,
		Prompt:      prompt,
		System:      "You are an expert Communication Analyst for IT Transition Programs.",
		Temperature: 0.2,
	})
	return agent.State{KeyComms: content}, nil
}

// supervisorAgent fans in the three upstream summaries into a final
// leadership-ready report.
type supervisorAgent struct {
	client   agent.Completer
	model    string
	fixtures Fixtures
}

func (a *supervisorAgent) Name() string { return "supervisor" }

func (a *supervisorAgent) Description() string {
	return "Final synthesis: executive summary, top risks, actions, outlook."
}

func (a *supervisorAgent) Run(ctx context.Context, state agent.State) (agent.State, error) {
	prompt := fmt.Sprintf(`You are the SUPERVISOR AGENT in an IT Transition Program.

Your job is to consolidate the outputs of multiple agents and provide
a final, leadership-ready summary.

---------------------------------------
PROJECT AGENT SUMMARY:
%s

---------------------------------------
RISK AGENT SUMMARY:
%s

---------------------------------------
COMMUNICATION AGENT SUMMARY:
%s

---------------------------------------
PROJECT METADATA:
%s

---------------------------------------
TRANSITION EXAMPLES (for reasoning patterns):
%s

---------------------------------------
EXPECTED OUTPUT STRUCTURE (STRICT):
1. Executive Transition Summary
2. Top 5 Risks Leadership Should Be Aware Of
3. Critical Dependencies & Impact Assessment
4. Stakeholder Alignment Summary
5. Metric Recommendations (Weekly KPIs)
6. Required Customer Actions (Clear, Actionable)
7. Required Internal Actions (Clear, Actionable)
8. Readiness Score (0-100) with justification
9. 7-Day Outlook (What will matter next week)

Tone:
- Concise
- Executive-level
- Insightful
- Data-informed
- No repetition of raw agent outputs`,
		state.GetString(KeyProject),
		state.GetString(KeyRisk),
		state.GetString(KeyComms),
		render(a.fixtures.ProjectData),
		render(a.fixtures.TransitionExamples))

	content := a.client.Complete(ctx, llm.Request{
		Model:       a.model,
		Prompt:      prompt,
		System:      "You are the Program Director for a large-scale IT Transition. Your job is to synthesize signals from multiple teams and provide clear guidance to leadership.",
		Temperature: 0.15,
	})
	return agent.State{KeySupervisor: content}, nil
}
