// Package planpilot wires the configuration, completion client, tool
// registry, and HTTP server into one application.
package planpilot

import (
	"context"
	"fmt"
	"log"

	"github.com/planpilot-ai/planpilot/internal/chat"
	"github.com/planpilot-ai/planpilot/internal/server"
	"github.com/planpilot-ai/planpilot/internal/tools"
	"github.com/planpilot-ai/planpilot/internal/transition"
	"github.com/planpilot-ai/planpilot/internal/travel"
	"github.com/planpilot-ai/planpilot/pkg/config"
	"github.com/planpilot-ai/planpilot/pkg/llm"
)

// App is the assembled service: one completion client, one session store,
// one tool registry, one HTTP server.
type App struct {
	Config   *config.Config
	Client   *llm.Client
	Sessions *chat.Store
	Fixtures transition.Fixtures
	Registry *tools.Registry

	httpServer *server.Server
}

// NewApp builds the application from a validated config.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := llm.New(cfg.BaseURL, cfg.APIKey, cfg.DefaultAgentModel, cfg.Temperature)
	sessions := chat.NewStore()
	fixtures := transition.LoadFixtures(cfg.FixturesDir)
	registry := tools.NewRegistry(client, cfg, sessions, fixtures)

	return &App{
		Config:     cfg,
		Client:     client,
		Sessions:   sessions,
		Fixtures:   fixtures,
		Registry:   registry,
		httpServer: server.New(registry, cfg.HTTPPort),
	}, nil
}

// Load builds the application from a YAML config file.
func Load(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log.Printf("loaded config: base_url=%s models=%d fixtures=%s",
		cfg.BaseURL, len(cfg.Models), cfg.FixturesDir)

	return NewApp(cfg)
}

// Serve blocks serving HTTP until the listener fails or Shutdown is called.
func (a *App) Serve() error {
	return a.httpServer.Start()
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}

// Invoke dispatches one tool request outside the HTTP surface.
func (a *App) Invoke(ctx context.Context, req tools.Request) (map[string]any, error) {
	return a.Registry.Invoke(ctx, req)
}

// PlanTrip runs the six-agent travel team.
func (a *App) PlanTrip(ctx context.Context, model string, req travel.Request) (travel.Result, error) {
	return travel.Run(ctx, a.Client, a.Config.Resolve(modelOrDefault(model, a.Config.DefaultAgentModel)), req)
}

// RunTransition runs the four-agent transition workflow.
func (a *App) RunTransition(ctx context.Context, model, question string) (transition.Result, error) {
	return transition.Run(ctx, a.Client,
		a.Config.Resolve(modelOrDefault(model, a.Config.DefaultAgentModel)), question, a.Fixtures)
}

func modelOrDefault(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
