package planpilot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planpilot-ai/planpilot/internal/tools"
	"github.com/planpilot-ai/planpilot/pkg/config"
)

func TestNewApp_RequiresAPIKey(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "")
	cfg := config.Default()

	_, err := NewApp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestNewApp_WiresComponents(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "test-key")
	cfg := config.Default()
	cfg.FixturesDir = "internal/transition/testdata"

	app, err := NewApp(cfg)
	require.NoError(t, err)

	assert.NotNil(t, app.Client)
	assert.NotNil(t, app.Sessions)
	assert.NotNil(t, app.Registry)
	assert.NotNil(t, app.Fixtures.ProjectData)
	assert.Equal(t, []string{"chat", "compare", "judge", "workflow"}, app.Registry.Names())
}

func TestInvoke_UnknownToolSurfaces(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "test-key")
	app, err := NewApp(config.Default())
	require.NoError(t, err)

	_, err = app.Invoke(context.Background(), tools.Request{Tool: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available tools")
}
