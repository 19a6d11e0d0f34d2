package transition

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Fixture file names expected under the fixtures directory.
var fixtureFiles = []string{
	"project_data.json",
	"risk_logs.json",
	"comms_logs.json",
	"transition_examples.json",
}

// Fixtures holds the synthetic context documents injected into agent
// prompts. Each entry is the decoded JSON of one fixture file; absent files
// leave their entry empty.
type Fixtures struct {
	ProjectData        any
	RiskLogs           any
	CommsLogs          any
	TransitionExamples any
}

// LoadFixtures reads the fixture files from dir. A missing or unreadable
// file degrades to an empty entry with a logged warning; agents run with
// whatever context is available.
func LoadFixtures(dir string) Fixtures {
	var f Fixtures
	targets := map[string]*any{
		"project_data.json":        &f.ProjectData,
		"risk_logs.json":           &f.RiskLogs,
		"comms_logs.json":          &f.CommsLogs,
		"transition_examples.json": &f.TransitionExamples,
	}

	for _, name := range fixtureFiles {
		value, err := loadJSON(filepath.Join(dir, name))
		if err != nil {
			log.Printf("transition fixtures: %s: %v", name, err)
			continue
		}
		*targets[name] = value
	}

	return f
}

func loadJSON(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return value, nil
}

// render returns a fixture entry as prompt text. Nil entries render empty.
func render(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
