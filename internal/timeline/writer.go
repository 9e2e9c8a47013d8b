package timeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteScenario writes a scenario to a YAML file
func WriteScenario(scenario *Scenario, path string) error {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScenario reads a scenario from a YAML file
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// ScenarioVersion is the major format version this build reads.
const ScenarioVersion = "1"

// Validate checks the scenario header. Zero values keep their defaults;
// events are checked by Load.
func (s *Scenario) Validate() error {
	if s.Version != "" {
		if major, _, _ := strings.Cut(s.Version, "."); major != ScenarioVersion {
			return fmt.Errorf("unsupported scenario version %q", s.Version)
		}
	}
	if s.FPS < 0 {
		return fmt.Errorf("invalid fps %d", s.FPS)
	}
	if s.DurationInFrames < 0 {
		return fmt.Errorf("invalid durationInFrames %d", s.DurationInFrames)
	}
	if s.FallbackDuration != nil && *s.FallbackDuration < 0 {
		return fmt.Errorf("invalid fallbackDuration %d", *s.FallbackDuration)
	}
	for id, d := range s.Sounds {
		if d < 0 {
			return fmt.Errorf("sound %q: invalid duration %d", id, d)
		}
	}
	return nil
}
