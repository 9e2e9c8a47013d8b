package timeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/scenereel/internal/system"
)

// ScenariosDir is where scenarios are looked up when none is given.
const ScenariosDir = "scenarios"

// GenerateScenarioPath creates a timestamped scenario filename inside dir
func GenerateScenarioPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scenario_%s.yaml", timestamp))
}

// FindLatestScenario finds the most recently modified scenario file in dir
func FindLatestScenario(dir string) (string, error) {
	return system.FindLatest(dir, []string{".yaml", ".yml"})
}
