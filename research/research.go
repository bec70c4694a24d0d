// Package research validates the inputs the daily research workflow needs
// and can seed stub outputs. It does no analysis itself: the brief and
// watchlist are written by hand (or a future pipeline), this just refuses
// to start from an incomplete desk.
package research

import (
	"fmt"
	"os"
	"path/filepath"
)

// Required are the input files that must exist and be non-empty, relative
// to the inputs directory.
var Required = []string{
	"rules.yaml",
	"universe.txt",
	"strategy_spec.md",
	"data_sources.md",
}

// ScreenerPath is the optional screener artifact, relative to the
// artifacts directory. Its absence is a note, not a failure.
const ScreenerPath = "signals/screener.json"

// MissingInputs returns the required inputs that are absent or empty.
func MissingInputs(inputsDir string) []string {
	var missing []string
	for _, name := range Required {
		path := filepath.Join(inputsDir, name)
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			missing = append(missing, path)
		}
	}
	return missing
}

// HasScreener reports whether the optional screener artifact is present.
func HasScreener(artifactsDir string) bool {
	_, err := os.Stat(filepath.Join(artifactsDir, ScreenerPath))
	return err == nil
}

// WriteStubs creates placeholder research outputs under
// artifactsDir/research: a daily brief and an empty watchlist.
func WriteStubs(artifactsDir string) (string, error) {
	outDir := filepath.Join(artifactsDir, "research")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create research dir: %w", err)
	}

	brief := "# Daily Market Prep (stub)\n\n" +
		"- Status: inputs validated; replace this stub with real analysis.\n"
	if err := os.WriteFile(filepath.Join(outDir, "daily_brief.md"), []byte(brief), 0644); err != nil {
		return "", fmt.Errorf("write daily brief: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "watchlist.json"), []byte("[]\n"), 0644); err != nil {
		return "", fmt.Errorf("write watchlist: %w", err)
	}

	return outDir, nil
}
