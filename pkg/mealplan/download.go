package mealplan

import (
	"fmt"
	"os"
	"path/filepath"
)

// MIMEType is the media type of the downloadable plan.
const MIMEType = "text/plain"

// FileName returns the download name for a plan of mealCount meals.
func FileName(mealCount int) string {
	return fmt.Sprintf("meal_plan_%d_meals.txt", mealCount)
}

// Save writes text to FileName(mealCount) inside dir and returns the path.
// The file holds exactly the bytes of text. An existing file is replaced.
func Save(dir string, mealCount int, text string) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mealplan: create output dir: %w", err)
	}

	path := filepath.Join(dir, FileName(mealCount))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("mealplan: save plan: %w", err)
	}

	return path, nil
}
