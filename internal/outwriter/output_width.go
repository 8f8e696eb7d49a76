package outwriter

import (
	"os"

	"github.com/huangsam/quickstats/internal/contract"
	"golang.org/x/term"
)

// terminalWidth returns the configured width, the detected terminal width,
// or a conservative default for pipes and CI.
func terminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80
	}
	return detectedWidth
}

// GetMaxTableKeyWidth calculates the maximum width for the key column of a
// table with the given number of value columns.
func GetMaxTableKeyWidth(cfg *contract.Config, valueColumns int) int {
	// Rank column plus borders, separators and padding
	baseWidth := 28
	// Values carry a percentage suffix, e.g. "12345 (99.9%)"
	baseWidth += valueColumns * 16

	available := terminalWidth(cfg) - baseWidth
	if available < 15 {
		// Minimum reasonable key width
		return 15
	}
	if available > 70 {
		// Maximum key width to prevent overly wide tables
		return 70
	}
	return available
}
