package outwriter

import (
	"os"

	"golang.org/x/term"
)

// getMaxLabelWidth calculates the maximum width for row labels in table output
// based on terminal width and how many value columns the table carries.
func getMaxLabelWidth(widthOverride, valueColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if widthOverride > 0 {
		termWidth = widthOverride
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Each value column with borders and padding
	baseWidth := 14 * valueColumns
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
