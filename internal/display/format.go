// Package display formats sizes and ratios for conversion reports.
package display

import "fmt"

const mebibyte = 1024 * 1024

// FormatMB returns bytes as mebibytes with two decimals, e.g. "1.50 MB".
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/mebibyte)
}

// SavedPercent is how much smaller output is than original, in percent.
// Negative when the output grew. Zero when original is empty.
func SavedPercent(original, output int64) float64 {
	if original <= 0 {
		return 0
	}
	return (1 - float64(output)/float64(original)) * 100
}

// FormatSaved formats SavedPercent with one decimal, e.g. "87.5%".
func FormatSaved(original, output int64) string {
	return fmt.Sprintf("%.1f%%", SavedPercent(original, output))
}
