// Package fileutil provides small filesystem and formatting helpers shared
// by the CLI front end.
package fileutil

import "fmt"

// FormatSize renders a byte count in human-readable form (e.g. "1.5 MB").
func FormatSize(size int64) string {
	if size < 0 {
		return "0 B"
	}
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", value)
}
