package fileutil

import "testing"

// TestFormatSize verifies human-readable byte formatting across units.
func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{-1, "0 B"},
		{0, "0.0 B"},
		{512, "512.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{10 * 1024 * 1024, "10.0 MB"},
		{1073741824, "1.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
