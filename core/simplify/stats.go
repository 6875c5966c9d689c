package simplify

import "time"

// Stats is the performance record of one simplification run.
type Stats struct {
	RunID string // unique per run, correlates log lines
	Level int

	Elapsed       time.Duration
	ParseTime     time.Duration // summed across parts
	TransformTime time.Duration // summed across parts
	WriteTime     time.Duration

	PartsProcessed      int
	RulesResolved       int // rules active at the requested level
	RulesMatched        int // rules that matched at least once, summed across parts
	ElementsRemoved     int
	ElementsModified    int
	RelationshipsPruned int

	BytesIn      int64
	BytesOut     int64
	InputDigest  string // BLAKE3 of the input archive
	OutputDigest string // BLAKE3 of the written archive
}

// Reduction returns the size reduction as a fraction of the input size,
// negative when the output grew.
func (s Stats) Reduction() float64 {
	if s.BytesIn == 0 {
		return 0
	}
	return float64(s.BytesIn-s.BytesOut) / float64(s.BytesIn)
}
