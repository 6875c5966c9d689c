package rules

import "github.com/transkit/docsimp/core/errors"

// levelDescriptions summarizes what each simplification level removes, for
// user-facing help output.
var levelDescriptions = map[int]string{
	0: "Remove only page breaks - minimal changes to preserve most formatting",
	1: "Remove basic formatting defaults (font size 24pt, black color, spacing, language tags, proofing errors)",
	2: "Remove font attributes, convert special hyphens, unwrap smart tags and remove complex script formatting",
	3: "Remove comments and comment references - cleaner document structure",
	4: "Remove hyperlinks (convert to plain text) - pure text content",
	5: "Remove hidden text, shadows, text colors, and highlighting - visible content only",
	6: "Remove all font specifications and sizes - uniform text appearance",
	7: "Remove all run properties except character styles - preserve only essential styling",
	8: "Remove all formatting attributes completely - plain text with document structure only",
}

// Describe returns the human-readable description of a level.
func Describe(level int) (string, error) {
	desc, ok := levelDescriptions[level]
	if !ok {
		return "", errors.NewInvalidLevel(level)
	}
	return desc, nil
}

// DescribeAll returns descriptions for levels 0 through MaxLevel in order.
func DescribeAll() []string {
	out := make([]string, 0, MaxLevel+1)
	for level := 0; level <= MaxLevel; level++ {
		out = append(out, levelDescriptions[level])
	}
	return out
}
