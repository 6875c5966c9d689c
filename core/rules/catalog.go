// Package rules implements the level-based simplification rule engine.
//
// The catalog is a fixed, ordered list of (pattern, action) rules. Each
// rule names the minimum level at which it becomes active; Resolve returns
// the cumulative rule set for a level, so every rule active at level L is
// active at all higher levels. Patterns are XPath expressions compiled once
// at package init; rules carry no per-call state and the resolved slice is
// safe to share across concurrently processed parts.
package rules

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/transkit/docsimp/core/errors"
)

// MaxLevel is the highest simplification level.
const MaxLevel = 8

// Action identifies what a rule does to a matched node.
type Action int

const (
	// ActionDelete removes the matched node and its subtree.
	ActionDelete Action = iota
	// ActionUnwrap removes the matched node, promoting its children.
	ActionUnwrap
	// ActionUnwrapRel unwraps the matched node and marks its r:id
	// relationship for removal from the package.
	ActionUnwrapRel
	// ActionReplaceText replaces the matched node with a literal text
	// element carrying the rule's replacement text.
	ActionReplaceText
	// ActionStripChildren removes every child of the matched node not
	// accepted by the rule's keep predicate.
	ActionStripChildren
)

// Sink receives relationship identifiers invalidated by rule execution.
// Implementations must not assume any ordering of Mark calls.
type Sink interface {
	Mark(relID string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(relID string)

// Mark calls f(relID).
func (f SinkFunc) Mark(relID string) { f(relID) }

// Rule is one immutable simplification rule.
type Rule struct {
	Name     string
	MinLevel int
	Action   Action

	pattern *xpath.Expr
	match   func(*xmlquery.Node) bool // optional predicate beyond the pattern
	keep    func(*xmlquery.Node) bool // for ActionStripChildren
	text    string                    // for ActionReplaceText
}

// catalog is the fixed rule list, ordered by ascending level and, within a
// level, by declaration. Resolve preserves this order, which is load-bearing:
// unwrap rules (smart tags, hyperlinks) sit at lower levels than the
// attribute strips that match on their former children.
var catalog = []Rule{
	// Level 0: page breaks.
	{Name: "page-breaks", MinLevel: 0, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:lastRenderedPageBreak`)},

	// Level 1: formatting that restates document defaults.
	{Name: "default-font-size", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:sz[@w:val='24']`)},
	{Name: "default-font-size-cs", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:szCs[@w:val='24']`)},
	{Name: "kerning", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:kern`)},
	{Name: "default-color", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:color[@w:val='000000' or @w:val='auto']`)},
	{Name: "default-underline-color", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:u[@w:color='000000' or @w:color='auto']`)},
	{Name: "language-tags", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:lang`)},
	{Name: "no-proof", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:noProof`)},
	{Name: "proofing-errors", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:proofErr`)},
	{Name: "hps-character-style", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rStyle[@w:val='hps']`)},
	{Name: "numbered-character-style", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rStyle[starts-with(@w:val,'x')]`),
		match:   isNumberedStyle},
	{Name: "bookmark-starts", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:bookmarkStart`)},
	{Name: "bookmark-ends", MinLevel: 1, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:bookmarkEnd`)},

	// Level 2: explicit font faces, special hyphens, smart tags.
	{Name: "east-asian-font-props", MinLevel: 2, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/*[@w:eastAsia]`)},
	{Name: "complex-script-font-props", MinLevel: 2, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/*[@w:cs]`)},
	{Name: "complex-script-size", MinLevel: 2, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:szCs`)},
	{Name: "complex-script-bold", MinLevel: 2, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:bCs`)},
	{Name: "complex-script-italic", MinLevel: 2, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:iCs`)},
	{Name: "no-break-hyphens", MinLevel: 2, Action: ActionReplaceText,
		pattern: xpath.MustCompile(`//w:noBreakHyphen`), text: "-"},
	{Name: "soft-hyphens", MinLevel: 2, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:softHyphen`)},
	{Name: "smart-tags", MinLevel: 2, Action: ActionUnwrap,
		pattern: xpath.MustCompile(`//w:smartTag`)},

	// Level 3: comment anchors and references.
	{Name: "comment-range-starts", MinLevel: 3, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:commentRangeStart`)},
	{Name: "comment-range-ends", MinLevel: 3, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:commentRangeEnd`)},
	{Name: "comment-references", MinLevel: 3, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:commentReference`)},
	{Name: "comment-reference-style", MinLevel: 3, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rStyle[@w:val='CommentReference']`)},

	// Level 4: hyperlinks, unwrapped to their run content.
	{Name: "hyperlinks", MinLevel: 4, Action: ActionUnwrapRel,
		pattern: xpath.MustCompile(`//w:hyperlink`)},

	// Level 5: visibility and color effects.
	{Name: "hidden-text", MinLevel: 5, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:vanish`)},
	{Name: "text-shadow", MinLevel: 5, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:shadow`)},
	{Name: "text-colors", MinLevel: 5, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:color`)},
	{Name: "text-highlight", MinLevel: 5, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:highlight`)},
	{Name: "text-shading", MinLevel: 5, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:shd`)},

	// Level 6: all remaining font family and size specifications.
	{Name: "font-families", MinLevel: 6, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:rFonts`)},
	{Name: "font-sizes", MinLevel: 6, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:sz`)},
	{Name: "font-sizes-cs", MinLevel: 6, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr/w:szCs`)},

	// Level 7: every run property except the character-style reference.
	{Name: "run-props-except-style", MinLevel: 7, Action: ActionStripChildren,
		pattern: xpath.MustCompile(`//w:rPr`), keep: isRunStyle},

	// Level 8: run properties entirely.
	{Name: "run-props", MinLevel: 8, Action: ActionDelete,
		pattern: xpath.MustCompile(`//w:rPr`)},
}

// Catalog returns the full fixed rule list in declaration order.
func Catalog() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}

// Resolve returns the cumulative rule set for a level: every catalog rule
// whose minimum level is at or below the requested one, in catalog order.
func Resolve(level int) ([]Rule, error) {
	if level < 0 || level > MaxLevel {
		return nil, errors.NewInvalidLevel(level)
	}
	var out []Rule
	for _, r := range catalog {
		if r.MinLevel <= level {
			out = append(out, r)
		}
	}
	return out, nil
}

// isNumberedStyle reports whether a w:rStyle node names one of the numeric
// x1..x9999 generated character styles.
func isNumberedStyle(n *xmlquery.Node) bool {
	val := selectAttr(n, "w", "val")
	if len(val) < 2 || val[0] != 'x' {
		return false
	}
	for _, c := range val[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isRunStyle reports whether a run-property child is the character-style
// reference preserved at level 7.
func isRunStyle(n *xmlquery.Node) bool {
	return n.Type == xmlquery.ElementNode && n.Prefix == "w" && n.Data == "rStyle"
}

func selectAttr(n *xmlquery.Node, prefix, local string) string {
	for _, a := range n.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
