package rules

import (
	"github.com/antchfx/xmlquery"

	"github.com/transkit/docsimp/core/xmltree"
)

// Result accumulates what one Apply pass did to a tree.
type Result struct {
	ElementsRemoved  int // nodes deleted or merged away
	ElementsModified int // nodes rewritten in place
	RulesMatched     int // rules that matched at least one node
}

// Add merges another result into r.
func (r *Result) Add(other Result) {
	r.ElementsRemoved += other.ElementsRemoved
	r.ElementsModified += other.ElementsModified
	r.RulesMatched += other.RulesMatched
}

// Apply executes the resolved rule set against a parsed part tree in
// catalog order, then runs the normalization pass (run merging, empty-node
// cleanup, whitespace preservation).
//
// Matches for a rule are collected before any of that rule's actions run,
// so delete and unwrap actions never invalidate the traversal: promoted
// children stay linked, and a node detached by an earlier action is simply
// skipped. Nodes that do not match a rule cleanly (missing attributes,
// unexpected shape) are left alone rather than failing the part.
//
// sink may be nil when no active rule marks relationships.
func Apply(doc *xmlquery.Node, ruleset []Rule, sink Sink) Result {
	var res Result

	for i := range ruleset {
		rule := &ruleset[i]
		nodes := xmlquery.QuerySelectorAll(doc, rule.pattern)
		matched := false

		for _, n := range nodes {
			if n.Parent == nil {
				// Detached by a preceding action in this pass.
				continue
			}
			if rule.match != nil && !rule.match(n) {
				continue
			}
			matched = true

			switch rule.Action {
			case ActionDelete:
				xmltree.Detach(n)
				res.ElementsRemoved++

			case ActionUnwrap:
				xmltree.Unwrap(n)
				res.ElementsRemoved++

			case ActionUnwrapRel:
				if sink != nil {
					if id, ok := xmltree.Attr(n, "r", "id"); ok && id != "" {
						sink.Mark(id)
					}
				}
				xmltree.Unwrap(n)
				res.ElementsRemoved++

			case ActionReplaceText:
				replaceWithText(n, rule.text)
				res.ElementsRemoved++

			case ActionStripChildren:
				for _, c := range xmltree.ChildElements(n) {
					if rule.keep != nil && rule.keep(c) {
						continue
					}
					xmltree.Detach(c)
					res.ElementsRemoved++
				}
			}
		}

		if matched {
			res.RulesMatched++
		}
	}

	normalize(doc, &res)
	return res
}

// replaceWithText swaps a node for a <w:t xml:space="preserve"> element
// carrying literal text, in the node's former position.
func replaceWithText(n *xmlquery.Node, text string) {
	t := xmltree.NewElement("w", "t")
	xmltree.SetAttr(t, "xml", "space", "preserve")
	xmltree.AppendChild(t, xmltree.NewText(text))
	xmltree.InsertBefore(n, t)
	xmltree.Detach(n)
}
