package rules

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/transkit/docsimp/core/xmltree"
)

// Normalization patterns, compiled once beside the catalog.
var (
	paragraphPattern = xpath.MustCompile(`//w:p`)
	emptyRPrPattern  = xpath.MustCompile(`//w:rPr[not(*)]`)
	emptyRunPattern  = xpath.MustCompile(`//w:r[not(*)]`)
	textPattern      = xpath.MustCompile(`//w:t`)
)

// normalize runs the post-rule cleanup applied at every level: drop run
// properties and runs emptied by the rules, merge adjacent identical runs,
// and pin xml:space on text elements so serialization cannot eat leading
// or trailing whitespace. The cleanup must precede the merge: a run whose
// properties were fully stripped still carries an empty w:rPr, and only
// once that is dropped does it merge with a bare neighbor. With that
// ordering one pass reaches a fixed point, so a second Apply over
// already-simplified content is a no-op.
func normalize(doc *xmlquery.Node, res *Result) {
	// Empty rPr first: a run holding only an emptied rPr becomes an empty
	// run and is caught by the second query.
	for _, n := range xmlquery.QuerySelectorAll(doc, emptyRPrPattern) {
		xmltree.Detach(n)
		res.ElementsRemoved++
	}
	for _, n := range xmlquery.QuerySelectorAll(doc, emptyRunPattern) {
		xmltree.Detach(n)
		res.ElementsRemoved++
	}

	res.ElementsRemoved += mergeAdjacentRuns(doc)

	for _, t := range xmlquery.QuerySelectorAll(doc, textPattern) {
		if v, ok := xmltree.Attr(t, "xml", "space"); !ok || v != "preserve" {
			xmltree.SetAttr(t, "xml", "space", "preserve")
			res.ElementsModified++
		}
	}
}

// mergeAdjacentRuns concatenates consecutive sibling runs that carry
// byte-identical run properties, returning the number of runs merged away.
// Only runs shaped as [optional w:rPr, single w:t] participate; runs with
// tabs, breaks, or drawings are never merged so no non-text content is lost.
func mergeAdjacentRuns(doc *xmlquery.Node) int {
	merged := 0
	for _, p := range xmlquery.QuerySelectorAll(doc, paragraphPattern) {
		c := p.FirstChild
		for c != nil {
			next := nextElement(c)
			if next == nil {
				break
			}
			if xmltree.Is(c, "w", "r") && xmltree.Is(next, "w", "r") && runsMergeable(c, next) {
				mergeRuns(c, next)
				merged++
				// Stay on c: it may absorb further siblings.
				continue
			}
			c = next
		}
	}
	return merged
}

// nextElement returns the next sibling element of n, skipping text nodes.
func nextElement(n *xmlquery.Node) *xmlquery.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == xmlquery.ElementNode {
			return s
		}
	}
	return nil
}

func runsMergeable(r1, r2 *xmlquery.Node) bool {
	rpr1, t1, ok1 := textRunShape(r1)
	rpr2, t2, ok2 := textRunShape(r2)
	if !ok1 || !ok2 || t1 == nil || t2 == nil {
		return false
	}
	if rpr1 == nil && rpr2 == nil {
		return true
	}
	if rpr1 == nil || rpr2 == nil {
		return false
	}
	return rpr1.OutputXML(true) == rpr2.OutputXML(true)
}

// textRunShape inspects a run's element children. ok is true only when the
// run is exactly [optional w:rPr, single w:t].
func textRunShape(r *xmlquery.Node) (rpr, t *xmlquery.Node, ok bool) {
	for _, c := range xmltree.ChildElements(r) {
		switch {
		case xmltree.Is(c, "w", "rPr") && rpr == nil && t == nil:
			rpr = c
		case xmltree.Is(c, "w", "t") && t == nil:
			t = c
		default:
			return nil, nil, false
		}
	}
	return rpr, t, true
}

// mergeRuns appends source's text into target's w:t and removes source.
func mergeRuns(target, source *xmlquery.Node) {
	_, tt, _ := textRunShape(target)
	_, st, _ := textRunShape(source)

	text := xmltree.InnerText(st)
	if text != "" {
		if tt.LastChild != nil && tt.LastChild.Type == xmlquery.TextNode {
			tt.LastChild.Data += text
		} else {
			xmltree.AppendChild(tt, xmltree.NewText(text))
		}
	}
	xmltree.Detach(source)
}
