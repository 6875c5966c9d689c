package opc

import (
	"encoding/xml"
	"path"
	"sort"
	"strings"

	"github.com/transkit/docsimp/core/errors"
)

const relsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship is one entry in a part's relationship table.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// External reports whether the relationship points outside the package
// (e.g. a web hyperlink).
func (r Relationship) External() bool {
	return r.TargetMode == "External"
}

// Relationships is a part's relationship table.
type Relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []Relationship `xml:"Relationship"`
}

// RelsPartFor returns the name of the rels part describing source
// (e.g. word/document.xml -> word/_rels/document.xml.rels).
func RelsPartFor(source string) string {
	return path.Join(path.Dir(source), "_rels", path.Base(source)+".rels")
}

// ResolveTarget resolves a relationship target against its source part,
// returning the package part name it points at. External targets are
// returned unchanged.
func ResolveTarget(source string, rel Relationship) string {
	if rel.External() {
		return rel.Target
	}
	if strings.HasPrefix(rel.Target, "/") {
		return strings.TrimPrefix(path.Clean(rel.Target), "/")
	}
	return path.Clean(path.Join(path.Dir(source), rel.Target))
}

// ParseRels decodes a relationship table part.
func ParseRels(name string, data []byte) (*Relationships, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, errors.NewParse(name, err)
	}
	if rels.Xmlns == "" {
		rels.Xmlns = relsNamespace
	}
	return &rels, nil
}

// Marshal serializes the relationship table with the standard declaration.
func (r *Relationships) Marshal() ([]byte, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return nil, err
	}
	out := append([]byte(xml.Header), body...)
	return out, nil
}

// RelationshipsFor parses the relationship table attached to source.
// Returns nil when source has no rels part.
func (pkg *Package) RelationshipsFor(source string) (*Relationships, error) {
	part := pkg.Part(RelsPartFor(source))
	if part == nil {
		return nil, nil
	}
	return ParseRels(part.Name, part.Data)
}

// Delta is the set of relationship identifiers slated for removal, keyed
// by the source part whose content referenced them. It is accumulated
// across all target parts of one run and applied once by Prune.
type Delta struct {
	ids map[string]map[string]struct{}
}

// NewDelta returns an empty delta.
func NewDelta() *Delta {
	return &Delta{ids: make(map[string]map[string]struct{})}
}

// Mark records a relationship of source as removed.
func (d *Delta) Mark(source, relID string) {
	set, ok := d.ids[source]
	if !ok {
		set = make(map[string]struct{})
		d.ids[source] = set
	}
	set[relID] = struct{}{}
}

// Merge unions another delta into d.
func (d *Delta) Merge(other *Delta) {
	if other == nil {
		return
	}
	for source, set := range other.ids {
		for id := range set {
			d.Mark(source, id)
		}
	}
}

// Empty reports whether the delta marks nothing.
func (d *Delta) Empty() bool {
	for _, set := range d.ids {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Sources returns the part names with marked relationships, sorted.
func (d *Delta) Sources() []string {
	out := make([]string, 0, len(d.ids))
	for source := range d.ids {
		out = append(out, source)
	}
	sort.Strings(out)
	return out
}

// Marked reports whether the given relationship of source is slated for
// removal.
func (d *Delta) Marked(source, relID string) bool {
	_, ok := d.ids[source][relID]
	return ok
}

// Len returns the total number of marked identifiers.
func (d *Delta) Len() int {
	n := 0
	for _, set := range d.ids {
		n += len(set)
	}
	return n
}
