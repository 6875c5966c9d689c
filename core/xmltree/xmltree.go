// Package xmltree provides parsing, mutation, and serialization of OOXML
// part content on top of the xmlquery node tree.
//
// The package exposes xmlquery.Node directly rather than wrapping it: the
// rule engine walks and rewires sibling/child links, and an opaque wrapper
// would just mirror every pointer field. What lives here instead are the
// structural operations the rules share: detach, unwrap, and ordered
// insertion, each of which keeps the doubly linked tree consistent.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/antchfx/xmlquery"
)

// Parse parses XML data and returns the document node.
func Parse(data []byte) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return doc, nil
}

// Serialize converts a document node back to XML bytes, including the XML
// declaration when the source document carried one.
func Serialize(doc *xmlquery.Node) []byte {
	if doc == nil {
		return nil
	}
	return []byte(doc.OutputXML(doc.Type != xmlquery.DocumentNode))
}

// Detach removes n from its parent, fixing sibling and child links on both
// sides. Detaching an already-detached node is a no-op.
func Detach(n *xmlquery.Node) {
	p := n.Parent
	if p == nil {
		return
	}
	if p.FirstChild == n {
		p.FirstChild = n.NextSibling
	}
	if p.LastChild == n {
		p.LastChild = n.PrevSibling
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	}
	n.Parent = nil
	n.PrevSibling = nil
	n.NextSibling = nil
}

// Unwrap removes n while promoting its children into n's former position,
// preserving document order. Children of the removed node stay valid, so
// traversal may resume from the first promoted child.
func Unwrap(n *xmlquery.Node) {
	for n.FirstChild != nil {
		child := n.FirstChild
		Detach(child)
		InsertBefore(n, child)
	}
	Detach(n)
}

// InsertBefore links newNode into the tree as the previous sibling of ref.
// ref must be attached to a parent.
func InsertBefore(ref, newNode *xmlquery.Node) {
	p := ref.Parent
	newNode.Parent = p
	newNode.NextSibling = ref
	newNode.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = newNode
	} else if p != nil {
		p.FirstChild = newNode
	}
	ref.PrevSibling = newNode
}

// AppendChild links newNode as the last child of parent.
func AppendChild(parent, newNode *xmlquery.Node) {
	newNode.Parent = parent
	newNode.PrevSibling = parent.LastChild
	newNode.NextSibling = nil
	if parent.LastChild != nil {
		parent.LastChild.NextSibling = newNode
	} else {
		parent.FirstChild = newNode
	}
	parent.LastChild = newNode
}

// NewElement creates a detached element node with the given prefix and
// local name.
func NewElement(prefix, local string) *xmlquery.Node {
	return &xmlquery.Node{
		Type:   xmlquery.ElementNode,
		Prefix: prefix,
		Data:   local,
	}
}

// NewText creates a detached text node.
func NewText(text string) *xmlquery.Node {
	return &xmlquery.Node{
		Type: xmlquery.TextNode,
		Data: text,
	}
}

// Is reports whether n is an element with the given prefix and local name.
func Is(n *xmlquery.Node, prefix, local string) bool {
	return n != nil && n.Type == xmlquery.ElementNode && n.Prefix == prefix && n.Data == local
}

// ChildElements returns the element children of n in document order.
func ChildElements(n *xmlquery.Node) []*xmlquery.Node {
	var children []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// FirstChildElement returns the first child element with the given prefix
// and local name, or nil.
func FirstChildElement(n *xmlquery.Node, prefix, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if Is(c, prefix, local) {
			return c
		}
	}
	return nil
}

// HasElementChildren reports whether n has at least one element child.
func HasElementChildren(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

// Attr returns the value of the attribute with the given prefix and local
// name, and whether it was present.
func Attr(n *xmlquery.Node, prefix, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing an existing one with the same name.
func SetAttr(n *xmlquery.Node, prefix, local, value string) {
	for i, a := range n.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{
		Name:  xml.Name{Space: prefix, Local: local},
		Value: value,
	})
}

// InnerText returns the concatenated text content of n and its descendants.
func InnerText(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return n.InnerText()
}
