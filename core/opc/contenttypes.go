package opc

import (
	"encoding/xml"

	"github.com/transkit/docsimp/core/errors"
)

const contentTypesNamespace = "http://schemas.openxmlformats.org/package/2006/content-types"

// ContentTypes is the package content-type registry.
type ContentTypes struct {
	XMLName   xml.Name   `xml:"Types"`
	Xmlns     string     `xml:"xmlns,attr"`
	Defaults  []Default  `xml:"Default"`
	Overrides []Override `xml:"Override"`
}

// Default maps a file extension to a content type.
type Default struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Override assigns a content type to one specific part. PartName carries a
// leading slash, per the package conventions.
type Override struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ParseContentTypes decodes the [Content_Types].xml registry.
func ParseContentTypes(data []byte) (*ContentTypes, error) {
	var ct ContentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, errors.NewParse(ContentTypesPart, err)
	}
	if ct.Xmlns == "" {
		ct.Xmlns = contentTypesNamespace
	}
	return &ct, nil
}

// Marshal serializes the registry with the standard declaration.
func (ct *ContentTypes) Marshal() ([]byte, error) {
	body, err := xml.Marshal(ct)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// RemoveOverride drops the override for the given part name (without the
// leading slash). Removing an absent override is a no-op.
func (ct *ContentTypes) RemoveOverride(partName string) {
	want := "/" + partName
	out := ct.Overrides[:0]
	for _, o := range ct.Overrides {
		if o.PartName != want {
			out = append(out, o)
		}
	}
	ct.Overrides = out
}
