// Package opc reads and writes the zip-based document container: parts,
// the relationship tables, and the content-type registry.
//
// A Package is fully loaded into memory on Open, mutated in place during a
// run, and serialized exactly once by Write. Parts are classified by role;
// only target roles are ever parsed as XML, everything else is copied
// byte-for-byte.
package opc

import (
	"archive/zip"
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/antchfx/xmlquery"
	"github.com/zeebo/blake3"

	"github.com/transkit/docsimp/core/errors"
)

// Part names every valid package must carry.
const (
	ContentTypesPart = "[Content_Types].xml"
	RootRelsPart     = "_rels/.rels"
	DocumentPart     = "word/document.xml"
)

// mandatoryParts are verified on Open, in reporting order.
var mandatoryParts = []string{ContentTypesPart, RootRelsPart, DocumentPart}

// Role classifies a part for rule processing.
type Role int

const (
	// RoleOther marks pass-through parts copied verbatim.
	RoleOther Role = iota
	// RoleDocument is the main document body.
	RoleDocument
	// RoleHeader is a page header part.
	RoleHeader
	// RoleFooter is a page footer part.
	RoleFooter
	// RoleFootnotes is the footnotes part.
	RoleFootnotes
	// RoleEndnotes is the endnotes part.
	RoleEndnotes
	// RoleComments is the comments part.
	RoleComments
)

// String returns the role name for logging.
func (r Role) String() string {
	switch r {
	case RoleDocument:
		return "document"
	case RoleHeader:
		return "header"
	case RoleFooter:
		return "footer"
	case RoleFootnotes:
		return "footnotes"
	case RoleEndnotes:
		return "endnotes"
	case RoleComments:
		return "comments"
	default:
		return "other"
	}
}

var rolePatterns = []struct {
	re   *regexp.Regexp
	role Role
}{
	{regexp.MustCompile(`^word/document\.xml$`), RoleDocument},
	{regexp.MustCompile(`^word/header\d*\.xml$`), RoleHeader},
	{regexp.MustCompile(`^word/footer\d*\.xml$`), RoleFooter},
	{regexp.MustCompile(`^word/footnotes\.xml$`), RoleFootnotes},
	{regexp.MustCompile(`^word/endnotes\.xml$`), RoleEndnotes},
	{regexp.MustCompile(`^word/comments\.xml$`), RoleComments},
}

// ClassifyPart returns the role for a part name.
func ClassifyPart(name string) Role {
	for _, p := range rolePatterns {
		if p.re.MatchString(name) {
			return p.role
		}
	}
	return RoleOther
}

// Part is one named entry inside a Package.
type Part struct {
	Name string
	Role Role
	Data []byte

	// Tree holds the parsed and possibly transformed XML of a target
	// part. When non-nil it takes precedence over Data at write time.
	Tree *xmlquery.Node
}

// IsTarget reports whether the part is subject to rule transformation.
func (p *Part) IsTarget() bool {
	return p.Role != RoleOther
}

// Package is an in-memory document container.
type Package struct {
	Path  string // input archive path
	Parts []*Part

	// InputSize and InputDigest describe the archive as read from disk.
	InputSize   int64
	InputDigest string

	byName map[string]*Part
}

// Open reads a package archive into memory, classifies its parts, and
// verifies the mandatory parts are present. The input file is not held
// open afterwards.
func Open(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewNotAZip(path, err)
	}

	digest := blake3.Sum256(data)
	pkg := &Package{
		Path:        path,
		InputSize:   int64(len(data)),
		InputDigest: hex.EncodeToString(digest[:]),
		byName:      make(map[string]*Part, len(zr.File)),
	}

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, errors.NewIO("read", path+"!"+f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.NewIO("read", path+"!"+f.Name, err)
		}

		part := &Part{Name: f.Name, Role: ClassifyPart(f.Name), Data: content}
		pkg.Parts = append(pkg.Parts, part)
		pkg.byName[f.Name] = part
	}

	for _, name := range mandatoryParts {
		if _, ok := pkg.byName[name]; !ok {
			return nil, errors.NewMissingPart(path, name)
		}
	}

	return pkg, nil
}

// Part returns the named part, or nil.
func (pkg *Package) Part(name string) *Part {
	return pkg.byName[name]
}

// RemovePart drops a part from the package. Removing an absent part is a
// no-op.
func (pkg *Package) RemovePart(name string) {
	if _, ok := pkg.byName[name]; !ok {
		return
	}
	delete(pkg.byName, name)
	for i, p := range pkg.Parts {
		if p.Name == name {
			pkg.Parts = append(pkg.Parts[:i], pkg.Parts[i+1:]...)
			break
		}
	}
}

// TargetParts returns the parts subject to transformation in deterministic
// order: the document body first, then the remaining targets by name.
// The ordering is what makes progress fractions reproducible across runs.
func (pkg *Package) TargetParts() []*Part {
	var doc *Part
	var rest []*Part
	for _, p := range pkg.Parts {
		switch {
		case !p.IsTarget():
		case p.Role == RoleDocument:
			doc = p
		default:
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Name < rest[j].Name })

	out := make([]*Part, 0, len(rest)+1)
	if doc != nil {
		out = append(out, doc)
	}
	return append(out, rest...)
}
