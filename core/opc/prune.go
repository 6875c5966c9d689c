package opc

import (
	"strings"
)

// Prune applies one run's accumulated relationship delta to the package:
// marked entries are dropped from their relationship tables, and any
// package-internal part left unreferenced by every remaining table is
// removed together with its own rels part and content-type override.
//
// Prune runs exactly once per run, after all target parts have been
// transformed, so it sees the complete set of deletions.
func Prune(pkg *Package, delta *Delta) error {
	if delta == nil || delta.Empty() {
		return nil
	}

	// Drop marked entries, remembering which internal parts they pointed at.
	orphanCandidates := make(map[string]struct{})
	for _, source := range delta.Sources() {
		relsPart := pkg.Part(RelsPartFor(source))
		if relsPart == nil {
			continue
		}
		rels, err := ParseRels(relsPart.Name, relsPart.Data)
		if err != nil {
			return err
		}

		kept := rels.Rels[:0]
		for _, rel := range rels.Rels {
			if !delta.Marked(source, rel.ID) {
				kept = append(kept, rel)
				continue
			}
			if !rel.External() {
				orphanCandidates[ResolveTarget(source, rel)] = struct{}{}
			}
		}
		rels.Rels = kept

		data, err := rels.Marshal()
		if err != nil {
			return err
		}
		relsPart.Data = data
	}

	// Remove parts no remaining relationship references.
	var removed []string
	for candidate := range orphanCandidates {
		if pkg.Part(candidate) == nil {
			continue
		}
		ref, err := pkg.referenced(candidate)
		if err != nil {
			return err
		}
		if ref {
			continue
		}
		pkg.RemovePart(candidate)
		pkg.RemovePart(RelsPartFor(candidate))
		removed = append(removed, candidate)
	}

	if len(removed) == 0 {
		return nil
	}
	return pkg.removeContentTypeOverrides(removed)
}

// referenced reports whether any relationship table in the package still
// points at the given part.
func (pkg *Package) referenced(target string) (bool, error) {
	for _, p := range pkg.Parts {
		if !strings.HasSuffix(p.Name, ".rels") {
			continue
		}
		source := sourceForRels(p.Name)
		rels, err := ParseRels(p.Name, p.Data)
		if err != nil {
			return false, err
		}
		for _, rel := range rels.Rels {
			if rel.External() {
				continue
			}
			if ResolveTarget(source, rel) == target {
				return true, nil
			}
		}
	}
	return false, nil
}

// sourceForRels maps a rels part name back to the part it describes
// (word/_rels/document.xml.rels -> word/document.xml). The root rels part
// describes the package root.
func sourceForRels(relsName string) string {
	dir, base, ok := strings.Cut(relsName, "_rels/")
	if !ok {
		return relsName
	}
	return dir + strings.TrimSuffix(base, ".rels")
}

func (pkg *Package) removeContentTypeOverrides(parts []string) error {
	ctPart := pkg.Part(ContentTypesPart)
	if ctPart == nil {
		return nil
	}
	ct, err := ParseContentTypes(ctPart.Data)
	if err != nil {
		return err
	}
	for _, name := range parts {
		ct.RemoveOverride(name)
	}
	data, err := ct.Marshal()
	if err != nil {
		return err
	}
	ctPart.Data = data
	return nil
}
