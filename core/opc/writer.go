package opc

import (
	"archive/zip"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/transkit/docsimp/core/errors"
	"github.com/transkit/docsimp/core/xmltree"
)

// WriteResult describes a successfully written archive.
type WriteResult struct {
	Path   string
	Size   int64
	Digest string // BLAKE3 of the written archive
}

// Write serializes the package to outPath. Target parts with a parsed tree
// are serialized from it; everything else is written from its raw bytes.
//
// The archive is assembled in a temporary file next to the destination and
// moved into place with a single rename, so a failure mid-write never
// leaves a truncated archive at outPath.
func Write(pkg *Package, outPath string) (*WriteResult, error) {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewIO("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".docsimp-*")
	if err != nil {
		return nil, errors.NewIO("create", outPath, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	zw := zip.NewWriter(tmp)
	for _, part := range pkg.Parts {
		w, err := zw.Create(part.Name)
		if err != nil {
			cleanup()
			return nil, errors.NewIO("write", outPath, err)
		}
		data := part.Data
		if part.Tree != nil {
			data = xmltree.Serialize(part.Tree)
		}
		if _, err := w.Write(data); err != nil {
			cleanup()
			return nil, errors.NewIO("write", outPath, err)
		}
	}
	if err := zw.Close(); err != nil {
		cleanup()
		return nil, errors.NewIO("write", outPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, errors.NewIO("write", outPath, err)
	}

	written, err := os.ReadFile(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, errors.NewIO("read", tmpPath, err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return nil, errors.NewIO("rename", outPath, err)
	}

	digest := blake3.Sum256(written)
	return &WriteResult{
		Path:   outPath,
		Size:   int64(len(written)),
		Digest: hex.EncodeToString(digest[:]),
	}, nil
}
