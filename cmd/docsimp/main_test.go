package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	testRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	testDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:lastRenderedPageBreak/><w:t>hello</w:t></w:r></w:p>` +
		`</w:body></w:document>`
)

func createTestDocx(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": testContentTypes,
		"_rels/.rels":         testRootRels,
		"word/document.xml":   testDocument,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	path := filepath.Join(dir, "test.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// Tests for SimplifyCmd

func TestSimplifyCmd_Run(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		wantErr bool
	}{
		{name: "level zero", level: 0, wantErr: false},
		{name: "default level", level: 1, wantErr: false},
		{name: "maximum level", level: 8, wantErr: false},
		{name: "level out of range", level: 9, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cmd := &SimplifyCmd{
				Path:  createTestDocx(t, dir),
				Level: tt.level,
				Out:   filepath.Join(dir, "out.docx"),
			}
			err := cmd.Run()
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if _, err := os.Stat(cmd.Out); err != nil {
					t.Errorf("output file missing: %v", err)
				}
			}
		})
	}
}

func TestSimplifyCmd_Run_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	cmd := &SimplifyCmd{Path: createTestDocx(t, dir), Level: 2}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := filepath.Join(dir, "test_simplified_level2.docx")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected default output at %s: %v", want, err)
	}
}

func TestSimplifyCmd_Run_MissingInput(t *testing.T) {
	cmd := &SimplifyCmd{Path: filepath.Join(t.TempDir(), "absent.docx"), Level: 1}
	if err := cmd.Run(); err == nil {
		t.Error("Run() should fail for a missing input file")
	}
}

// Tests for BatchCmd

func TestBatchCmd_Run(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	cmd := &BatchCmd{
		Paths: []string{createTestDocx(t, dirA), createTestDocx(t, dirB)},
		Level: 1,
		Jobs:  2,
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for _, dir := range []string{dirA, dirB} {
		if _, err := os.Stat(filepath.Join(dir, "test_simplified_level1.docx")); err != nil {
			t.Errorf("batch output missing in %s: %v", dir, err)
		}
	}
}

func TestBatchCmd_Run_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.docx")
	if err := os.WriteFile(garbage, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := &BatchCmd{
		Paths: []string{createTestDocx(t, dir), garbage},
		Level: 1,
	}
	if err := cmd.Run(); err == nil {
		t.Error("Run() should report failed files")
	}
}

// Tests for LevelsCmd and VersionCmd

func TestLevelsCmd_Run(t *testing.T) {
	if err := (&LevelsCmd{}).Run(); err != nil {
		t.Errorf("Run() error: %v", err)
	}
}

func TestVersionCmd_Run(t *testing.T) {
	if err := (&VersionCmd{}).Run(); err != nil {
		t.Errorf("Run() error: %v", err)
	}
}
