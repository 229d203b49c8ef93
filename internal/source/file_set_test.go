package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.brc", []byte("echo a"), 0)
	id2 := fs.Add("test.brc", []byte("echo b"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d, %d", id1, id2)
	}

	if string(fs.Get(id2).Content) != "echo b" {
		t.Fatalf("new version: got %q", fs.Get(id2).Content)
	}
	if string(fs.Get(id1).Content) != "echo a" {
		t.Fatalf("old version must stay reachable")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", fs.Len())
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.brc", []byte("ab\ncd\n\nxyz"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // the newline belongs to the line it ends
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{10, LineCol{4, 4}}, // end of buffer
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem.brc", []byte("first\nsecond\n\nlast")))

	want := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: "last", 5: ""}
	for line, text := range want {
		if got := f.GetLine(line); got != text {
			t.Errorf("GetLine(%d): got %q, want %q", line, got, text)
		}
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.brc")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("echo a;\r\necho b\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "echo a;\necho b\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags not set: %b", f.Flags)
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("LineIdx: got %v", f.LineIdx)
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.brc")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "/very/long/absolute/path/to/some/project/src/main.brc"}
	if got := f.FormatPath("basename", ""); got != "main.brc" {
		t.Fatalf("basename: got %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "main.brc" {
		t.Fatalf("auto: got %q", got)
	}
	if got := f.FormatPath("", ""); got != f.Path {
		t.Fatalf("default: got %q", got)
	}

	virt := &File{Path: "<stdin>", Flags: FileVirtual}
	if got := virt.FormatPath("relative", "/tmp"); got != "<stdin>" {
		t.Fatalf("virtual relative: got %q", got)
	}
}
