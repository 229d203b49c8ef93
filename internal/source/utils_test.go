package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.brc")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "src", "main.brc")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "src/main.brc" {
		t.Fatalf("got %q, want %q", got, "src/main.brc")
	}
}

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		in, want string
		changed  bool
	}{
		{"a\r\nb", "a\nb", true},
		{"a\rb", "a\rb", false},
		{"a\r\r\n", "a\r\n", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q): got %q/%v, want %q/%v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestRemoveBOM(t *testing.T) {
	got, had := removeBOM([]byte("\xEF\xBB\xBFecho"))
	if !had || string(got) != "echo" {
		t.Fatalf("got %q/%v", got, had)
	}
	got, had = removeBOM([]byte("ec"))
	if had || string(got) != "ec" {
		t.Fatalf("short input: got %q/%v", got, had)
	}
}
