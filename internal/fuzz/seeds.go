package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addReadmeSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("echo \"hello, world\"\n"))
	f.Add([]byte("a;b;c"))
	f.Add([]byte("{}"))

	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".brc" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addReadmeSeeds adds every ```brace block of README.md.
func addReadmeSeeds(f *testing.F) {
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(filepath.Join("..", "..", "README.md"))
	if err != nil {
		return
	}
	var block [][]byte
	inBlock := false
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		trimmed := strings.TrimSpace(string(line))
		if strings.HasPrefix(trimmed, "```brace") {
			inBlock = true
			block = block[:0]
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			if inBlock {
				if snippet := clampSeed(bytes.Join(block, []byte{'\n'})); len(snippet) > 0 {
					f.Add(snippet)
				}
			}
			inBlock = false
			block = block[:0]
			continue
		}
		if inBlock {
			block = append(block, line)
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
