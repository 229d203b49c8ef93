// Package project loads brace.toml manifests and scaffolds new projects.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or blank.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrRunMainMissing indicates that [run].main is missing or blank.
	ErrRunMainMissing = errors.New("missing [run].main")
	// ErrMainNotFound indicates that [run].main does not name a readable file.
	ErrMainNotFound = errors.New("entry file not found")
)

var colorModes = []string{"auto", "on", "off"}

// Manifest is a decoded brace.toml.
type Manifest struct {
	Path string // manifest file
	Root string // directory holding the manifest
	Name string
	Main string // as written, relative to Root

	// MaxDiagnostics and Color are zero when not set.
	MaxDiagnostics int
	Color          string

	// Unknown lists keys the decoder did not recognise.
	Unknown []string
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Run struct {
		Main string `toml:"main"`
	} `toml:"run"`
	Diagnostics struct {
		Max   int    `toml:"max"`
		Color string `toml:"color"`
	} `toml:"diagnostics"`
}

// LoadManifest decodes and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	main := strings.TrimSpace(cfg.Run.Main)
	if !meta.IsDefined("run", "main") || main == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrRunMainMissing)
	}
	if cfg.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: invalid [diagnostics].max %d: must not be negative", path, cfg.Diagnostics.Max)
	}
	color := strings.TrimSpace(cfg.Diagnostics.Color)
	if color != "" && !slices.Contains(colorModes, color) {
		return nil, fmt.Errorf("%s: invalid [diagnostics].color %q (expected: auto|on|off)", path, color)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{
		Path:           abs,
		Root:           filepath.Dir(abs),
		Name:           name,
		Main:           main,
		MaxDiagnostics: cfg.Diagnostics.Max,
		Color:          color,
	}
	m.Unknown = unknownKeys(meta.Undecoded())
	return m, nil
}

// unknownKeys drops a table key when one of its own keys is also
// undecoded, so a stray table is reported once. Empty tables are kept.
func unknownKeys(keys []toml.Key) []string {
	var out []string
	for i, key := range keys {
		parent := false
		for j, other := range keys {
			if i != j && len(other) > len(key) && slices.Equal(other[:len(key)], key) {
				parent = true
				break
			}
		}
		if !parent {
			out = append(out, key.String())
		}
	}
	slices.Sort(out)
	return out
}

// MainPath resolves [run].main against the project root. The file must
// exist and stay inside the root.
func (m *Manifest) MainPath() (string, error) {
	if filepath.IsAbs(m.Main) {
		return "", fmt.Errorf("invalid [run].main %q: must be relative", m.Main)
	}
	p := filepath.Join(m.Root, filepath.FromSlash(m.Main))
	if !pathWithin(m.Root, p) {
		return "", fmt.Errorf("invalid [run].main %q: escapes project root", m.Main)
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", m.Main, ErrMainNotFound)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("invalid [run].main %q: is a directory", m.Main)
	}
	return p, nil
}

// Discover finds and loads the manifest governing startDir.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}
