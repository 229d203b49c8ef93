package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrAlreadyInitialized is returned when brace.toml already exists.
var ErrAlreadyInitialized = errors.New("project already initialized")

const mainTemplate = `# entry point of %s
echo "hello from %s";
`

// Init writes brace.toml and main.brc into dir, creating dir when needed.
// An empty name defaults to the directory's base name. Existing files are
// never overwritten.
func Init(dir, name string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(abs, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, ErrAlreadyInitialized)
	}

	manifest := fmt.Sprintf("[package]\nname = %s\n\n[run]\nmain = \"main.brc\"\n", strconv.Quote(name))
	created := make([]string, 0, 2)
	if err := writeNew(manifestPath, manifest); err != nil {
		return nil, err
	}
	created = append(created, manifestPath)

	mainPath := filepath.Join(abs, "main.brc")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := writeNew(mainPath, fmt.Sprintf(mainTemplate, sanitizeForString(name), sanitizeForString(name))); err != nil {
			return created, err
		}
		created = append(created, mainPath)
	}
	return created, nil
}

func writeNew(path, content string) error {
	// #nosec G304 -- path is built from the user-chosen project directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// sanitizeForString drops characters brace string literals cannot hold.
func sanitizeForString(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\\' || r == '"' || r == '\n' || r == '\r' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
