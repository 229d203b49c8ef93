package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"brace/internal/ast"
	"brace/internal/project"
	"brace/internal/source"
)

// Current schema version - increment when DiskPayload or ast.Atom changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores parsed ASTs on disk keyed by file content.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cache entry.
type DiskPayload struct {
	Schema uint16
	Path   string         // informational; entries are shared across paths
	Hash   project.Digest // content hash of the parsed file
	Root   ast.Atom
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app>, falling back
// to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key derives the cache key for f from its content hash and the schema version.
func (c *DiskCache) Key(f *source.File) project.Digest {
	return project.Combine(project.Digest(f.Hash), []byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "ast", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("cache entry %s: %w", filepath.Base(p), err)
	}
	return true, nil
}

// LoadAST returns the cached AST for f with every span moved to f.ID.
// Entries from another schema or with a mismatching hash are misses.
func (c *DiskCache) LoadAST(f *source.File) (ast.Atom, bool, error) {
	if c == nil {
		return ast.Atom{}, false, nil
	}
	var payload DiskPayload
	ok, err := c.Get(c.Key(f), &payload)
	if err != nil || !ok {
		return ast.Atom{}, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Hash != project.Digest(f.Hash) {
		return ast.Atom{}, false, nil
	}
	root := payload.Root
	ast.Walk(&root, rebind(f.ID))
	return root, true, nil
}

// StoreAST caches root as the parse of f.
func (c *DiskCache) StoreAST(f *source.File, root ast.Atom) error {
	if c == nil {
		return nil
	}
	return c.Put(c.Key(f), &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   f.Path,
		Hash:   project.Digest(f.Hash),
		Root:   root,
	})
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// rebind points every span of a cached tree at the current file id.
type rebind source.FileID

func (r rebind) VisitAtom(a *ast.Atom) bool {
	a.Span.File = source.FileID(r)
	return true
}

func (r rebind) VisitCommand(c *ast.Command) {
	c.Span.File = source.FileID(r)
}
