// Package assets provides the on-disk cache of audio artifacts. Files
// are keyed either by an external identifier (deterministic name) or by
// a freshly generated random name for generated content.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// knownExtensions are probed, in order, when resolving an asset by its
// external id before any network fetch is considered.
var knownExtensions = []string{"m4a", "webm", "opus", "mp3"}

var mimeByExtension = map[string]string{
	"m4a":  "audio/mp4",
	"webm": "audio/webm",
	"opus": "audio/ogg",
	"mp3":  "audio/mpeg",
}

const generatedPrefix = "beat"

// Store is an on-disk audio cache rooted at a single directory. Writes
// for generated content use random, collision-free names; writes for
// fetched-by-id content use deterministic names and may race for the
// same id (last writer wins, content per id is idempotent).
type Store struct {
	dir string
}

// NewStore creates the cache directory if needed and returns the store.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("assets: cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// ResolveByExternalID looks for an already-cached asset for the id,
// probing the known extensions. It returns the file path and MIME type
// when found.
func (s *Store) ResolveByExternalID(id string) (path string, mimeType string, ok bool) {
	if !validID(id) {
		return "", "", false
	}
	for _, ext := range knownExtensions {
		candidate := filepath.Join(s.dir, id+"."+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, MimeType(ext), true
		}
	}
	return "", "", false
}

// PersistGenerated writes generated audio under a fresh random name and
// returns the file path. Names never collide across concurrent writers.
func (s *Store) PersistGenerated(data []byte, extension string) (string, error) {
	name := fmt.Sprintf("%s_%x.%s", generatedPrefix, uuid.New(), normalizeExt(extension))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("assets: write generated asset: %w", err)
	}
	return path, nil
}

// PersistFetched writes audio fetched for an external id under the
// deterministic name <id>.<ext> and returns the file path.
func (s *Store) PersistFetched(id string, data []byte, extension string) (string, error) {
	if !validID(id) {
		return "", fmt.Errorf("assets: invalid asset id %q", id)
	}
	path := filepath.Join(s.dir, id+"."+normalizeExt(extension))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("assets: write fetched asset: %w", err)
	}
	return path, nil
}

// MimeType maps a file extension to its MIME type. Unknown extensions
// map to a generic binary type.
func MimeType(extension string) string {
	if mime, ok := mimeByExtension[normalizeExt(extension)]; ok {
		return mime
	}
	return "application/octet-stream"
}

func normalizeExt(extension string) string {
	extension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(extension)), ".")
	if extension == "" {
		return "mp3"
	}
	return extension
}

// validID rejects ids that could escape the cache directory.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
