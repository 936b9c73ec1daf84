package export

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxCollisions bounds the " (N)" suffix search.
const maxCollisions = 1000

// Sink stores exported images under a name.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink saves files into a directory the way a browser download does:
// existing files are never overwritten and a clash gets a " (N)" suffix.
type DirSink struct {
	Dir string
}

// Save writes data to Dir/name, or the first free suffixed variant, and
// returns the path written.
func (s DirSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp := filepath.Join(dir, tempName(".nextqr", ".part"))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	defer os.Remove(tmp)

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < maxCollisions; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		dst := filepath.Join(dir, candidate)
		// A hard link fails if dst exists, so a concurrent save never
		// clobbers another.
		err := os.Link(tmp, dst)
		if err == nil {
			return dst, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("save %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("save %s: too many existing copies", name)
}

// tempName returns a unique scratch file name.
func tempName(prefix, extension string) string {
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("%s_%d_%x%s", prefix, time.Now().UnixNano(), randomBytes, extension)
}
