// Package fs discovers documents on the local filesystem for starting a chat.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/chatroom"
)

// DefaultPattern matches common document types anywhere below the root.
const DefaultPattern = "**/*.{md,txt,pdf,doc,docx}"

// ImagePattern matches common image types anywhere below the root.
const ImagePattern = "**/*.{png,jpg,jpeg,gif,webp}"

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// IsImage reports whether name has an image extension.
func IsImage(name string) bool {
	return slices.Contains(imageExts, strings.ToLower(filepath.Ext(name)))
}

// DefaultLimit caps the number of documents returned by FindDocuments.
const DefaultLimit = 50

// Document is a file that can start a chat session.
type Document struct {
	Path    string // relative to the search root, OS separators
	Name    string
	Size    int64
	ModTime time.Time
}

// errLimit stops the walk once enough documents were found.
var errLimit = errors.New("limit reached")

// FindDocuments returns regular files under root matching pattern, sorted
// by path. Directories and hidden entries are skipped. At most limit
// documents are returned; a non-positive limit means DefaultLimit.
func FindDocuments(ctx context.Context, root, pattern string, limit int) ([]Document, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, chatroom.ErrValidation)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory: %w", root, chatroom.ErrValidation)
	}

	var docs []Document
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(path string, d iofs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || hidden(path) {
			return nil
		}
		fi, err := d.Info()
		if err != nil || !fi.Mode().IsRegular() {
			return nil
		}
		docs = append(docs, Document{
			Path:    filepath.FromSlash(path),
			Name:    d.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		// Collect a few extra so the sorted result is stable near the cap.
		if len(docs) >= limit*4 {
			return errLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	slices.SortFunc(docs, func(a, b Document) int { return strings.Compare(a.Path, b.Path) })
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func hidden(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}
