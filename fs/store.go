// Package fs provides file-based storage for extracted articles and the
// discovery log shared between concurrent extraction processes.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mapwiki/wikiextract"
)

// Ensure ArticleStore implements wikiextract.ArticleStore at compile time.
var _ wikiextract.ArticleStore = (*ArticleStore)(nil)

// ArticleStore writes article files beneath a base directory, keyed by the
// article's identity and language. Writes are atomic: content goes to a
// temporary file in the destination directory and is renamed into place, so
// a reader never observes a partially written article.
type ArticleStore struct {
	baseDir string
	ext     string
}

// NewArticleStore creates a store rooted at baseDir. ext is the file
// extension without the leading dot, e.g. "html" or "md".
func NewArticleStore(baseDir, ext string) *ArticleStore {
	return &ArticleStore{baseDir: baseDir, ext: ext}
}

// ArticleDir returns the directory for an article relative to the store
// root. Articles with a known Wikidata item share one directory across
// languages; title-only articles are keyed by their wikipedia.org URL path.
func ArticleDir(ref wikiextract.ArticleRef) string {
	if ref.QID != nil {
		return filepath.Join("wikidata", ref.QID.String())
	}
	return filepath.Join(ref.Title.Lang+".wikipedia.org", "wiki", ref.Title.Name)
}

// WriteArticle stores content for ref, creating directories as needed. If a
// file with identical content already exists the write is skipped, which
// keeps repeated runs over the same dump from churning mtimes.
func (s *ArticleStore) WriteArticle(ctx context.Context, ref wikiextract.ArticleRef, content []byte) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(s.baseDir, ArticleDir(ref))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wikiextract.Errorf(wikiextract.EINTERNAL, "creating article directory: %v", err)
	}

	fullPath := filepath.Join(dir, ref.Lang+"."+s.ext)
	if same, err := sameContent(fullPath, content); err != nil {
		return err
	} else if same {
		return nil
	}

	tmpPath := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return wikiextract.Errorf(wikiextract.EINTERNAL, "writing article: %v", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return wikiextract.Errorf(wikiextract.EINTERNAL, "renaming article into place: %v", err)
	}
	return nil
}

// sameContent reports whether the file at path exists with the same xxhash
// digest as content. A missing file is simply not the same.
func sameContent(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, wikiextract.Errorf(wikiextract.EINTERNAL, "reading existing article: %v", err)
	}
	return xxhash.Sum64(existing) == xxhash.Sum64(content), nil
}
