package mock

import (
	"context"

	"github.com/mapwiki/wikiextract"
)

var _ wikiextract.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is a mock implementation of wikiextract.ArticleStore.
type ArticleStore struct {
	WriteArticleFn func(ctx context.Context, ref wikiextract.ArticleRef, content []byte) error
}

func (s *ArticleStore) WriteArticle(ctx context.Context, ref wikiextract.ArticleRef, content []byte) error {
	return s.WriteArticleFn(ctx, ref, content)
}
