package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapwiki/wikiextract"
	"github.com/mapwiki/wikiextract/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qidPtr(t *testing.T, raw string) *wikiextract.QID {
	t.Helper()
	qid, err := wikiextract.ParseQID(raw)
	require.NoError(t, err)
	return &qid
}

func titlePtr(t *testing.T, name, lang string) *wikiextract.Title {
	t.Helper()
	title, err := wikiextract.NewTitle(name, lang)
	require.NoError(t, err)
	return &title
}

func TestArticleDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  wikiextract.ArticleRef
		want string
	}{
		{
			name: "qid keyed",
			ref:  wikiextract.ArticleRef{QID: qidPtr(t, "Q60"), Lang: "en"},
			want: filepath.Join("wikidata", "Q60"),
		},
		{
			name: "qid wins over title",
			ref: wikiextract.ArticleRef{
				QID:   qidPtr(t, "Q60"),
				Title: titlePtr(t, "New York City", "en"),
				Lang:  "en",
			},
			want: filepath.Join("wikidata", "Q60"),
		},
		{
			name: "title keyed",
			ref:  wikiextract.ArticleRef{Title: titlePtr(t, "New York City", "en"), Lang: "en"},
			want: filepath.Join("en.wikipedia.org", "wiki", "New_York_City"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.ArticleDir(tt.ref))
		})
	}
}

func TestArticleStore_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("writes qid-keyed article", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArticleStore(dir, "html")
		ref := wikiextract.ArticleRef{QID: qidPtr(t, "Q60"), Lang: "en"}

		err := store.WriteArticle(context.Background(), ref, []byte("<p>NYC</p>"))

		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, "wikidata", "Q60", "en.html"))
		require.NoError(t, err)
		assert.Equal(t, "<p>NYC</p>", string(got))
	})

	t.Run("languages of one entity live side by side", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArticleStore(dir, "html")

		en := wikiextract.ArticleRef{QID: qidPtr(t, "Q60"), Lang: "en"}
		de := wikiextract.ArticleRef{QID: qidPtr(t, "Q60"), Lang: "de"}

		require.NoError(t, store.WriteArticle(context.Background(), en, []byte("english")))
		require.NoError(t, store.WriteArticle(context.Background(), de, []byte("german")))

		gotEN, err := os.ReadFile(filepath.Join(dir, "wikidata", "Q60", "en.html"))
		require.NoError(t, err)
		gotDE, err := os.ReadFile(filepath.Join(dir, "wikidata", "Q60", "de.html"))
		require.NoError(t, err)
		assert.Equal(t, "english", string(gotEN))
		assert.Equal(t, "german", string(gotDE))
	})

	t.Run("writes title-keyed article", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArticleStore(dir, "md")
		ref := wikiextract.ArticleRef{Title: titlePtr(t, "Breil/Brigels", "de"), Lang: "de"}

		err := store.WriteArticle(context.Background(), ref, []byte("# Breil"))

		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, "de.wikipedia.org", "wiki", "Breil", "Brigels", "de.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Breil", string(got))
	})

	t.Run("overwrites changed content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArticleStore(dir, "html")
		ref := wikiextract.ArticleRef{QID: qidPtr(t, "Q60"), Lang: "en"}

		require.NoError(t, store.WriteArticle(context.Background(), ref, []byte("old")))
		require.NoError(t, store.WriteArticle(context.Background(), ref, []byte("new")))

		got, err := os.ReadFile(filepath.Join(dir, "wikidata", "Q60", "en.html"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("skips rewrite of identical content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArticleStore(dir, "html")
		ref := wikiextract.ArticleRef{QID: qidPtr(t, "Q60"), Lang: "en"}
		path := filepath.Join(dir, "wikidata", "Q60", "en.html")

		require.NoError(t, store.WriteArticle(context.Background(), ref, []byte("same")))
		before, err := os.Stat(path)
		require.NoError(t, err)

		require.NoError(t, store.WriteArticle(context.Background(), ref, []byte("same")))
		after, err := os.Stat(path)
		require.NoError(t, err)

		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArticleStore(dir, "html")
		ref := wikiextract.ArticleRef{QID: qidPtr(t, "Q60"), Lang: "en"}

		require.NoError(t, store.WriteArticle(context.Background(), ref, []byte("x")))

		entries, err := os.ReadDir(filepath.Join(dir, "wikidata", "Q60"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "en.html", entries[0].Name())
	})

	t.Run("rejects invalid reference", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArticleStore(t.TempDir(), "html")

		err := store.WriteArticle(context.Background(), wikiextract.ArticleRef{Lang: "en"}, []byte("x"))

		require.Error(t, err)
		assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
	})
}
