package slog_test

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/mapwiki/wikiextract"
	"github.com/mapwiki/wikiextract/mock"
	wslog "github.com/mapwiki/wikiextract/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSimplifier(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))

		next := &mock.Simplifier{SimplifyFn: func(html, lang string) (string, error) {
			assert.Equal(t, "en", lang)
			return "<p>out</p>", nil
		}}

		s := wslog.NewLoggingSimplifier(next, logger)
		got, err := s.Simplify("<p>in with extra bytes</p>", "en")

		require.NoError(t, err)
		assert.Equal(t, "<p>out</p>", got)
		assert.Contains(t, buf.String(), "simplified article")
		assert.Contains(t, buf.String(), "lang=en")
	})

	t.Run("delegates and logs failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))

		next := &mock.Simplifier{SimplifyFn: func(string, string) (string, error) {
			return "", wikiextract.Errorf(wikiextract.EINVALID, "page has no text")
		}}

		s := wslog.NewLoggingSimplifier(next, logger)
		_, err := s.Simplify("<p></p>", "en")

		require.Error(t, err)
		assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
		assert.Contains(t, buf.String(), "simplification failed")
	})
}
