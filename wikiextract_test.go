package wikiextract_test

import (
	"testing"

	"github.com/mapwiki/wikiextract"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wikiextract.Errorf(wikiextract.ENOTFOUND, "article %q not found", "test")

	assert.Equal(t, wikiextract.ENOTFOUND, wikiextract.ErrorCode(err))
	assert.Equal(t, "article \"test\" not found", wikiextract.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikiextract.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikiextract.ErrorMessage(nil))
}
