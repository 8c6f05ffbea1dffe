package docrag_test

import (
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docrag.Errorf(docrag.ENOTFOUND, "collection %q not found", "test")

	assert.Equal(t, docrag.ENOTFOUND, docrag.ErrorCode(err))
	assert.Equal(t, "collection \"test\" not found", docrag.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docrag.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docrag.ErrorMessage(nil))
}
