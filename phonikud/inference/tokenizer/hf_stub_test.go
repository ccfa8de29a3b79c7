//go:build !hftokenizers
// +build !hftokenizers

package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHFUnavailableWithoutTag(t *testing.T) {
	tok, err := New(BackendHF, "tokenizer.json")
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Nil(t, tok)

	var h HF
	_, err = h.Encode("שלום")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.NoError(t, h.Close())
}
