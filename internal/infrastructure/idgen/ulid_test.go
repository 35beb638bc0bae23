package idgen

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGenerator_Generate(t *testing.T) {
	gen := NewULIDGenerator()

	first := gen.Generate()
	second := gen.Generate()

	_, err := ulid.ParseStrict(first)
	require.NoError(t, err)
	assert.Len(t, first, ulid.EncodedSize)
	assert.NotEqual(t, first, second)
}
