package record

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	a := gen.NewID()
	b := gen.NewID()

	assert.Len(t, a, IDWidth)
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator()

	assert.Equal(t, "00000000-0000-0000-0000-000000000001", gen.NewID())
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", gen.NewID())

	// Sequence ids must survive the parser's id check.
	_, err := ParseLine([]byte(SequenceID(42)+"Ax"), 1)
	assert.NoError(t, err)
	assert.Len(t, SequenceID(123456789012), IDWidth)
}
