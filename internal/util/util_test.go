package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsValidULID(a))
	assert.False(t, IsValidULID("not-a-ulid"))
	assert.False(t, IsValidULID(""))
}

func TestNewSubmissionID(t *testing.T) {
	id := NewSubmissionID()

	assert.Len(t, id, 36)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestSQLHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	ns := StringToNullString("x")
	assert.True(t, ns.Valid)
	assert.Equal(t, "x", NullStringToString(ns))
	assert.Equal(t, "", NullStringToString(StringToNullString("")))
}
