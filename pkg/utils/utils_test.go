package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsString(t *testing.T) {
	slice := []string{"day", "wk", "mo"}

	assert.True(t, ContainsString(slice, "day"))
	assert.False(t, ContainsString(slice, "hr"))
	assert.False(t, ContainsString(nil, "day"))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("15-03-2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
