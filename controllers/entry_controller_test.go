package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEntryDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("empty means today", func(t *testing.T) {
		t.Parallel()
		got, err := resolveEntryDate("", now)
		require.NoError(t, err)
		assert.Equal(t, today, got)
	})

	t.Run("past day normalized to midnight", func(t *testing.T) {
		t.Parallel()
		got, err := resolveEntryDate("2024-03-01", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("today accepted", func(t *testing.T) {
		t.Parallel()
		got, err := resolveEntryDate("2024-03-10", now)
		require.NoError(t, err)
		assert.Equal(t, today, got)
	})

	t.Run("future day rejected", func(t *testing.T) {
		t.Parallel()
		_, err := resolveEntryDate("2024-03-11", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("bad format rejected", func(t *testing.T) {
		t.Parallel()
		_, err := resolveEntryDate("10.03.2024", now)
		assert.Error(t, err)
	})
}
