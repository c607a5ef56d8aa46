package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cars.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSeedFile(t *testing.T) {
	t.Run("Valid file keeps ids and dedupes tags", func(t *testing.T) {
		path := writeSeed(t, `[
			{"id": "lm95", "name": "Lightning McQueen", "image": "https://img.test/lm.png", "series": "Cars", "tags": ["racer", " racer ", ""]},
			{"name": "Mater", "image": "https://img.test/mater.png", "series": "Cars"}
		]`)

		cars, err := readSeedFile(path)
		require.NoError(t, err)
		require.Len(t, cars, 2)
		require.Equal(t, "lm95", cars[0].Id)
		require.Equal(t, []string{"racer"}, cars[0].Tags)
		require.Empty(t, cars[1].Id)
		require.Equal(t, []string{}, cars[1].Tags)
		require.Zero(t, cars[1].RatingCount)
	})

	t.Run("Unknown series is rejected", func(t *testing.T) {
		path := writeSeed(t, `[{"name": "Bigfoot", "image": "https://img.test/b.png", "series": "Monster Trucks"}]`)
		_, err := readSeedFile(path)
		require.ErrorContains(t, err, "unknown series")
	})

	t.Run("Missing name is rejected", func(t *testing.T) {
		path := writeSeed(t, `[{"image": "https://img.test/b.png", "series": "Cars"}]`)
		_, err := readSeedFile(path)
		require.ErrorContains(t, err, "name and image are required")
	})

	t.Run("Malformed JSON is rejected", func(t *testing.T) {
		path := writeSeed(t, `{"name": "not an array"}`)
		_, err := readSeedFile(path)
		require.Error(t, err)
	})
}
