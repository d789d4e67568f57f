package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itinerary-microservice/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadOracle(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		o, err := LoadOracle(writeFile(t, `[{"name":"Casa Batlló","category":"cultural","rating":4.7,"visitTime":60}]`))
		require.NoError(t, err)

		got, err := o.Recommend(context.Background(), "ignored")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Casa Batlló", got[0].Name)
	})

	t.Run("wrapped object", func(t *testing.T) {
		o, err := LoadOracle(writeFile(t, `{"destinations":[{"name":"a"},{"name":"b"}]}`))
		require.NoError(t, err)

		got, err := o.Recommend(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := LoadOracle(writeFile(t, `not json`))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOracle(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestOracle_Recommend(t *testing.T) {
	o := NewOracle([]domain.RawDestination{{Name: "a"}, {Name: "b"}})

	first, err := o.Recommend(context.Background(), "p1")
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := o.Recommend(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "a", second[0].Name)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = o.Recommend(ctx, "p3")
	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
}

func TestUnconfigured(t *testing.T) {
	_, err := NewUnconfigured("gemini").Recommend(context.Background(), "prompt")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "gemini")
}
