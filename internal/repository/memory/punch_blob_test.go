package memory

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunchRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPunchRepository()

	rows, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	input := []punch.RawPunch{{Worker: "ana", Date: "2024-03-04", Time: "08:00"}}
	require.NoError(t, repo.Save(ctx, input))
	input[0].Worker = "mutated"

	rows, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ana", rows[0].Worker)

	require.NoError(t, repo.Clear(ctx))
	rows, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
