package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"liverRisk/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *PredictionAuditRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndRecent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &domain.PredictionAudit{
			ID:                 uuid.New(),
			RequestID:          []string{"a", "b", "c"}[i],
			ModelVersion:       "v1",
			Label:              i % 2,
			Confidence:         0.75,
			WarningCount:       i,
			AttributionEnabled: i != 1,
			TopFeature:         "Total Bilirubin",
			LatencyMs:          int64(10 + i),
			CreatedAt:          base.Add(time.Duration(i) * time.Minute),
		}))
	}

	rows, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "c", rows[0].RequestID)
	assert.Equal(t, "b", rows[1].RequestID)
	assert.Equal(t, base.Add(2*time.Minute), rows[0].CreatedAt)
	assert.True(t, rows[0].AttributionEnabled)
	assert.False(t, rows[1].AttributionEnabled)
	assert.Equal(t, 0.75, rows[0].Confidence)
	assert.Equal(t, int64(12), rows[0].LatencyMs)
	assert.NotEqual(t, uuid.Nil, rows[0].ID)
}

func TestSave_FillsIDAndTimestamp(t *testing.T) {
	repo := setupTestRepo(t)

	rec := &domain.PredictionAudit{Label: 1}
	require.NoError(t, repo.Save(context.Background(), rec))
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	rows, err := repo.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, rec.ID, rows[0].ID)
}

func TestRecent_Empty(t *testing.T) {
	rows, err := setupTestRepo(t).Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), &domain.PredictionAudit{RequestID: "kept"}))
	require.NoError(t, repo.Close())

	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()

	rows, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "kept", rows[0].RequestID)
}
