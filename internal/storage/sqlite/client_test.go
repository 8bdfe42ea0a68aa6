package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarity-ai/backend/internal/analysis"
	"github.com/clarity-ai/backend/internal/storage/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.InitSchema())
	return client
}

func sampleEntry(userID, prompt string, createdAt time.Time) *models.HistoryEntry {
	record := analysis.DecisionRecord{
		Pros:    []analysis.WeightedPoint{{Point: "Lower cost of living", Weight: 4}},
		Cons:    []analysis.WeightedPoint{{Point: "Away from family", Weight: 5}},
		Verdict: "Consider a trial visit first.",
	}
	return &models.HistoryEntry{
		UserID:     userID,
		Prompt:     prompt,
		Category:   "personal",
		Result:     record,
		Metrics:    analysis.ComputeMetrics(&record),
		ResultKind: "success",
		CreatedAt:  createdAt,
	}
}

func TestInsertAndListHistory(t *testing.T) {
	client := newTestClient(t)

	id, err := client.InsertHistoryEntry(sampleEntry("user-1", "Should I move cities?", time.Now()))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := client.ListHistory("user-1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, "Should I move cities?", e.Prompt)
	assert.Equal(t, "personal", e.Category)
	assert.Equal(t, "success", e.ResultKind)
	assert.Equal(t, "Consider a trial visit first.", e.Result.Verdict)
	require.Len(t, e.Result.Pros, 1)
	assert.Equal(t, 4, e.Result.Pros[0].Weight)
	assert.Equal(t, 9, e.Metrics.TotalWeight)
	assert.Equal(t, 44, e.Metrics.ProsPercentage)
	assert.Equal(t, 56, e.Metrics.ConsPercentage)
}

func TestListHistoryNewestFirst(t *testing.T) {
	client := newTestClient(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		_, err := client.InsertHistoryEntry(sampleEntry("user-1",
			[]string{"oldest", "middle", "newest"}[i],
			base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	entries, err := client.ListHistory("user-1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].Prompt)
	assert.Equal(t, "middle", entries[1].Prompt)
	assert.Equal(t, "oldest", entries[2].Prompt)
}

func TestListHistoryLimit(t *testing.T) {
	client := newTestClient(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := client.InsertHistoryEntry(sampleEntry("user-1", "q", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	entries, err := client.ListHistory("user-1", 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = client.ListHistory("user-1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestListHistoryFiltersByUser(t *testing.T) {
	client := newTestClient(t)

	_, err := client.InsertHistoryEntry(sampleEntry("user-1", "mine", time.Now()))
	require.NoError(t, err)
	_, err = client.InsertHistoryEntry(sampleEntry("user-2", "theirs", time.Now()))
	require.NoError(t, err)

	entries, err := client.ListHistory("user-1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mine", entries[0].Prompt)

	entries, err = client.ListHistory("user-3", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInsertAssignsDistinctIDs(t *testing.T) {
	client := newTestClient(t)

	id1, err := client.InsertHistoryEntry(sampleEntry("user-1", "a", time.Now()))
	require.NoError(t, err)
	id2, err := client.InsertHistoryEntry(sampleEntry("user-1", "b", time.Now()))
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}
