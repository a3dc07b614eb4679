package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pdftext/constants"
)

func openTestDB(t *testing.T) RunRepository {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRunRepository(db, nil)
}

func TestRecordAndListRoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	first := Run{
		ID:          uuid.New(),
		SourcePath:  "/docs/a.pdf",
		OutputPath:  "/docs/a.txt",
		Languages:   "osd+eng",
		Pages:       3,
		FailedPages: 0,
		Status:      constants.RunStatusSucceeded,
		StartedAt:   started,
		FinishedAt:  started.Add(4 * time.Second),
	}
	second := Run{
		ID:           uuid.New(),
		SourcePath:   "/docs/b.pdf",
		OutputPath:   "/docs/b.txt",
		Languages:    "eng",
		Pages:        2,
		FailedPages:  1,
		Status:       constants.RunStatusPagesFailed,
		ErrorMessage: "",
		StartedAt:    started.Add(time.Minute),
		FinishedAt:   started.Add(time.Minute + 2*time.Second),
	}

	require.NoError(t, repo.Record(ctx, first))
	require.NoError(t, repo.Record(ctx, second))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, "/docs/a.pdf", runs[0].SourcePath)
	assert.Equal(t, constants.RunStatusSucceeded, runs[0].Status)
	assert.True(t, runs[0].StartedAt.Equal(started))

	assert.Equal(t, second.ID, runs[1].ID)
	assert.Equal(t, 1, runs[1].FailedPages)
	assert.Equal(t, constants.RunStatusPagesFailed, runs[1].Status)
}

func TestRecordFailedRunKeepsErrorMessage(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	now := time.Now()
	run := Run{
		ID:           uuid.New(),
		SourcePath:   "/docs/missing.pdf",
		OutputPath:   "/docs/out.txt",
		Languages:    "eng",
		Status:       constants.RunStatusFailed,
		ErrorMessage: "NOT_FOUND: pdf file not found: /docs/missing.pdf",
		StartedAt:    now,
		FinishedAt:   now,
	}
	require.NoError(t, repo.Record(ctx, run))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, constants.RunStatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].ErrorMessage, "NOT_FOUND")
	assert.Zero(t, runs[0].Pages)
}

func TestListEmptyHistory(t *testing.T) {
	repo := openTestDB(t)
	runs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	run := Run{
		ID:         uuid.New(),
		SourcePath: "/docs/a.pdf",
		OutputPath: "/docs/a.txt",
		Languages:  "eng",
		Status:     constants.RunStatusSucceeded,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}
	require.NoError(t, repo.Record(ctx, run))
	require.Error(t, repo.Record(ctx, run))
}
