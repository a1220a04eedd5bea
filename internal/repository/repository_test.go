package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/db"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return database
}

func newFile(id, owner string) *models.FileRecord {
	return &models.FileRecord{
		ID:         id,
		Name:       id + ".pdf",
		MimeType:   models.MimePDF,
		Size:       42,
		UploadedAt: time.Now().UTC(),
		OwnerID:    owner,
		Status:     models.FileStatusPending,
	}
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	account := &models.Account{
		User: models.User{
			ID:          "u1",
			Email:       "prof@example.com",
			Name:        "Prof",
			Institution: "Université",
			CreatedAt:   time.Now().UTC(),
		},
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(ctx, account))

	got, err := repo.GetByEmail(ctx, "prof@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := *account
	dup.ID = "u2"
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrDuplicateEmail)
}

func TestSessionRepositorySingleSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDB(t))

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, repo.Save(ctx, `{"id":"a"}`, "token-a"))
	require.NoError(t, repo.Save(ctx, `{"id":"b"}`, "token-b"))

	stored, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, `{"id":"b"}`, stored.Profile)
	assert.Equal(t, "token-b", stored.Token)

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))

	stored, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestFileRepositoryListAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newFile("f2", "owner")))
	require.NoError(t, repo.Create(ctx, newFile("f1", "owner")))
	require.NoError(t, repo.Create(ctx, newFile("f3", "other")))

	files, err := repo.ListByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f2", files[0].ID, "insertion order")
	assert.Equal(t, "f1", files[1].ID)

	require.NoError(t, repo.UpdateStatus(ctx, "f1", models.FileStatusProcessing))
	got, err := repo.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, models.FileStatusProcessing, got.Status)

	assert.Error(t, repo.UpdateStatus(ctx, "missing", models.FileStatusFailed))

	empty, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFileRepositoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	files := NewFileRepository(database)
	analyses := NewAnalysisRepository(database)

	require.NoError(t, files.Create(ctx, newFile("f1", "owner")))
	require.NoError(t, analyses.Create(ctx, &models.AnalysisResult{
		FileID:     "f1",
		AnalyzedAt: time.Now().UTC(),
		Content:    models.Content{Title: "f1"},
	}))

	deleted, err := files.Delete(ctx, "f1")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "f1", deleted.ID)

	result, err := analyses.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Nil(t, result)

	again, err := files.Delete(ctx, "f1")
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestAnalysisRepositoryCreateRequiresFile(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	files := NewFileRepository(database)
	analyses := NewAnalysisRepository(database)

	err := analyses.Create(ctx, &models.AnalysisResult{
		FileID:     "ghost",
		AnalyzedAt: time.Now().UTC(),
		Content:    models.Content{Title: "ghost"},
	})
	assert.ErrorIs(t, err, ErrFileNotFound)

	result, err := analyses.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, result, "no row for a missing file")

	require.NoError(t, files.Create(ctx, newFile("f1", "owner")))
	_, err = files.Delete(ctx, "f1")
	require.NoError(t, err)

	err = analyses.Create(ctx, &models.AnalysisResult{
		FileID:     "f1",
		AnalyzedAt: time.Now().UTC(),
		Content:    models.Content{Title: "f1"},
	})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestAnalysisRepositoryMergeOnce(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	repo := NewAnalysisRepository(database)
	require.NoError(t, NewFileRepository(database).Create(ctx, newFile("f1", "owner")))

	ok, err := repo.MergeArtifact(ctx, "f1", models.ArtifactQuiz, models.Quiz{Title: "early"})
	require.NoError(t, err)
	assert.False(t, ok, "no row to merge into")

	base := &models.AnalysisResult{
		FileID:     "f1",
		AnalyzedAt: time.Now().UTC(),
		Content:    models.Content{Title: "Cours", WordCount: 1200},
	}
	require.NoError(t, repo.Create(ctx, base))

	ok, err = repo.MergeArtifact(ctx, "f1", models.ArtifactQuiz, models.Quiz{Title: "first"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MergeArtifact(ctx, "f1", models.ArtifactQuiz, models.Quiz{Title: "second"})
	require.NoError(t, err)
	assert.False(t, ok)

	// Create on an existing row must not replace the base content.
	require.NoError(t, repo.Create(ctx, &models.AnalysisResult{
		FileID:     "f1",
		AnalyzedAt: time.Now().UTC(),
		Content:    models.Content{Title: "other"},
	}))

	result, err := repo.Get(ctx, "f1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Cours", result.Content.Title)
	require.NotNil(t, result.Quiz)
	assert.Equal(t, "first", result.Quiz.Title)
	assert.Nil(t, result.Summary)

	_, err = repo.MergeArtifact(ctx, "f1", models.Artifact("bogus"), nil)
	assert.Error(t, err)
}

func TestAnalysisRepositoryConcurrentMerges(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	repo := NewAnalysisRepository(database)
	require.NoError(t, NewFileRepository(database).Create(ctx, newFile("f1", "owner")))

	require.NoError(t, repo.Create(ctx, &models.AnalysisResult{
		FileID:     "f1",
		AnalyzedAt: time.Now().UTC(),
		Content:    models.Content{Title: "Cours"},
	}))

	payloads := map[models.Artifact]any{
		models.ArtifactSuggestions: models.Suggestions{Strengths: []string{"s"}},
		models.ArtifactSummary:     models.Summary{Title: "sum"},
		models.ArtifactQuiz:        models.Quiz{Title: "quiz"},
		models.ArtifactSlides:      models.Slides{Title: "slides"},
		models.ArtifactCourseSheet: models.CourseSheet{Title: "sheet"},
		models.ArtifactTPSheet:     models.TPSheet{Title: "tp"},
	}

	var wg sync.WaitGroup
	for artifact, payload := range payloads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.MergeArtifact(ctx, "f1", artifact, payload)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	result, err := repo.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Empty(t, result.Missing())
	assert.Equal(t, "Cours", result.Content.Title)
}
