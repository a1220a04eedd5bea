package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// ErrFileNotFound is returned by Create when the analyzed file no longer exists.
var ErrFileNotFound = errors.New("file not found")

type AnalysisRepository interface {
	// Create stores the base analysis. An existing row is left untouched.
	// It fails with ErrFileNotFound when the file has been deleted.
	Create(ctx context.Context, result *models.AnalysisResult) error
	Get(ctx context.Context, fileID string) (*models.AnalysisResult, error)
	// MergeArtifact writes one artifact column if it is still empty. It
	// reports false when the row is missing or the column was already set.
	MergeArtifact(ctx context.Context, fileID string, artifact models.Artifact, payload any) (bool, error)
}

type analysisRepository struct {
	db *sqlx.DB
}

func NewAnalysisRepository(db *sqlx.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// artifactColumns whitelists the column names that may be interpolated into
// MergeArtifact's UPDATE.
var artifactColumns = map[models.Artifact]string{
	models.ArtifactSuggestions: "suggestions",
	models.ArtifactSummary:     "summary",
	models.ArtifactQuiz:        "quiz",
	models.ArtifactSlides:      "slides",
	models.ArtifactCourseSheet: "course_sheet",
	models.ArtifactTPSheet:     "tp_sheet",
}

type analysisRow struct {
	FileID      string         `db:"file_id"`
	AnalyzedAt  time.Time      `db:"analyzed_at"`
	Content     string         `db:"content"`
	Suggestions sql.NullString `db:"suggestions"`
	Summary     sql.NullString `db:"summary"`
	Quiz        sql.NullString `db:"quiz"`
	Slides      sql.NullString `db:"slides"`
	CourseSheet sql.NullString `db:"course_sheet"`
	TPSheet     sql.NullString `db:"tp_sheet"`
}

func (r *analysisRepository) Create(ctx context.Context, result *models.AnalysisResult) error {
	contentJSON, err := json.Marshal(result.Content)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analysis_results (file_id, analyzed_at, content)
		SELECT ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM files WHERE id = ?)
		ON CONFLICT (file_id) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query, result.FileID, result.AnalyzedAt, string(contentJSON), result.FileID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	// Nothing inserted: either a row already exists or the file is gone.
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM files WHERE id = ?)`, result.FileID); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("analysis for %s: %w", result.FileID, ErrFileNotFound)
	}
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, fileID string) (*models.AnalysisResult, error) {
	var row analysisRow

	query := `
		SELECT file_id, analyzed_at, content, suggestions, summary, quiz, slides, course_sheet, tp_sheet
		FROM analysis_results
		WHERE file_id = ?
	`

	err := r.db.GetContext(ctx, &row, query, fileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.decode()
}

func (r *analysisRepository) MergeArtifact(ctx context.Context, fileID string, artifact models.Artifact, payload any) (bool, error) {
	column, ok := artifactColumns[artifact]
	if !ok {
		return false, fmt.Errorf("unknown artifact %q", artifact)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`UPDATE analysis_results SET %s = ? WHERE file_id = ? AND %s IS NULL`, column, column)
	res, err := r.db.ExecContext(ctx, query, string(data), fileID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (row *analysisRow) decode() (*models.AnalysisResult, error) {
	result := &models.AnalysisResult{
		FileID:     row.FileID,
		AnalyzedAt: row.AnalyzedAt,
	}

	if err := json.Unmarshal([]byte(row.Content), &result.Content); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	fields := []struct {
		col  sql.NullString
		dest any
		name string
	}{
		{row.Suggestions, &result.Suggestions, "suggestions"},
		{row.Summary, &result.Summary, "summary"},
		{row.Quiz, &result.Quiz, "quiz"},
		{row.Slides, &result.Slides, "slides"},
		{row.CourseSheet, &result.CourseSheet, "course_sheet"},
		{row.TPSheet, &result.TPSheet, "tp_sheet"},
	}

	for _, f := range fields {
		if !f.col.Valid {
			continue
		}
		if err := json.Unmarshal([]byte(f.col.String), f.dest); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}

	return result, nil
}
