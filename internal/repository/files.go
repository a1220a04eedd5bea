package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type FileRepository interface {
	Create(ctx context.Context, file *models.FileRecord) error
	GetByID(ctx context.Context, id string) (*models.FileRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.FileRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.FileStatus) error
	// Delete removes the record and its analysis result together and returns
	// the removed record, or nil when nothing matched.
	Delete(ctx context.Context, id string) (*models.FileRecord, error)
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

const fileColumns = `id, name, mime_type, size, uploaded_at, owner_id, status, content_preview, storage_key`

func (r *fileRepository) Create(ctx context.Context, file *models.FileRecord) error {
	query := `
		INSERT INTO files (id, name, mime_type, size, uploaded_at, owner_id, status, content_preview, storage_key)
		VALUES (:id, :name, :mime_type, :size, :uploaded_at, :owner_id, :status, :content_preview, :storage_key)
	`

	_, err := r.db.NamedExecContext(ctx, query, file)
	return err
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	return getFile(ctx, r.db, id)
}

func (r *fileRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.FileRecord, error) {
	files := []models.FileRecord{}

	query := `SELECT ` + fileColumns + ` FROM files WHERE owner_id = ? ORDER BY seq`
	if err := r.db.SelectContext(ctx, &files, query, ownerID); err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) UpdateStatus(ctx context.Context, id string, status models.FileStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE files SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("file %s: %w", id, sql.ErrNoRows)
	}

	return nil
}

func (r *fileRepository) Delete(ctx context.Context, id string) (*models.FileRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	file, err := getFile(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM analysis_results WHERE file_id = ?`, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return file, nil
}

func getFile(ctx context.Context, q sqlx.QueryerContext, id string) (*models.FileRecord, error) {
	var file models.FileRecord

	err := sqlx.GetContext(ctx, q, &file, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &file, nil
}
