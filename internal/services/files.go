package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/extractor"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/repository"
	"github.com/BerylCAtieno/opticours-api/internal/storage"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
)

type FileService interface {
	UploadFile(ctx context.Context, req *models.UploadRequest) (*models.FileRecord, error)
	ListFiles(ctx context.Context, ownerID string) ([]models.FileRecord, error)
	GetFile(ctx context.Context, id string) (*models.FileRecord, error)
	// DownloadFile returns the record together with the stored bytes.
	DownloadFile(ctx context.Context, id string) (*models.FileRecord, []byte, error)
	// DeleteFile removes the file and its analysis. Unknown ids are not an error.
	DeleteFile(ctx context.Context, id string) error
}

type FileOptions struct {
	MaxFileSize  int64
	PreviewChars int
}

type fileService struct {
	repo    repository.FileRepository
	storage storage.Storage
	opts    FileOptions
	logger  *utils.Logger
}

func NewFileService(repo repository.FileRepository, store storage.Storage, opts FileOptions, logger *utils.Logger) FileService {
	return &fileService{
		repo:    repo,
		storage: store,
		opts:    opts,
		logger:  logger,
	}
}

func (s *fileService) UploadFile(ctx context.Context, req *models.UploadRequest) (*models.FileRecord, error) {
	if req.OwnerID == "" {
		return nil, utils.NewUnauthorizedError("Authentification requise")
	}

	if !models.IsSupportedMime(req.ContentType) {
		s.logger.Warn("Unsupported content type", "content_type", req.ContentType, "filename", req.Filename)
		return nil, utils.NewUnsupportedFormatError("Format de fichier non supporté. Veuillez charger un fichier PDF, DOCX ou PPTX.")
	}

	if strings.TrimSpace(req.Filename) == "" {
		return nil, utils.NewBadRequestError("Nom de fichier manquant")
	}
	if len(req.File) == 0 {
		return nil, utils.NewBadRequestError("Le fichier est vide")
	}
	if s.opts.MaxFileSize > 0 && int64(len(req.File)) > s.opts.MaxFileSize {
		return nil, utils.NewBadRequestError(fmt.Sprintf("Le fichier dépasse la taille maximale de %d octets", s.opts.MaxFileSize))
	}

	fileID := utils.GenerateID()
	key := storage.ObjectKey(fileID, req.Filename)

	if err := s.storage.Upload(ctx, key, req.File, req.ContentType); err != nil {
		s.logger.Error("Failed to store file", "error", err, "storage_key", key)
		return nil, utils.NewInternalError("Failed to store file")
	}

	file := &models.FileRecord{
		ID:             fileID,
		Name:           req.Filename,
		MimeType:       req.ContentType,
		Size:           int64(len(req.File)),
		UploadedAt:     time.Now().UTC(),
		OwnerID:        req.OwnerID,
		Status:         models.FileStatusPending,
		ContentPreview: extractor.Preview(req.File, req.ContentType, s.opts.PreviewChars),
		StorageKey:     key,
	}

	if err := s.repo.Create(ctx, file); err != nil {
		s.logger.Error("Failed to save file record", "error", err, "file_id", fileID)
		// Attempt to cleanup storage
		_ = s.storage.Delete(ctx, key)
		return nil, utils.NewInternalError("Failed to save file metadata")
	}

	s.logger.Info("File uploaded",
		"id", fileID,
		"filename", req.Filename,
		"content_type", req.ContentType,
		"size", file.Size,
		"preview_length", len(file.ContentPreview))

	return file, nil
}

func (s *fileService) ListFiles(ctx context.Context, ownerID string) ([]models.FileRecord, error) {
	files, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list files", "error", err, "owner_id", ownerID)
		return nil, utils.NewInternalError("Failed to list files")
	}
	return files, nil
}

func (s *fileService) GetFile(ctx context.Context, id string) (*models.FileRecord, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get file", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve file")
	}
	if file == nil {
		return nil, utils.NewFileNotFoundError("Fichier non trouvé")
	}
	return file, nil
}

func (s *fileService) DownloadFile(ctx context.Context, id string) (*models.FileRecord, []byte, error) {
	file, err := s.GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.storage.Download(ctx, file.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		s.logger.Warn("Stored bytes missing", "id", id, "storage_key", file.StorageKey)
		return nil, nil, utils.NewFileNotFoundError("Contenu du fichier introuvable")
	}
	if err != nil {
		s.logger.Error("Failed to download file", "error", err, "id", id)
		return nil, nil, utils.NewInternalError("Failed to retrieve file content")
	}

	return file, data, nil
}

func (s *fileService) DeleteFile(ctx context.Context, id string) error {
	file, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete file", "error", err, "id", id)
		return utils.NewInternalError("Failed to delete file")
	}
	if file == nil {
		return nil
	}

	if file.StorageKey != "" {
		if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
			s.logger.Warn("Failed to delete stored bytes", "error", err, "storage_key", file.StorageKey)
		}
	}

	s.logger.Info("File deleted", "id", id)
	return nil
}
