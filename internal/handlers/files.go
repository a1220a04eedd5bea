package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/opticours-api/internal/middleware"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
)

// multipartOverhead leaves room for part headers around the file itself.
const multipartOverhead = 1 << 20

type FileHandler struct {
	responder
	service     services.FileService
	maxFileSize int64
}

func NewFileHandler(service services.FileService, maxFileSize int64, logger *utils.Logger) *FileHandler {
	return &FileHandler{
		responder:   responder{logger: logger},
		service:     service,
		maxFileSize: maxFileSize,
	}
}

func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.respondError(w, utils.NewUnauthorizedError("Authentification requise"))
		return
	}

	limit := h.maxFileSize + multipartOverhead
	if r.ContentLength > limit {
		h.respondError(w, utils.NewBadRequestError("Le fichier dépasse la taille maximale autorisée"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(w, utils.NewBadRequestError("Le fichier dépasse la taille maximale autorisée"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Formulaire invalide"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("Aucun fichier fourni"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	contentType := determineContentType(header.Filename, header.Header.Get("Content-Type"), data)

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"reported_content_type", header.Header.Get("Content-Type"),
		"determined_content_type", contentType,
		"owner_id", user.ID)

	record, err := h.service.UploadFile(r.Context(), &models.UploadRequest{
		File:        data,
		Filename:    header.Filename,
		ContentType: contentType,
		OwnerID:     user.ID,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, record)
}

func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.respondError(w, utils.NewUnauthorizedError("Authentification requise"))
		return
	}

	files, err := h.service.ListFiles(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if files == nil {
		files = []models.FileRecord{}
	}

	h.respondJSON(w, http.StatusOK, files)
}

func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	file, err := ownedFile(r.Context(), h.service, mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, file)
}

// DownloadFile streams the original upload back to its owner.
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := ownedFile(r.Context(), h.service, id); err != nil {
		h.respondError(w, err)
		return
	}

	file, data, err := h.service.DownloadFile(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write file content", "error", err, "id", id)
	}
}

func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	_, err := ownedFile(r.Context(), h.service, id)
	switch {
	case utils.IsKind(err, utils.KindFileNotFound):
		// Already gone, or never visible to this user.
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		h.respondError(w, err)
		return
	}

	if err := h.service.DeleteFile(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// determineContentType prefers a specific part header, then the file
// extension, then the sniffed content.
func determineContentType(filename, headerContentType string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(headerContentType); err == nil &&
		mediaType != "application/octet-stream" {
		return mediaType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.MimePDF
	case ".docx":
		return models.MimeDOCX
	case ".pptx":
		return models.MimePPTX
	}

	detected := mimetype.Detect(data)
	for _, supported := range []string{models.MimePDF, models.MimeDOCX, models.MimePPTX} {
		if detected.Is(supported) {
			return supported
		}
	}

	mediaType, _, _ := mime.ParseMediaType(detected.String())
	return mediaType
}
