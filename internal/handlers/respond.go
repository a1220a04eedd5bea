package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BerylCAtieno/opticours-api/internal/middleware"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
)

type responder struct {
	logger *utils.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h responder) respondError(w http.ResponseWriter, err error) {
	var status int
	var message string

	switch e := err.(type) {
	case *utils.AppError:
		status = e.StatusCode
		message = e.Message
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	h.logger.Error("Request error", "status", status, "kind", utils.KindOf(err), "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"kind":  string(utils.KindOf(err)),
	})
}

func (h responder) decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.NewBadRequestError("Corps de requête JSON invalide")
	}
	return nil
}

// ownedFile loads a file and hides it from anyone but its owner.
func ownedFile(ctx context.Context, files services.FileService, id string) (*models.FileRecord, error) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return nil, utils.NewUnauthorizedError("Authentification requise")
	}

	file, err := files.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if file.OwnerID != user.ID {
		return nil, utils.NewFileNotFoundError("Fichier introuvable")
	}
	return file, nil
}
