package handlers

import (
	"context"
	"net/http"

	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/gorilla/mux"
)

type DeliveryHandler struct {
	responder
	files    services.FileService
	delivery services.DeliveryService
}

func NewDeliveryHandler(files services.FileService, delivery services.DeliveryService, logger *utils.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		responder: responder{logger: logger},
		files:     files,
		delivery:  delivery,
	}
}

func (h *DeliveryHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.delivery.ExportToPDF)
}

func (h *DeliveryHandler) ExportPPTX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.delivery.ExportToPPTX)
}

func (h *DeliveryHandler) export(w http.ResponseWriter, r *http.Request, run func(ctx context.Context, fileID string) (*models.DeliveryReceipt, error)) {
	id := mux.Vars(r)["id"]
	if _, err := ownedFile(r.Context(), h.files, id); err != nil {
		h.respondError(w, err)
		return
	}

	receipt, err := run(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, receipt)
}

func (h *DeliveryHandler) SendResults(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := ownedFile(r.Context(), h.files, id); err != nil {
		h.respondError(w, err)
		return
	}

	var req models.SendRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	receipt, err := h.delivery.SendResults(r.Context(), id, req.Email)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, receipt)
}
