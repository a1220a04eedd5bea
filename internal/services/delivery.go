package services

import (
	"context"
	"strings"

	"github.com/BerylCAtieno/opticours-api/internal/delivery"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/repository"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
)

type DeliveryService interface {
	ExportToPDF(ctx context.Context, fileID string) (*models.DeliveryReceipt, error)
	ExportToPPTX(ctx context.Context, fileID string) (*models.DeliveryReceipt, error)
	SendResults(ctx context.Context, fileID, email string) (*models.DeliveryReceipt, error)
}

type deliveryService struct {
	results   repository.AnalysisRepository
	deliverer delivery.Deliverer
	logger    *utils.Logger
}

func NewDeliveryService(results repository.AnalysisRepository, deliverer delivery.Deliverer, logger *utils.Logger) DeliveryService {
	return &deliveryService{
		results:   results,
		deliverer: deliverer,
		logger:    logger,
	}
}

func (s *deliveryService) ExportToPDF(ctx context.Context, fileID string) (*models.DeliveryReceipt, error) {
	if err := s.requireResult(ctx, fileID); err != nil {
		return nil, err
	}
	return s.finish(s.deliverer.ExportPDF(context.WithoutCancel(ctx), fileID))
}

func (s *deliveryService) ExportToPPTX(ctx context.Context, fileID string) (*models.DeliveryReceipt, error) {
	if err := s.requireResult(ctx, fileID); err != nil {
		return nil, err
	}
	return s.finish(s.deliverer.ExportPPTX(context.WithoutCancel(ctx), fileID))
}

func (s *deliveryService) SendResults(ctx context.Context, fileID, email string) (*models.DeliveryReceipt, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil, utils.NewBadRequestError("Adresse email invalide")
	}
	if err := s.requireResult(ctx, fileID); err != nil {
		return nil, err
	}
	return s.finish(s.deliverer.SendResults(context.WithoutCancel(ctx), fileID, email))
}

func (s *deliveryService) requireResult(ctx context.Context, fileID string) error {
	result, err := s.results.Get(ctx, fileID)
	if err != nil {
		s.logger.Error("Failed to get analysis", "error", err, "file_id", fileID)
		return utils.NewInternalError("Failed to retrieve analysis")
	}
	if result == nil {
		return utils.NewAnalysisNotFoundError("Aucune analyse pour ce fichier")
	}
	return nil
}

func (s *deliveryService) finish(receipt *models.DeliveryReceipt, err error) (*models.DeliveryReceipt, error) {
	if err != nil {
		s.logger.Error("Delivery failed", "error", err)
		return nil, utils.NewInternalError("Delivery failed")
	}
	return receipt, nil
}
