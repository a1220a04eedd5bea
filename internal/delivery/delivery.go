package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/latency"
	"github.com/BerylCAtieno/opticours-api/internal/models"
)

// Scripted response times of the export and mail backends.
const (
	PDFExportLatency  = 2000 * time.Millisecond
	PPTXExportLatency = 2500 * time.Millisecond
	EmailLatency      = 1500 * time.Millisecond
)

// Deliverer acknowledges export and email requests without producing output.
type Deliverer interface {
	ExportPDF(ctx context.Context, fileID string) (*models.DeliveryReceipt, error)
	ExportPPTX(ctx context.Context, fileID string) (*models.DeliveryReceipt, error)
	SendResults(ctx context.Context, fileID, email string) (*models.DeliveryReceipt, error)
}

type simulatedDeliverer struct {
	wait latency.Func
}

func NewSimulatedDeliverer(wait latency.Func) Deliverer {
	if wait == nil {
		wait = latency.Timer
	}
	return &simulatedDeliverer{wait: wait}
}

func (d *simulatedDeliverer) ExportPDF(ctx context.Context, _ string) (*models.DeliveryReceipt, error) {
	if err := d.wait(ctx, PDFExportLatency); err != nil {
		return nil, err
	}
	return &models.DeliveryReceipt{Success: true, Message: "Export PDF réussi", DownloadURL: "#"}, nil
}

func (d *simulatedDeliverer) ExportPPTX(ctx context.Context, _ string) (*models.DeliveryReceipt, error) {
	if err := d.wait(ctx, PPTXExportLatency); err != nil {
		return nil, err
	}
	return &models.DeliveryReceipt{Success: true, Message: "Export PowerPoint réussi", DownloadURL: "#"}, nil
}

func (d *simulatedDeliverer) SendResults(ctx context.Context, _ string, email string) (*models.DeliveryReceipt, error) {
	if err := d.wait(ctx, EmailLatency); err != nil {
		return nil, err
	}
	return &models.DeliveryReceipt{
		Success: true,
		Message: fmt.Sprintf("Résultats envoyés avec succès à %s", email),
	}, nil
}
