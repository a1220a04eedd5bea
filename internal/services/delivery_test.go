package services

import (
	"context"
	"testing"

	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryRequiresAnalysis(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.delivery.ExportToPDF(ctx, "missing")
	assert.True(t, utils.IsKind(err, utils.KindAnalysisNotFound))

	_, err = env.delivery.ExportToPPTX(ctx, "missing")
	assert.True(t, utils.IsKind(err, utils.KindAnalysisNotFound))

	_, err = env.delivery.SendResults(ctx, "missing", "prof@example.com")
	assert.True(t, utils.IsKind(err, utils.KindAnalysisNotFound))
}

func TestDeliveryReceipts(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	file := env.upload(t, "owner-1", "Cours.pdf")
	_, err := env.analysis.AnalyzeContent(ctx, file.ID)
	require.NoError(t, err)

	pdf, err := env.delivery.ExportToPDF(ctx, file.ID)
	require.NoError(t, err)
	assert.True(t, pdf.Success)

	pptx, err := env.delivery.ExportToPPTX(ctx, file.ID)
	require.NoError(t, err)
	assert.True(t, pptx.Success)

	mail, err := env.delivery.SendResults(ctx, file.ID, " prof@example.com ")
	require.NoError(t, err)
	assert.Contains(t, mail.Message, "prof@example.com")

	_, err = env.delivery.SendResults(ctx, file.ID, "prof.example.com")
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput))
}
