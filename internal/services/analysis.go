package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/analyzer"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/repository"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"golang.org/x/sync/errgroup"
)

// AnalysisService runs the base analysis and the artifact generators. Once
// started, an operation runs to completion even if the caller goes away.
type AnalysisService interface {
	AnalyzeContent(ctx context.Context, fileID string) (*models.AnalysisResult, error)
	GenerateSuggestions(ctx context.Context, fileID string) (*models.Suggestions, error)
	GenerateSummary(ctx context.Context, fileID string) (*models.Summary, error)
	GenerateQuiz(ctx context.Context, fileID string) (*models.Quiz, error)
	GenerateSlides(ctx context.Context, fileID string) (*models.Slides, error)
	GenerateCourseSheet(ctx context.Context, fileID string) (*models.CourseSheet, error)
	GenerateTPSheet(ctx context.Context, fileID string) (*models.TPSheet, error)
	// Generate dispatches to the generator for artifact.
	Generate(ctx context.Context, fileID string, artifact models.Artifact) (any, error)
	// GetAnalysisResults returns nil when the file has not been analyzed.
	GetAnalysisResults(ctx context.Context, fileID string) (*models.AnalysisResult, error)
	// CompleteArtifacts runs every generator whose artifact is still missing,
	// concurrently, and returns the merged result.
	CompleteArtifacts(ctx context.Context, fileID string) (*models.AnalysisResult, error)
}

type analysisService struct {
	files    repository.FileRepository
	results  repository.AnalysisRepository
	analyzer analyzer.Analyzer
	logger   *utils.Logger
	now      func() time.Time
}

func NewAnalysisService(files repository.FileRepository, results repository.AnalysisRepository, a analyzer.Analyzer, logger *utils.Logger) AnalysisService {
	return &analysisService{
		files:    files,
		results:  results,
		analyzer: a,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *analysisService) AnalyzeContent(ctx context.Context, fileID string) (*models.AnalysisResult, error) {
	ctx = context.WithoutCancel(ctx)

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		s.logger.Error("Failed to get file", "error", err, "id", fileID)
		return nil, utils.NewInternalError("Failed to retrieve file")
	}
	if file == nil {
		return nil, utils.NewFileNotFoundError("Fichier non trouvé")
	}

	// Check if already analyzed
	if file.Status == models.FileStatusCompleted {
		existing, err := s.results.Get(ctx, fileID)
		if err != nil {
			s.logger.Error("Failed to get analysis", "error", err, "id", fileID)
			return nil, utils.NewInternalError("Failed to retrieve analysis")
		}
		if existing != nil {
			s.logger.Info("File already analyzed, returning stored results", "id", fileID)
			return existing, nil
		}
	}

	s.logger.Info("Starting analysis", "id", fileID, "filename", file.Name)

	result, err := s.runAnalysis(ctx, file)
	if errors.Is(err, repository.ErrFileNotFound) || errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("File deleted during analysis", "id", fileID)
		return nil, utils.NewFileNotFoundError("Fichier non trouvé")
	}
	if err != nil {
		s.logger.Error("Analysis failed", "error", err, "id", fileID)
		if statusErr := s.files.UpdateStatus(ctx, fileID, models.FileStatusFailed); statusErr != nil {
			s.logger.Error("Failed to mark file as failed", "error", statusErr, "id", fileID)
		}
		return nil, utils.NewInternalError("L'analyse du fichier a échoué")
	}

	s.logger.Info("File analyzed",
		"id", fileID,
		"title", result.Content.Title,
		"word_count", result.Content.WordCount)

	return result, nil
}

func (s *analysisService) runAnalysis(ctx context.Context, file *models.FileRecord) (*models.AnalysisResult, error) {
	if err := s.files.UpdateStatus(ctx, file.ID, models.FileStatusProcessing); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	content, err := s.analyzer.Analyze(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	err = s.results.Create(ctx, &models.AnalysisResult{
		FileID:     file.ID,
		AnalyzedAt: s.now().UTC(),
		Content:    *content,
	})
	if err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	stored, err := s.results.Get(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("reload analysis: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("analysis for %s vanished after store", file.ID)
	}

	if err := s.files.UpdateStatus(ctx, file.ID, models.FileStatusCompleted); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}

	return stored, nil
}

func (s *analysisService) GenerateSuggestions(ctx context.Context, fileID string) (*models.Suggestions, error) {
	return generate(ctx, s, fileID, models.ArtifactSuggestions,
		func(r *models.AnalysisResult) *models.Suggestions { return r.Suggestions },
		s.analyzer.Suggestions)
}

func (s *analysisService) GenerateSummary(ctx context.Context, fileID string) (*models.Summary, error) {
	return generate(ctx, s, fileID, models.ArtifactSummary,
		func(r *models.AnalysisResult) *models.Summary { return r.Summary },
		s.analyzer.Summary)
}

func (s *analysisService) GenerateQuiz(ctx context.Context, fileID string) (*models.Quiz, error) {
	return generate(ctx, s, fileID, models.ArtifactQuiz,
		func(r *models.AnalysisResult) *models.Quiz { return r.Quiz },
		s.analyzer.Quiz)
}

func (s *analysisService) GenerateSlides(ctx context.Context, fileID string) (*models.Slides, error) {
	return generate(ctx, s, fileID, models.ArtifactSlides,
		func(r *models.AnalysisResult) *models.Slides { return r.Slides },
		s.analyzer.Slides)
}

func (s *analysisService) GenerateCourseSheet(ctx context.Context, fileID string) (*models.CourseSheet, error) {
	return generate(ctx, s, fileID, models.ArtifactCourseSheet,
		func(r *models.AnalysisResult) *models.CourseSheet { return r.CourseSheet },
		s.analyzer.CourseSheet)
}

func (s *analysisService) GenerateTPSheet(ctx context.Context, fileID string) (*models.TPSheet, error) {
	return generate(ctx, s, fileID, models.ArtifactTPSheet,
		func(r *models.AnalysisResult) *models.TPSheet { return r.TPSheet },
		s.analyzer.TPSheet)
}

func (s *analysisService) Generate(ctx context.Context, fileID string, artifact models.Artifact) (any, error) {
	switch artifact {
	case models.ArtifactSuggestions:
		return s.GenerateSuggestions(ctx, fileID)
	case models.ArtifactSummary:
		return s.GenerateSummary(ctx, fileID)
	case models.ArtifactQuiz:
		return s.GenerateQuiz(ctx, fileID)
	case models.ArtifactSlides:
		return s.GenerateSlides(ctx, fileID)
	case models.ArtifactCourseSheet:
		return s.GenerateCourseSheet(ctx, fileID)
	case models.ArtifactTPSheet:
		return s.GenerateTPSheet(ctx, fileID)
	default:
		return nil, utils.NewBadRequestError(fmt.Sprintf("Artefact inconnu: %s", artifact))
	}
}

// generate fills one artifact of the stored result. An artifact that already
// exists is returned as stored and never regenerated.
func generate[T any](
	ctx context.Context,
	s *analysisService,
	fileID string,
	artifact models.Artifact,
	field func(*models.AnalysisResult) *T,
	produce func(context.Context) (*T, error),
) (*T, error) {
	ctx = context.WithoutCancel(ctx)

	current, err := s.loadResult(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if existing := field(current); existing != nil {
		return existing, nil
	}

	payload, err := produce(ctx)
	if err != nil {
		s.logger.Error("Generator failed", "error", err, "id", fileID, "artifact", artifact)
		return nil, utils.NewInternalError(fmt.Sprintf("Failed to generate %s", artifact))
	}

	merged, err := s.results.MergeArtifact(ctx, fileID, artifact, payload)
	if err != nil {
		s.logger.Error("Failed to merge artifact", "error", err, "id", fileID, "artifact", artifact)
		return nil, utils.NewInternalError("Failed to save analysis results")
	}
	if merged {
		s.logger.Info("Artifact generated", "id", fileID, "artifact", artifact)
		return payload, nil
	}

	// Another writer filled the field first, or the file was deleted meanwhile.
	current, err = s.loadResult(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if existing := field(current); existing != nil {
		return existing, nil
	}
	return nil, utils.NewInternalError("Failed to save analysis results")
}

func (s *analysisService) loadResult(ctx context.Context, fileID string) (*models.AnalysisResult, error) {
	result, err := s.results.Get(ctx, fileID)
	if err != nil {
		s.logger.Error("Failed to get analysis", "error", err, "id", fileID)
		return nil, utils.NewInternalError("Failed to retrieve analysis")
	}
	if result == nil {
		return nil, utils.NewAnalysisNotFoundError("Aucune analyse pour ce fichier")
	}
	return result, nil
}

func (s *analysisService) GetAnalysisResults(ctx context.Context, fileID string) (*models.AnalysisResult, error) {
	result, err := s.results.Get(ctx, fileID)
	if err != nil {
		s.logger.Error("Failed to get analysis", "error", err, "id", fileID)
		return nil, utils.NewInternalError("Failed to retrieve analysis")
	}
	return result, nil
}

func (s *analysisService) CompleteArtifacts(ctx context.Context, fileID string) (*models.AnalysisResult, error) {
	ctx = context.WithoutCancel(ctx)

	current, err := s.loadResult(ctx, fileID)
	if err != nil {
		return nil, err
	}

	missing := current.Missing()
	if len(missing) == 0 {
		return current, nil
	}

	s.logger.Info("Generating missing artifacts", "id", fileID, "artifacts", missing)

	// Every generator runs to completion; the first error is reported after all finish.
	var g errgroup.Group
	for _, artifact := range missing {
		g.Go(func() error {
			_, err := s.Generate(ctx, fileID, artifact)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.loadResult(ctx, fileID)
}
