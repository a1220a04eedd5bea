package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/gorilla/mux"
)

type AnalysisHandler struct {
	responder
	files    services.FileService
	analysis services.AnalysisService
}

func NewAnalysisHandler(files services.FileService, analysis services.AnalysisService, logger *utils.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		responder: responder{logger: logger},
		files:     files,
		analysis:  analysis,
	}
}

func (h *AnalysisHandler) AnalyzeFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := ownedFile(r.Context(), h.files, id); err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.analysis.AnalyzeContent(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

type analysisResponse struct {
	*models.AnalysisResult
	Available []models.Artifact `json:"available"`
	Missing   []models.Artifact `json:"missing"`
}

type artifactResponse struct {
	FileID   string          `json:"file_id"`
	Artifact models.Artifact `json:"artifact"`
	Data     any             `json:"data"`
}

// GetAnalysis returns the stored result. With ?artifact=name it returns only
// that tab, or 404 when it has not been generated.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := ownedFile(r.Context(), h.files, id); err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.analysis.GetAnalysisResults(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if result == nil {
		h.respondError(w, utils.NewAnalysisNotFoundError("Aucune analyse pour ce fichier"))
		return
	}

	if name := r.URL.Query().Get("artifact"); name != "" {
		artifact, ok := models.ParseArtifact(name)
		if !ok {
			h.respondError(w, utils.NewBadRequestError("Artefact inconnu: "+name))
			return
		}
		if !result.Has(artifact) {
			h.respondError(w, utils.NewAnalysisNotFoundError("Artefact non généré: "+name))
			return
		}
		h.respondJSON(w, http.StatusOK, artifactResponse{
			FileID:   id,
			Artifact: artifact,
			Data:     artifactValue(result, artifact),
		})
		return
	}

	h.respondJSON(w, http.StatusOK, newAnalysisResponse(result))
}

func (h *AnalysisHandler) CompleteArtifacts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := ownedFile(r.Context(), h.files, id); err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.analysis.CompleteArtifacts(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, newAnalysisResponse(result))
}

func (h *AnalysisHandler) GenerateArtifact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	artifact, ok := models.ParseArtifact(vars["artifact"])
	if !ok {
		h.respondError(w, utils.NewBadRequestError("Artefact inconnu: "+vars["artifact"]))
		return
	}

	if _, err := ownedFile(r.Context(), h.files, id); err != nil {
		h.respondError(w, err)
		return
	}

	data, err := h.analysis.Generate(r.Context(), id, artifact)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, artifactResponse{FileID: id, Artifact: artifact, Data: data})
}

func newAnalysisResponse(result *models.AnalysisResult) analysisResponse {
	resp := analysisResponse{
		AnalysisResult: result,
		Available:      []models.Artifact{},
		Missing:        []models.Artifact{},
	}
	for _, a := range models.Artifacts {
		if result.Has(a) {
			resp.Available = append(resp.Available, a)
		} else {
			resp.Missing = append(resp.Missing, a)
		}
	}
	return resp
}

func artifactValue(result *models.AnalysisResult, artifact models.Artifact) any {
	switch artifact {
	case models.ArtifactSuggestions:
		return result.Suggestions
	case models.ArtifactSummary:
		return result.Summary
	case models.ArtifactQuiz:
		return result.Quiz
	case models.ArtifactSlides:
		return result.Slides
	case models.ArtifactCourseSheet:
		return result.CourseSheet
	case models.ArtifactTPSheet:
		return result.TPSheet
	}
	return nil
}
