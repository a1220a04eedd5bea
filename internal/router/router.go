package router

import (
	"net/http"

	"github.com/BerylCAtieno/opticours-api/internal/handlers"
	"github.com/BerylCAtieno/opticours-api/internal/middleware"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/utils"

	"github.com/gorilla/mux"
)

type Services struct {
	Sessions services.SessionService
	Files    services.FileService
	Analysis services.AnalysisService
	Delivery services.DeliveryService
}

func NewRouter(svc Services, maxFileSize int64, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	authHandler := handlers.NewAuthHandler(svc.Sessions, logger)
	fileHandler := handlers.NewFileHandler(svc.Files, maxFileSize, logger)
	analysisHandler := handlers.NewAnalysisHandler(svc.Files, svc.Analysis, logger)
	deliveryHandler := handlers.NewDeliveryHandler(svc.Files, svc.Delivery, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Session endpoints
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/session", authHandler.Session).Methods(http.MethodGet)

	// Everything under /files needs the current session
	files := api.PathPrefix("/files").Subrouter()
	files.Use(middleware.RequireSession(svc.Sessions))

	files.HandleFunc("/upload", fileHandler.UploadFile).Methods(http.MethodPost)
	files.HandleFunc("", fileHandler.ListFiles).Methods(http.MethodGet)
	files.HandleFunc("/{id}", fileHandler.GetFile).Methods(http.MethodGet)
	files.HandleFunc("/{id}/content", fileHandler.DownloadFile).Methods(http.MethodGet)
	files.HandleFunc("/{id}", fileHandler.DeleteFile).Methods(http.MethodDelete)

	files.HandleFunc("/{id}/analyze", analysisHandler.AnalyzeFile).Methods(http.MethodPost)
	files.HandleFunc("/{id}/analysis", analysisHandler.GetAnalysis).Methods(http.MethodGet)
	files.HandleFunc("/{id}/artifacts", analysisHandler.CompleteArtifacts).Methods(http.MethodPost)
	files.HandleFunc("/{id}/artifacts/{artifact}", analysisHandler.GenerateArtifact).Methods(http.MethodPost)

	files.HandleFunc("/{id}/export/pdf", deliveryHandler.ExportPDF).Methods(http.MethodPost)
	files.HandleFunc("/{id}/export/pptx", deliveryHandler.ExportPPTX).Methods(http.MethodPost)
	files.HandleFunc("/{id}/send", deliveryHandler.SendResults).Methods(http.MethodPost)

	// Preflight requests never match a route, so CORS wraps the whole router.
	return middleware.CORS()(r)
}
