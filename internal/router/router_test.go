package router

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/BerylCAtieno/opticours-api/internal/analyzer"
	"github.com/BerylCAtieno/opticours-api/internal/auth"
	"github.com/BerylCAtieno/opticours-api/internal/db"
	"github.com/BerylCAtieno/opticours-api/internal/delivery"
	"github.com/BerylCAtieno/opticours-api/internal/latency"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/repository"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/storage"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	logger := utils.NewNopLogger()
	store := storage.NewMemoryStorage()
	fileRepo := repository.NewFileRepository(database)
	analysisRepo := repository.NewAnalysisRepository(database)

	a := analyzer.NewScriptedAnalyzer(
		analyzer.WithLatency(latency.None),
		analyzer.WithRand(rand.NewPCG(1, 2)),
	)

	svc := Services{
		Sessions: services.NewSessionService(
			repository.NewAccountRepository(database),
			repository.NewSessionRepository(database),
			auth.NewTokenIssuer("router-test"),
			logger),
		Files:    services.NewFileService(fileRepo, store, services.FileOptions{MaxFileSize: 1 << 20, PreviewChars: 200}, logger),
		Analysis: services.NewAnalysisService(fileRepo, analysisRepo, a, logger),
		Delivery: services.NewDeliveryService(analysisRepo, delivery.NewSimulatedDeliverer(latency.None), logger),
	}

	return NewRouter(svc, 1<<20, logger)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func upload(t *testing.T, h http.Handler, token, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func register(t *testing.T, h http.Handler, email string) models.Session {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":       email,
		"password":    "secret",
		"name":        "Prof",
		"institution": "Université",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Session](t, rec)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	session := register(t, h, "prof@example.com")
	assert.NotEmpty(t, session.Token)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "prof@example.com", "password": "other", "name": "Autre",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"DuplicateAccount"`)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "prof@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"InvalidCredentials"`)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "prof@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[models.Session](t, rec)
	assert.NotContains(t, rec.Body.String(), "password")

	// Logging in again replaced the registration session.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/files", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/files", login.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/files", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	h := newTestServer(t)
	session := register(t, h, "prof@example.com")

	rec := upload(t, h, session.Token, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"UnsupportedFormat"`)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/files", session.Token, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFilePipeline(t *testing.T) {
	h := newTestServer(t)
	session := register(t, h, "prof@example.com")
	token := session.Token

	rec := upload(t, h, token, "Cours.pdf", "", []byte("%PDF-1.4 not really a pdf"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	file := decode[models.FileRecord](t, rec)
	assert.Equal(t, models.MimePDF, file.MimeType)
	assert.Equal(t, models.FileStatusPending, file.Status)
	assert.Equal(t, session.User.ID, file.OwnerID)

	base := "/api/v1/files/" + file.ID

	rec = doJSON(t, h, http.MethodGet, base+"/content", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MimePDF, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Cours.pdf")
	assert.Equal(t, "%PDF-1.4 not really a pdf", rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, base+"/analysis", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"AnalysisNotFound"`)

	rec = doJSON(t, h, http.MethodPost, base+"/artifacts/quiz", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, base+"/export/pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, base+"/analyze", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[models.AnalysisResult](t, rec)
	assert.Equal(t, "Cours", result.Content.Title)

	rec = doJSON(t, h, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.FileStatusCompleted, decode[models.FileRecord](t, rec).Status)

	rec = doJSON(t, h, http.MethodGet, base+"/analysis?artifact=quiz", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, base+"/analysis?artifact=nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, base+"/artifacts/quiz", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"artifact":"quiz"`)

	rec = doJSON(t, h, http.MethodGet, base+"/analysis?artifact=quiz", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, base+"/analysis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	partial := decode[struct {
		Available []string `json:"available"`
		Missing   []string `json:"missing"`
	}](t, rec)
	assert.Equal(t, []string{"quiz"}, partial.Available)
	assert.Len(t, partial.Missing, 5)

	rec = doJSON(t, h, http.MethodPost, base+"/artifacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	full := decode[struct {
		Missing []string `json:"missing"`
	}](t, rec)
	assert.Empty(t, full.Missing)

	rec = doJSON(t, h, http.MethodPost, base+"/export/pptx", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Export PowerPoint réussi", decode[models.DeliveryReceipt](t, rec).Message)

	rec = doJSON(t, h, http.MethodPost, base+"/send", token, map[string]string{"email": "invalid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, base+"/send", token, map[string]string{"email": "eleve@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Résultats envoyés avec succès à eleve@example.com", decode[models.DeliveryReceipt](t, rec).Message)

	rec = doJSON(t, h, http.MethodDelete, base, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, base, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"FileNotFound"`)
}

func TestFilesAreScopedToOwner(t *testing.T) {
	h := newTestServer(t)

	first := register(t, h, "a@example.com")
	rec := upload(t, h, first.Token, "Cours.docx", "", []byte("PK not a real docx"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	file := decode[models.FileRecord](t, rec)

	second := register(t, h, "b@example.com")

	rec = doJSON(t, h, http.MethodGet, "/api/v1/files/"+file.ID, second.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/files/"+file.ID+"/content", second.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/files/"+file.ID+"/analyze", second.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/files", second.Token, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPreflight(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/files/upload", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
