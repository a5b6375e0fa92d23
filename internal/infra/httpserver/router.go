package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/vision-analyzer/internal/application/analysis"
	domain "github.com/bryanwahyu/vision-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/identity"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/upload"
	"github.com/bryanwahyu/vision-analyzer/internal/middleware"
)

const (
	serviceName    = "AI Vision Analyzer"
	serviceVersion = "1.0.0"
)

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service, verifier middleware.Verifier) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/api/health", middleware.HealthHandler(serviceName, serviceVersion))
	mux.Get("/api/metrics", middleware.MetricsHandler)

	mux.Group(func(g chi.Router) {
		g.Use(middleware.BearerAuth(verifier))
		g.Get("/api/usage", r.wrap(r.handleUsage))
		g.Post("/api/analyze", r.wrap(r.handleAnalyze))
		g.Get("/api/history", r.wrap(r.handleHistory))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			writeError(w, err)
		}
	}
}

// writeError is the single boundary mapping each error kind to a status and
// a structured body. All kinds are terminal for the request.
func writeError(w http.ResponseWriter, err error) {
	var (
		quotaErr *domain.QuotaExceededError
		typeErr  *upload.UnsupportedTypeError
		sizeErr  *upload.TooLargeError
	)

	switch {
	case errors.Is(err, upload.ErrMissingFilename):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "No filename provided",
			"message": "The uploaded file must have a filename",
		})
	case errors.As(err, &typeErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "Invalid file type",
			"message":  "Only .jpg, .jpeg, .png, .webp files are supported",
			"received": typeErr.Received,
		})
	case errors.As(err, &sizeErr):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
			"error":         "File too large",
			"message":       fmt.Sprintf("Maximum file size is %.1fMB", float64(sizeErr.Max)/(1024*1024)),
			"received_size": fmt.Sprintf("%.2fMB", float64(sizeErr.Size)/(1024*1024)),
		})
	case errors.As(err, &quotaErr):
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":   "Usage limit exceeded",
			"message": "You've reached your free tier limit. Upgrade to Premium for unlimited analyses.",
			"tier":    quotaErr.Tier,
			"limit":   quotaErr.Limit,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Analysis failed",
			"message": err.Error(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func claims(req *http.Request) (identity.Claims, error) {
	c, ok := middleware.ClaimsFromContext(req.Context())
	if !ok {
		return nil, errors.New("no verified claims in request context")
	}
	return c, nil
}

// POST /api/analyze (multipart, field "file")
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	c, err := claims(req)
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()

	file, header, err := req.FormFile("file")
	if err != nil {
		middleware.IncrementAnalysesFailed()
		writeError(w, upload.ErrMissingFilename)
		return nil
	}
	defer file.Close()

	// read at most one byte past the cap; the validator reports oversize
	content, err := io.ReadAll(io.LimitReader(file, upload.MaxFileSize+1))
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	result, err := rt.svc.Analyze(req.Context(), c, header.Filename, content)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	writeJSON(w, http.StatusOK, result)
	return nil
}

// GET /api/usage
func (rt *Router) handleUsage(w http.ResponseWriter, req *http.Request) error {
	c, err := claims(req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, rt.svc.Usage(c))
	return nil
}

// GET /api/history
func (rt *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	c, err := claims(req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, rt.svc.RecentHistory(c))
	return nil
}
