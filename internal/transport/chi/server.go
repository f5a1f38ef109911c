package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/UnbubbleHub/sources/internal/domain"
	"github.com/UnbubbleHub/sources/internal/usecase/aggregate"
	healthuc "github.com/UnbubbleHub/sources/internal/usecase/health"
	"github.com/UnbubbleHub/sources/internal/usecase/pipeline"
	"github.com/UnbubbleHub/sources/internal/usecase/rank"
)

// maxBatchSources bounds the number of sources accepted per request.
const maxBatchSources = 200

// Server exposes the aggregation, annotation and ranking operations over HTTP.
type Server struct {
	aggregator  aggregate.Aggregator
	annotator   pipeline.Annotator
	ranker      rank.Ranker
	defaultTopK int
	health      *healthuc.Service
	logger      *zap.Logger
}

// NewServer creates an HTTP API server. annotator may be nil when no
// annotation provider is configured; the annotate endpoint then returns 501.
func NewServer(
	aggregator aggregate.Aggregator,
	annotator pipeline.Annotator,
	ranker rank.Ranker,
	defaultTopK int,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if defaultTopK <= 0 {
		defaultTopK = rank.DefaultTopK
	}
	return &Server{
		aggregator:  aggregator,
		annotator:   annotator,
		ranker:      ranker,
		defaultTopK: defaultTopK,
		health:      health,
		logger:      logger,
	}
}

// Routes registers all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/queries/aggregate", s.AggregateQueries)
	r.Post("/v1/sources/annotate", s.AnnotateSources)
	r.Post("/v1/sources/rank", s.RankSources)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// AggregateQueries handles POST /v1/queries/aggregate.
func (s *Server) AggregateQueries(w http.ResponseWriter, r *http.Request) {
	var req AggregateQueriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	queries := make([]domain.SearchQuery, 0, len(req.Queries))
	for _, q := range req.Queries {
		if q.Text == "" {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "query text is required")
			return
		}
		queries = append(queries, queryFromDTO(q))
	}

	reduced, err := s.aggregator.Aggregate(r.Context(), queries)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]QueryDTO, len(reduced))
	for i, q := range reduced {
		out[i] = queryToDTO(q)
	}
	writeJSON(w, http.StatusOK, AggregateQueriesResponse{Queries: out})
}

// AnnotateSources handles POST /v1/sources/annotate.
func (s *Server) AnnotateSources(w http.ResponseWriter, r *http.Request) {
	if s.annotator == nil {
		writeError(w, http.StatusNotImplemented, codeAnnotationProviderError, "no annotation provider configured")
		return
	}

	var req AnnotateSourcesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.EventDescription == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "event_description is required")
		return
	}
	if len(req.Sources) > maxBatchSources {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "too many sources")
		return
	}

	sources := make([]domain.Source, 0, len(req.Sources))
	for _, dto := range req.Sources {
		src, err := sourceFromDTO(dto)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		sources = append(sources, src)
	}

	annotated, usage, err := s.annotator.Annotate(r.Context(), sources, req.EventDescription)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]AnnotatedSourceDTO, len(annotated))
	for i, as := range annotated {
		out[i] = annotatedToDTO(as)
	}
	writeJSON(w, http.StatusOK, AnnotateSourcesResponse{
		Sources: out,
		Usage:   usageToDTO(usage),
	})
}

// RankSources handles POST /v1/sources/rank.
func (s *Server) RankSources(w http.ResponseWriter, r *http.Request) {
	var req RankSourcesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Sources) > maxBatchSources {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "too many sources")
		return
	}

	sources := make([]domain.AnnotatedSource, 0, len(req.Sources))
	for _, dto := range req.Sources {
		as, err := annotatedFromDTO(dto)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		sources = append(sources, as)
	}

	topK := s.defaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	ranked := s.ranker.Rank(r.Context(), sources, topK)

	out := make([]AnnotatedSourceDTO, len(ranked))
	for i, as := range ranked {
		out[i] = annotatedToDTO(as)
	}
	writeJSON(w, http.StatusOK, RankSourcesResponse{Sources: out})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrEmbeddingProviderError,
		domain.ErrAnnotationProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, codeEmbeddingProviderError, msg)
	case errors.Is(err, domain.ErrAnnotationProviderError):
		writeError(w, http.StatusBadGateway, codeAnnotationProviderError, msg)
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
