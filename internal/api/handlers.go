package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rgehrsitz/ulipbi/internal/calculation"
	"github.com/rgehrsitz/ulipbi/internal/compare"
	"github.com/rgehrsitz/ulipbi/internal/config"
	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/rgehrsitz/ulipbi/internal/output"
)

// maxBodyBytes bounds request bodies; an illustration request is tiny.
const maxBodyBytes = 1 << 20

// Handler contains all HTTP handlers
type Handler struct {
	Engine     *calculation.CalculationEngine
	Compare    *compare.CompareEngine
	Normalizer *config.Normalizer
	Rules      domain.ProductRules
	Timeout    time.Duration
	Version    string
}

// NewHandler creates a new handler serving illustrations under rules.
func NewHandler(engine *calculation.CalculationEngine, rules domain.ProductRules) *Handler {
	return &Handler{
		Engine:     engine,
		Compare:    compare.NewCompareEngine(engine, rules),
		Normalizer: config.NewNormalizer(rules),
		Rules:      rules,
		Timeout:    30 * time.Second,
		Version:    "dev",
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.Version,
	})
}

// ListFunds returns the configured fund catalogue.
func (h *Handler) ListFunds(w http.ResponseWriter, r *http.Request) {
	funds := make([]FundDTO, 0, len(h.Rules.Funds))
	for _, f := range h.Rules.Funds {
		funds = append(funds, FundDTO{ID: f.ID, Name: f.Name, FMCRate: f.FMCRate.String()})
	}
	writeJSON(w, http.StatusOK, funds)
}

// GetProduct returns the product rules in effect.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Rules)
}

// CreateIllustration runs an illustration. Pass ?periods=true to include
// the per-period trace.
func (h *Handler) CreateIllustration(w http.ResponseWriter, r *http.Request) {
	il, ok := h.illustrate(w, r)
	if !ok {
		return
	}
	includePeriods, _ := strconv.ParseBool(r.URL.Query().Get("periods"))

	writeJSON(w, http.StatusCreated, IllustrationResponse{
		RunID:        uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		Illustration: il.Rounded(2, includePeriods),
	})
}

// CreateIllustrationCSV runs an illustration and returns the per-year CSV.
func (h *Handler) CreateIllustrationCSV(w http.ResponseWriter, r *http.Request) {
	il, ok := h.illustrate(w, r)
	if !ok {
		return
	}
	data, err := output.CSVFormatter{}.Format(il)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render CSV", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="benefit_illustration.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CompareFunds runs one request across several funds.
func (h *Handler) CompareFunds(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	funds := make([]domain.FundID, len(req.Funds))
	for i, f := range req.Funds {
		funds[i] = domain.FundID(f)
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	compSet, err := h.Compare.Compare(ctx, &req.Request, compare.CompareOptions{
		BaseFund: domain.FundID(req.BaseFund),
		Funds:    funds,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CompareResponse{
		RunID:      uuid.New().String(),
		Comparison: compSet.Rounded(2),
	})
}

func (h *Handler) illustrate(w http.ResponseWriter, r *http.Request) (*domain.Illustration, bool) {
	var req domain.IllustrationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}

	params, err := h.Normalizer.Normalize(&req)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	il, err := h.Engine.RunIllustration(ctx, params)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	return il, true
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.Timeout)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeEngineError maps validation failures to 400, timeouts to 504 and
// everything else to 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Field:   verr.Field,
			Details: verr.Error(),
		})
	case domain.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "Illustration timed out", err)
	default:
		writeError(w, http.StatusInternalServerError, "Illustration failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
