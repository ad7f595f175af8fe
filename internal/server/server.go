// Package server exposes the savings projection engine over an HTTP JSON API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/iwvelando/save-smarter/internal/config"
	"github.com/iwvelando/save-smarter/internal/projection"
	"github.com/iwvelando/save-smarter/pkg/constants"
	"github.com/iwvelando/save-smarter/pkg/datetime"
	"github.com/iwvelando/save-smarter/pkg/mathutil"
	"github.com/iwvelando/save-smarter/pkg/output"
	"github.com/iwvelando/save-smarter/pkg/savings"
	"github.com/iwvelando/save-smarter/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the projection API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	return newHandler(logger, maxUploadSize, version, time.Now).routes()
}

func newHandler(logger *zap.Logger, maxUploadSize int64, version string, now func() time.Time) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}
	if now == nil {
		now = time.Now
	}
	return &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, now: now}
}

func (h *handler) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(constants.DefaultRequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Single goal from a JSON form payload
		r.Post("/project", h.handleProject)
		// Every goal of an uploaded YAML configuration
		r.Post("/goals", h.handleGoals)
		r.Get("/version", h.handleVersion)
		r.Get("/health", h.handleHealth)
	})

	return r
}

// requestID assigns a UUID to requests that arrive without an id so that
// middleware.RequestID carries it through, and echoes it to the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(middleware.RequestIDHeader, id)
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.logRequests"),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type projectRequest struct {
	CurrentBalance *float64               `json:"currentBalance"`
	InterestRate   *float64               `json:"interestRate"`
	TargetValue    *float64               `json:"targetValue"`
	StartDate      string                 `json:"startDate"`
	TargetDate     string                 `json:"targetDate"`
	DepositPeriod  *savings.DepositPeriod `json:"depositPeriod"`
	ReferenceDate  string                 `json:"referenceDate,omitempty"`
}

type projectResponse struct {
	ReferenceDate string         `json:"referenceDate"`
	Result        savings.Result `json:"result"`
	Notice        output.Notice  `json:"notice"`
}

type goalsResponse struct {
	Goals    []goalProjection       `json:"goals"`
	CSV      string                 `json:"csv"`
	Warnings []string               `json:"warnings,omitempty"`
	Duration string                 `json:"duration"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

type goalProjection struct {
	Name           string                `json:"name"`
	CurrentBalance float64               `json:"currentBalance"`
	InterestRate   float64               `json:"interestRate"`
	TargetValue    float64               `json:"targetValue"`
	StartDate      string                `json:"startDate"`
	TargetDate     string                `json:"targetDate"`
	DepositPeriod  savings.DepositPeriod `json:"depositPeriod"`
	Result         savings.Result        `json:"result"`
	Notice         output.Notice         `json:"notice"`
}

type errorResponse struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missingFields,omitempty"`
}

func (h *handler) handleProject(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProject"
	var req projectRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode goal: %v", err), op)
		return
	}

	today := datetime.Normalize(h.now())
	if strings.TrimSpace(req.ReferenceDate) != "" {
		parsed, err := datetime.ParseDate(req.ReferenceDate)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("referenceDate: %v", err), op)
			return
		}
		today = parsed
	}

	goal := config.Goal{
		Active:         true,
		CurrentBalance: req.CurrentBalance,
		InterestRate:   req.InterestRate,
		TargetValue:    req.TargetValue,
		StartDate:      req.StartDate,
		TargetDate:     req.TargetDate,
	}
	if req.DepositPeriod != nil {
		goal.DepositPeriod = req.DepositPeriod.String()
	}
	input, err := goal.Resolve(config.Common{}).ToInput(today)
	if err != nil {
		h.respondInputError(w, err, op)
		return
	}

	result := savings.Project(input, today)
	h.logger.Debug("goal projected",
		zap.String("op", op),
		zap.Stringer("kind", result.Kind),
		zap.String("today", datetime.Format(today)),
	)
	if !finiteResult(result) {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, errOverflow.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, projectResponse{
		ReferenceDate: datetime.Format(today),
		Result:        result,
		Notice:        output.Message(input, result),
	})
}

func (h *handler) handleGoals(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGoals"
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configMap, err := decodeYAMLToMap(buf.Bytes())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	now := h.now()
	today, err := cfg.ReferenceDate(now)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration(today)

	results, err := projection.GetProjectionsWithFixedTime(r.Context(), h.logger, *cfg, now)
	if err != nil {
		h.respondInputError(w, err, op)
		return
	}

	for _, result := range results {
		if !finiteResult(result.Result) {
			h.respondErrorWithOp(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("goal %s: %v", result.Name, errOverflow), op)
			return
		}
	}

	csvData, err := output.CsvString(results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := goalsResponse{
		Goals:    buildGoals(results),
		CSV:      csvData,
		Warnings: warnings,
		Duration: elapsed.String(),
		Config:   configMap,
	}

	h.logger.Info("goals projected",
		zap.String("op", op),
		zap.Int("goals", len(response.Goals)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func buildGoals(results []projection.Projection) []goalProjection {
	goals := make([]goalProjection, 0, len(results))
	for _, result := range results {
		input := result.Input
		goals = append(goals, goalProjection{
			Name:           result.Name,
			CurrentBalance: input.CurrentBalance,
			InterestRate:   input.InterestRate,
			TargetValue:    input.TargetValue,
			StartDate:      datetime.Format(input.StartDate),
			TargetDate:     datetime.Format(input.TargetDate),
			DepositPeriod:  input.DepositPeriod,
			Result:         result.Result,
			Notice:         output.Message(input, result.Result),
		})
	}
	return goals
}

var errOverflow = errors.New("projected amounts overflow; lower the interest rate or bring the target date closer")

// finiteResult reports whether every amount in r can be represented in JSON.
func finiteResult(r savings.Result) bool {
	return mathutil.IsFinite(r.ProjectedBalance) &&
		mathutil.IsFinite(r.AmountPerPeriod) &&
		mathutil.IsFinite(r.TotalDeposits)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

// respondInputError maps goal conversion failures onto HTTP statuses. Missing
// numeric fields are 422 and list the fields; anything else is a bad request.
func (h *handler) respondInputError(w http.ResponseWriter, err error, op string) {
	var missing *validation.MissingFieldsError
	if errors.As(err, &missing) {
		h.logger.Info("goal is missing fields",
			zap.String("op", op),
			zap.Strings("fields", missing.Fields),
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:         err.Error(),
			MissingFields: missing.Fields,
		})
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("projection request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON encodes payload before committing the status, so an encoding
// failure becomes a 500 rather than a truncated success.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
