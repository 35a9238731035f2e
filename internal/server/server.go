// Package server exposes the amortization engine and its collaborators over
// HTTP and serves the embedded web UI. One engine invocation per request,
// statelessly; the only shared state is the preference store.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/finhouse/mortgage-planner/internal/config"
	"github.com/finhouse/mortgage-planner/internal/prefs"
	"github.com/finhouse/mortgage-planner/pkg/amortize"
	"github.com/finhouse/mortgage-planner/pkg/chartdata"
	"github.com/finhouse/mortgage-planner/pkg/constants"
	"github.com/finhouse/mortgage-planner/pkg/currency"
	"github.com/finhouse/mortgage-planner/pkg/export"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger  *zap.Logger
	prefs   *prefs.Store
	rates   *currency.Client
	maxBody int64
	version string
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// schedule/export/preferences API.
func NewHandler(logger *zap.Logger, store *prefs.Store, rates *currency.Client, maxBody int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rates == nil {
		rates = currency.NewClient(logger, "")
	}
	if maxBody <= 0 {
		maxBody = constants.DefaultMaxBodyBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, prefs: store, rates: rates, maxBody: maxBody, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/schedule", h.handleSchedule)
		r.Post("/export/csv", h.handleExportCSV)
		r.Post("/export/pdf", h.handleExportPDF)
		r.Get("/rates", h.handleRates)
		r.Route("/preferences", func(r chi.Router) {
			r.Get("/currency", h.handleGetCurrency)
			r.Put("/currency", h.handlePutCurrency)
		})
		r.Get("/version", h.handleVersion)
	})

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

// scheduleRequest mirrors the configuration surface; every field is optional
// and unset fields resolve to the built-in defaults.
type scheduleRequest struct {
	Principal          float64                   `json:"principal"`
	AnnualRate         float64                   `json:"annualRate"`
	TermYears          int                       `json:"termYears"`
	StartYear          int                       `json:"startYear"`
	EnableOverpayment  bool                      `json:"enableOverpayment"`
	MonthlyOverpayment float64                   `json:"monthlyOverpayment"`
	LumpSums           []config.LumpSumConfig    `json:"lumpSums"`
	RatePeriods        []config.RatePeriodConfig `json:"ratePeriods"`
	Currency           string                    `json:"currency"`
}

type scheduleResponse struct {
	Summary     export.Summary             `json:"summary"`
	Rows        []amortize.ScheduleRow     `json:"rows"`
	RateChanges []amortize.RateChangeEvent `json:"rateChanges"`
	Charts      chartdata.Series           `json:"charts"`
	Outcome     string                     `json:"outcome"`
	Warnings    []string                   `json:"warnings,omitempty"`
	Duration    string                     `json:"duration"`
}

func (req *scheduleRequest) toConfiguration() *config.Configuration {
	return &config.Configuration{
		Principal:          req.Principal,
		AnnualRate:         req.AnnualRate,
		TermYears:          req.TermYears,
		StartYear:          req.StartYear,
		EnableOverpayment:  req.EnableOverpayment,
		MonthlyOverpayment: req.MonthlyOverpayment,
		LumpSums:           req.LumpSums,
		RatePeriods:        req.RatePeriods,
		Currency:           req.Currency,
	}
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*config.Configuration, []string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBody), "server.decodeRequest")
			return nil, nil, false
		}
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("failed to decode request: %v", err), "server.decodeRequest")
		return nil, nil, false
	}

	conf := req.toConfiguration()
	return conf, conf.ValidateConfiguration(), true
}

func compute(conf *config.Configuration) (config.Inputs, amortize.Result, export.Summary) {
	inputs := conf.Resolve()
	result := amortize.Schedule(inputs.Params, inputs.Policy, inputs.LumpSums, inputs.RatePeriods)
	summary := export.BuildSummary(inputs.Params, result, inputs.Currency)
	return inputs, result, summary
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	conf, warnings, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	inputs, result, summary := compute(conf)
	elapsed := time.Since(start)

	h.logger.Info("schedule computed",
		zap.String("op", "server.handleSchedule"),
		zap.Float64("principal", inputs.Params.Principal),
		zap.Int("termMonths", inputs.Params.TermMonths),
		zap.Int("totalMonths", result.TotalMonths),
		zap.String("outcome", result.Outcome.String()),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Summary:     summary,
		Rows:        result.Rows,
		RateChanges: result.RateChanges,
		Charts:      chartdata.Build(result, inputs.Params.StartYear),
		Outcome:     result.Outcome.String(),
		Warnings:    warnings,
		Duration:    elapsed.String(),
	})
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	conf, _, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	_, result, summary := compute(conf)

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, result, summary); err != nil {
		h.respondExportError(w, err, "server.handleExportCSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="amortization-schedule.csv"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	conf, _, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	_, result, summary := compute(conf)

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, result, summary); err != nil {
		h.respondExportError(w, err, "server.handleExportPDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="amortization-schedule.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) respondExportError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, export.ErrEmptySchedule) {
		h.respondError(w, http.StatusUnprocessableEntity, "schedule is empty, nothing to export", op)
		return
	}
	h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("export failed: %v", err), op)
}

type ratesResponse struct {
	Base     string             `json:"base"`
	Rates    currency.RateTable `json:"rates"`
	Degraded bool               `json:"degraded"`
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	table, degraded := h.rates.FetchRates(r.Context())
	h.writeJSON(w, http.StatusOK, ratesResponse{
		Base:     constants.DefaultCurrency,
		Rates:    table,
		Degraded: degraded,
	})
}

type currencyPreference struct {
	Currency string `json:"currency"`
}

func (h *handler) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	if h.prefs == nil {
		h.writeJSON(w, http.StatusOK, currencyPreference{Currency: constants.DefaultCurrency})
		return
	}

	code, err := h.prefs.Currency(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to read currency preference: %v", err), "server.handleGetCurrency")
		return
	}
	h.writeJSON(w, http.StatusOK, currencyPreference{Currency: code})
}

func (h *handler) handlePutCurrency(w http.ResponseWriter, r *http.Request) {
	if h.prefs == nil {
		h.respondError(w, http.StatusServiceUnavailable, "preference store unavailable", "server.handlePutCurrency")
		return
	}

	var pref currencyPreference
	if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("failed to decode preference: %v", err), "server.handlePutCurrency")
		return
	}
	code := strings.ToUpper(strings.TrimSpace(pref.Currency))
	if code == "" {
		h.respondError(w, http.StatusBadRequest, "currency code is required", "server.handlePutCurrency")
		return
	}

	if err := h.prefs.SetCurrency(r.Context(), code); err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to store currency preference: %v", err), "server.handlePutCurrency")
		return
	}
	h.writeJSON(w, http.StatusOK, currencyPreference{Currency: code})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
