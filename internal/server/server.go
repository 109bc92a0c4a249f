package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/asset-depreciation/internal/config"
	"github.com/iwvelando/asset-depreciation/internal/metrics"
	"github.com/iwvelando/asset-depreciation/internal/registry"
	"github.com/iwvelando/asset-depreciation/internal/store"
	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/iwvelando/asset-depreciation/pkg/datetime"
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/format"
	"github.com/iwvelando/asset-depreciation/pkg/output"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"github.com/iwvelando/asset-depreciation/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the HTTP handler.
type Options struct {
	Logger         *zap.Logger
	MaxUploadSize  int64
	Version        string
	Assets         *registry.Service // nil selects an in-memory registry
	Formatter      *format.Formatter // used by pretty and pdf downloads
	AllowedOrigins []string
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	assets        *registry.Service
	formatter     *format.Formatter
	generator     *depreciation.ScheduleGenerator
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the depreciation API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	assets := opts.Assets
	if assets == nil {
		assets = registry.NewService(store.NewMemory[registry.Record](), logger)
	}

	formatter := opts.Formatter
	if formatter == nil {
		formatter = format.Default()
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		assets:        assets,
		formatter:     formatter,
		generator:     depreciation.NewScheduleGenerator(logger),
		now:           time.Now,
	}
	return h.routes(opts.AllowedOrigins)
}

func (h *handler) routes(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(countRequests)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Post("/schedule", h.handleSchedule)
		r.Post("/config/schedule", h.handleConfigSchedule)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", h.handleListAssets)
			r.Post("/", h.handleCreateAsset)
			r.Get("/{id}", h.handleGetAsset)
			r.Put("/{id}", h.handleUpdateAsset)
			r.Delete("/{id}", h.handleDeleteAsset)
			r.Get("/{id}/schedule", h.handleAssetSchedule)
		})

		r.Get("/reports/{year}", h.handleReport)
	})

	return r
}

// countRequests records every response by matched route pattern.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ObserveRequest(route, status)
	})
}

type scheduleResponse struct {
	Name     string                       `json:"name"`
	Asset    depreciation.Asset           `json:"asset"`
	Entries  []depreciation.ScheduleEntry `json:"entries"`
	Warnings []string                     `json:"warnings,omitempty"`
}

type configScheduleResponse struct {
	Schedules []output.NamedSchedule `json:"schedules"`
	Report    report.Summary         `json:"report"`
	Warnings  []string               `json:"warnings,omitempty"`
	Duration  string                 `json:"duration"`
}

type assetScheduleResponse struct {
	Asset   registry.Record              `json:"asset"`
	Entries []depreciation.ScheduleEntry `json:"entries"`
}

// assetPayload carries the editable fields of an asset record. Absent fields
// keep the draft's current value.
type assetPayload struct {
	ID                 *string  `json:"id"`
	Name               *string  `json:"name"`
	Category           *string  `json:"category"`
	Cost               *float64 `json:"cost"`
	SalvageValue       *float64 `json:"salvageValue"`
	UsefulLife         *int     `json:"usefulLife"`
	PurchaseDate       *string  `json:"purchaseDate"`
	DepreciationMethod *string  `json:"depreciationMethod"`
}

func (p assetPayload) apply(draft *registry.Draft) error {
	if p.PurchaseDate != nil {
		date, err := datetime.ParseDate(*p.PurchaseDate)
		if err != nil {
			return err
		}
		draft.SetPurchaseDate(date)
	}
	if p.DepreciationMethod != nil {
		method, err := depreciation.ParseMethod(*p.DepreciationMethod)
		if err != nil {
			return err
		}
		draft.SetMethod(method)
	}
	if p.ID != nil {
		draft.SetID(*p.ID)
	}
	if p.Name != nil {
		draft.SetName(*p.Name)
	}
	if p.Category != nil {
		draft.SetCategory(*p.Category)
	}
	if p.Cost != nil {
		draft.SetCost(*p.Cost)
	}
	if p.SalvageValue != nil {
		draft.SetSalvageValue(*p.SalvageValue)
	}
	if p.UsefulLife != nil {
		draft.SetUsefulLife(*p.UsefulLife)
	}
	return nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleSchedule computes the schedule of a single asset given as JSON.
// Problems with the asset are returned as warnings alongside the schedule.
func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	var assetConfig config.AssetConfig
	if err := json.NewDecoder(r.Body).Decode(&assetConfig); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode asset: %v", err), op)
		return
	}

	asset, err := assetConfig.ToAsset()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	entries := h.generator.GenerateSchedule(assetConfig.Name, asset)
	metrics.ObserveSchedule(asset.Method, len(entries))

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Name:     assetConfig.Name,
		Asset:    asset,
		Entries:  entries,
		Warnings: validation.CheckAsset(assetConfig.Name, asset),
	})
}

// handleConfigSchedule accepts a multipart YAML configuration upload and
// returns the schedule of every configured asset plus the report for the
// configured year. A format query parameter other than json returns the
// schedules rendered as a download instead.
func (h *handler) handleConfigSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigSchedule"

	outputFormat := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if outputFormat == "" {
		outputFormat = constants.OutputFormatJSON
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	start := time.Now()
	configBytes, ok := h.readUpload(w, r, op)
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	items, err := cfg.Items()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	schedules := output.ComputeSchedules(h.generator, items)
	metrics.ObserveSchedules(schedules)

	if outputFormat != constants.OutputFormatJSON {
		formatter, err := format.NewFormatter(cfg.Output.Locale, cfg.Output.Currency)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		h.writeDocument(w, outputFormat, "schedules", formatter, op, func(writer output.Writer, out io.Writer) error {
			return writer.WriteSchedules(out, schedules)
		})
		return
	}

	year := cfg.Report.Year
	if year == 0 {
		year = h.now().Year()
	}
	elapsed := time.Since(start)

	h.logger.Info("schedules computed",
		zap.String("op", op),
		zap.Int("assets", len(schedules)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, configScheduleResponse{
		Schedules: schedules,
		Report:    report.ForYear(year, items),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	})
}

func (h *handler) readUpload(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return nil, false
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
		return nil, false
	}
	return buf.Bytes(), true
}

func (h *handler) handleListAssets(w http.ResponseWriter, r *http.Request) {
	records, err := h.assets.List(r.Context())
	if err != nil {
		h.respondStoreError(w, err, "server.handleListAssets")
		return
	}
	if records == nil {
		records = []registry.Record{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *handler) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateAsset"

	var payload assetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode asset: %v", err), op)
		return
	}

	draft := h.assets.NewDraft()
	if err := payload.apply(draft); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	record, err := h.assets.Commit(r.Context(), draft)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	w.Header().Set("Location", "/api/assets/"+record.ID)
	h.writeJSON(w, http.StatusCreated, record)
}

func (h *handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	record, err := h.assets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleGetAsset")
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

func (h *handler) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateAsset"

	draft, err := h.assets.Edit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	var payload assetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode asset: %v", err), op)
		return
	}
	if err := payload.apply(draft); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	record, err := h.assets.Commit(r.Context(), draft)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

func (h *handler) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.assets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondStoreError(w, err, "server.handleDeleteAsset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleAssetSchedule(w http.ResponseWriter, r *http.Request) {
	record, entries, err := h.assets.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleAssetSchedule")
		return
	}
	h.writeJSON(w, http.StatusOK, assetScheduleResponse{Asset: record, Entries: entries})
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", chi.URLParam(r, "year")), op)
		return
	}

	outputFormat := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if outputFormat == "" {
		outputFormat = constants.OutputFormatJSON
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	summary, err := h.assets.Report(r.Context(), year)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	if outputFormat == constants.OutputFormatJSON {
		h.writeJSON(w, http.StatusOK, summary)
		return
	}
	h.writeDocument(w, outputFormat, fmt.Sprintf("report-%d", year), h.formatter, op, func(writer output.Writer, out io.Writer) error {
		return writer.WriteReport(out, summary)
	})
}

// writeDocument renders into a buffer first so a failed render can still be
// reported as a JSON error.
func (h *handler) writeDocument(w http.ResponseWriter, outputFormat, baseName string, formatter *format.Formatter, op string, render func(output.Writer, io.Writer) error) {
	writer, err := output.NewWriter(outputFormat, formatter)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var buf bytes.Buffer
	if err := render(writer, &buf); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render %s: %v", outputFormat, err), op)
		return
	}

	w.Header().Set("Content-Type", output.ContentType(outputFormat))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", baseName+output.FileExtension(outputFormat)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write document response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.respondErrorWithOp(w, http.StatusNotFound, "asset not found", op)
	case errors.Is(err, registry.ErrInvalidDraft):
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
	case errors.Is(err, registry.ErrConflict):
		h.respondErrorWithOp(w, http.StatusConflict, err.Error(), op)
	default:
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
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
