package rest

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
	"github.com/gaia-qao/compliance-backend/internal/service/analysis"
	compliancesvc "github.com/gaia-qao/compliance-backend/internal/service/compliance"
	"github.com/gaia-qao/compliance-backend/internal/service/monitor"
	"github.com/gaia-qao/compliance-backend/internal/service/routing"
)

// Handler carries the services behind the HTTP surface.
type Handler struct {
	logger          *zap.Logger
	events          session.Repository
	compliance      *compliancesvc.Service
	monitor         *monitor.Monitor
	analysis        *analysis.Service
	routing         *routing.Service
	defaultInterval time.Duration
}

// NewHandler wires the handler set.
func NewHandler(
	logger *zap.Logger,
	events session.Repository,
	complianceService *compliancesvc.Service,
	monitorService *monitor.Monitor,
	analysisService *analysis.Service,
	routingService *routing.Service,
	defaultInterval time.Duration,
) *Handler {
	return &Handler{
		logger:          logger,
		events:          events,
		compliance:      complianceService,
		monitor:         monitorService,
		analysis:        analysisService,
		routing:         routingService,
		defaultInterval: defaultInterval,
	}
}

// Register attaches all routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/sessions/{id}/events", h.appendEvent)
	mux.HandleFunc("GET /api/v1/sessions/{id}/events", h.listEvents)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}/events", h.clearEvents)

	mux.HandleFunc("POST /api/v1/sessions/{id}/report", h.generateReport)
	mux.HandleFunc("GET /api/v1/sessions/{id}/report/violations.csv", h.exportViolationsCSV)

	mux.HandleFunc("POST /api/v1/sessions/{id}/analyze", h.analyzeInput)

	mux.HandleFunc("POST /api/v1/sessions/{id}/monitor/start", h.startMonitoring)
	mux.HandleFunc("POST /api/v1/sessions/{id}/monitor/stop", h.stopMonitoring)
	mux.HandleFunc("GET /api/v1/sessions/{id}/monitor/history", h.monitorHistory)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}/monitor/history", h.clearMonitorHistory)
	mux.HandleFunc("GET /api/v1/sessions/{id}/monitor/alerts", h.monitorAlerts)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}/monitor/alerts", h.clearMonitorAlerts)

	mux.HandleFunc("GET /api/v1/monitor/thresholds", h.getThresholds)
	mux.HandleFunc("PUT /api/v1/monitor/thresholds", h.putThresholds)

	mux.HandleFunc("GET /healthz", h.healthz)
}

type appendEventRequest struct {
	InfoCode  string                 `json:"infoCode"`
	EventType string                 `json:"eventType"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details"`
}

func (h *Handler) appendEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req appendEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("INVALID_BODY", "malformed JSON body"))
		return
	}

	event, err := session.NewEvent(sessionID, req.InfoCode, req.EventType, req.Details)
	if err != nil {
		h.writeError(w, err)
		return
	}
	event.Timestamp = req.Timestamp
	event.Stamp(time.Now())

	if err := h.events.Append(r.Context(), event); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, event)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.BySession(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

func (h *Handler) clearEvents(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Clear(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	level, err := requestedLevel(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	report, err := h.compliance.GenerateReport(r.Context(), r.PathValue("id"), level)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

func (h *Handler) exportViolationsCSV(w http.ResponseWriter, r *http.Request) {
	level, err := requestedLevel(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	report, err := h.compliance.GenerateReport(r.Context(), r.PathValue("id"), level)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		"attachment; filename="+compliancesvc.ViolationsCSVFilename(time.Now()))
	if err := compliancesvc.WriteViolationsCSV(w, report); err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
	}
}

type analyzeRequest struct {
	Input     string              `json:"input"`
	FileTypes []analysis.FileType `json:"fileTypes"`
}

func (h *Handler) analyzeInput(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("INVALID_BODY", "malformed JSON body"))
		return
	}

	result, err := h.analysis.Analyze(r.Context(), sessionID, req.Input, req.FileTypes)
	if err != nil {
		h.writeError(w, err)
		return
	}

	recommendations, err := h.routing.Recommend(r.Context(), sessionID, result)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"analysis":        result,
		"recommendations": recommendations,
	})
}

type startMonitoringRequest struct {
	Level      compliance.Level `json:"level"`
	IntervalMS int64            `json:"intervalMs"`
}

func (h *Handler) startMonitoring(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req startMonitoringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("INVALID_BODY", "malformed JSON body"))
		return
	}

	interval := h.defaultInterval
	if req.IntervalMS > 0 {
		interval = time.Duration(req.IntervalMS) * time.Millisecond
	}

	if err := h.monitor.Start(r.Context(), sessionID, interval, req.Level); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"monitoring": true,
		"sessionId":  sessionID,
		"intervalMs": interval.Milliseconds(),
		"level":      req.Level,
	})
}

func (h *Handler) stopMonitoring(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	h.monitor.Stop(sessionID)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"monitoring": false,
		"sessionId":  sessionID,
	})
}

func (h *Handler) monitorHistory(w http.ResponseWriter, r *http.Request) {
	history := h.monitor.History(r.PathValue("id"))
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   len(history),
	})
}

func (h *Handler) clearMonitorHistory(w http.ResponseWriter, r *http.Request) {
	h.monitor.ClearHistory(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) monitorAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.monitor.Alerts(r.PathValue("id"))
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

func (h *Handler) clearMonitorAlerts(w http.ResponseWriter, r *http.Request) {
	h.monitor.ClearAlerts(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getThresholds(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.monitor.Thresholds())
}

func (h *Handler) putThresholds(w http.ResponseWriter, r *http.Request) {
	var thresholds compliance.Thresholds
	if err := json.NewDecoder(r.Body).Decode(&thresholds); err != nil {
		h.writeError(w, errors.NewValidationError("INVALID_BODY", "malformed JSON body"))
		return
	}

	if err := h.monitor.SetThresholds(thresholds); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.monitor.Thresholds())
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestedLevel reads the mandatory level query parameter.
func requestedLevel(r *http.Request) (compliance.Level, error) {
	level := compliance.Level(r.URL.Query().Get("level"))
	if level == "" {
		return "", errors.NewValidationError("MISSING_COMPLIANCE_LEVEL",
			"level query parameter is required")
	}
	if !level.Valid() {
		return "", errors.NewValidationError("INVALID_COMPLIANCE_LEVEL",
			"unknown compliance level: "+string(level))
	}
	return level, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := errors.GetStatusCode(err)
	code := "INTERNAL_ERROR"
	message := "internal server error"

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}

	h.writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
