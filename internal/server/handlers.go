package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Veraticus/client-pulse/internal/common"
	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/report"
	"github.com/Veraticus/client-pulse/internal/service"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProjects returns the full snapshot: finalized projects plus the raw
// alert sequence. The frontend filters dismissed alerts itself; clients that
// want the filtered view use the alert endpoints. `?refresh=true` forces a
// fresh fetch from the source.
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"
	snap, err := s.snapshot(r.Context(), force)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleAlerts returns all visible alerts, dismissed ones filtered out and
// the remainder ordered by severity.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context(), false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"takenAt": snap.TakenAt,
		"alerts":  report.VisibleAlerts(snap.Projects, snap.Alerts),
	})
}

func (s *Server) handleProjectAlerts(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	snap, err := s.snapshot(r.Context(), false)
	if err != nil {
		writeError(w, err)
		return
	}

	var project *model.Project
	for i := range snap.Projects {
		if snap.Projects[i].ID == projectID {
			project = &snap.Projects[i]
			break
		}
	}
	if project == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}

	visible := report.VisibleAlerts([]model.Project{*project},
		report.ProjectAlerts(projectID, snap.Alerts))
	writeJSON(w, http.StatusOK, map[string]any{
		"takenAt": snap.TakenAt,
		"alerts":  visible,
	})
}

// handleDismiss records a dismissal and refreshes the cached snapshot so the
// next read reflects it.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	alertID := chi.URLParam(r, "alertID")

	if err := s.monitor.Dismiss(r.Context(), projectID, alertID, s.clock.Now()); err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.refresh(r.Context()); err != nil {
		slog.Warn("Snapshot refresh after dismissal failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"projectId": projectID,
		"alertId":   alertID,
		"status":    "dismissed",
	})
}

// analyzeRequest is the body of POST /api/analyze.
type analyzeRequest struct {
	ProjectName string                `json:"projectName"`
	Deadline    time.Time             `json:"deadline"`
	Messages    []model.Communication `json:"messages"`
}

// handleAnalyze proxies an ad-hoc analysis request to the configured
// analyzer without a full snapshot cycle.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		writeJSON(w, http.StatusServiceUnavailable,
			map[string]string{"error": "no analyzer configured"})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": "invalid request body"})
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), service.AnalysisRequest{
		ProjectName: req.ProjectName,
		Deadline:    req.Deadline,
		Messages:    req.Messages,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps known error classes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrDealNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrSourceRateLimit), errors.Is(err, common.ErrRateLimit):
		status = http.StatusTooManyRequests
	case errors.Is(err, common.ErrSourceConnection), errors.Is(err, common.ErrAnalyzerUnavailable):
		status = http.StatusBadGateway
	}

	slog.Error("Request failed", "status", status, "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
