package api

import (
	"encoding/json"
	"net/http"
	"time"

	"monetrix/analytics"
	"monetrix/report"
)

// handleCreateAnalysis runs the derivation pipeline on the submitted inputs
// and persists the resulting record
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var inputs analytics.Inputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.analysis.CreateAnalysis(r.Context(), userIDFrom(r), inputs)
	if err != nil {
		respondServiceError(w, err, "Record not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetLatest returns the user's most recent analysis record
func (s *Server) handleGetLatest(w http.ResponseWriter, r *http.Request) {
	record, err := s.analysis.GetLatest(r.Context(), userIDFrom(r))
	if err != nil {
		respondServiceError(w, err, "No analysis found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// handleGetHistory returns up to 20 records, newest first
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.analysis.GetHistory(r.Context(), userIDFrom(r))
	if err != nil {
		respondServiceError(w, err, "No analysis found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

// handleGetComparison returns a record, its immediate predecessor and the
// trend delta between them. A record with no predecessor still succeeds,
// with previous and trends null.
func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	periodID := r.PathValue("periodId")

	comparison, err := s.analysis.GetComparison(r.Context(), userIDFrom(r), periodID)
	if err != nil {
		respondServiceError(w, err, "Record not found")
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}

type reportRequest struct {
	BusinessName string              `json:"businessName"`
	PeriodLabel  string              `json:"periodLabel"`
	Analytics    analytics.Metrics   `json:"analytics"`
	Insights     []analytics.Insight `json:"insights"`
}

// handleExportReport renders the submitted analysis as a downloadable HTML
// report
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := time.Now()
	html, err := report.Render(report.Data{
		BusinessName: req.BusinessName,
		PeriodLabel:  req.PeriodLabel,
		Date:         now,
		Analytics:    req.Analytics,
		Insights:     req.Insights,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Report generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Disposition", "attachment; filename="+report.Filename(now))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
