package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jcarver/rentroll/internal/ai"
	"github.com/jcarver/rentroll/internal/report"
)

func (s *Server) getCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := s.reports.Calendar()
	if err != nil {
		apiError(w, fmt.Sprintf("building calendar: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, events, http.StatusOK)
}

func (s *Server) getFinancialReport(w http.ResponseWriter, r *http.Request) {
	opts := report.FinancialOptions{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	var err error
	if opts.PropertyID, err = queryID(r, "propertyId"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.reports.Financial(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("building financial report: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, result, http.StatusOK)
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	exportType := r.URL.Query().Get("type")
	if !report.ValidExportType(exportType) {
		apiError(w, "type must be one of financial, expenses, revenues, maintenance", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", exportType))

	if err := s.reports.ExportCSV(w, exportType); err != nil {
		// Headers are already out; log-level reporting happens in middleware.
		fmt.Fprintf(w, "export error: %v\n", err)
	}
}

// analyzeDocument proxies a document question to the AI analyzer.
// A missing key is 503, an upstream failure 502; neither is fatal.
func (s *Server) analyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentText string `json:"documentText"`
		Question     string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.DocumentText == "" {
		apiError(w, "documentText is required", http.StatusBadRequest)
		return
	}

	answer, err := s.analyzer.AnalyzeDocument(r.Context(), req.DocumentText, req.Question)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			apiError(w, "AI analysis is not configured", http.StatusServiceUnavailable)
			return
		}
		apiError(w, err.Error(), http.StatusBadGateway)
		return
	}

	apiJSON(w, map[string]string{"analysis": answer}, http.StatusOK)
}
