package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcarver/rentroll/internal/billing"
)

func (s *Server) createBillingRecord(w http.ResponseWriter, r *http.Request) {
	var rec billing.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.billing.Insert(&rec)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) listBillingRecords(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := s.billing.ListByTenant(tenantID)
	if err != nil {
		apiError(w, fmt.Sprintf("listing billing records: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, records, http.StatusOK)
}

func (s *Server) updateBillingRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var rec billing.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	rec.ID = id

	updated, err := s.billing.Update(&rec)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) generateMonthlyBilling(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Period string `json:"period"`
	}
	// Body is optional; an empty period means the current month.
	_ = json.NewDecoder(r.Body).Decode(&req)

	generated, err := s.billing.GenerateMonthly(req.Period)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, map[string]int{"generated": generated}, http.StatusOK)
}

func (s *Server) runAutomaticBilling(w http.ResponseWriter, r *http.Request) {
	result, err := s.billing.RunAutomatic()
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, result, http.StatusOK)
}

func (s *Server) getOutstandingBalance(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	balance, err := s.billing.OutstandingBalance(tenantID)
	if err != nil {
		apiError(w, fmt.Sprintf("computing balance: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]string{"balance": balance}, http.StatusOK)
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, billing.Plans(), http.StatusOK)
}

func (s *Server) simulatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plan  string `json:"plan"`
		Units int    `json:"units"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	sim, err := billing.Simulate(req.Plan, req.Units)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, sim, http.StatusOK)
}
