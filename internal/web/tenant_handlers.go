package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcarver/rentroll/internal/tenant"
)

func (s *Server) listTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.tenants.List()
	if err != nil {
		apiError(w, fmt.Sprintf("listing tenants: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, tenants, http.StatusOK)
}

func (s *Server) listAvailableTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.tenants.ListAvailable()
	if err != nil {
		apiError(w, fmt.Sprintf("listing available tenants: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, tenants, http.StatusOK)
}

func (s *Server) createTenant(w http.ResponseWriter, r *http.Request) {
	var t tenant.Tenant
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.tenants.Insert(&t)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := s.tenants.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, t, http.StatusOK)
}

func (s *Server) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var t tenant.Tenant
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	t.ID = id

	updated, err := s.tenants.Update(&t)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.tenants.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}

// assignTenant moves a tenant into a unit. The tenant, unit, and
// history records change together or not at all.
func (s *Server) assignTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		UnitID int64  `json:"unitId"`
		MoveIn string `json:"moveIn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.UnitID == 0 {
		apiError(w, "unitId is required", http.StatusBadRequest)
		return
	}

	if err := s.tenants.Assign(id, req.UnitID, req.MoveIn); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}

	t, err := s.tenants.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, t, http.StatusOK)
}

// moveOutTenant vacates a tenant's unit and closes the history record.
func (s *Server) moveOutTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		MoveOutDate string `json:"moveOutDate"`
		Reason      string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := s.tenants.MoveOut(id, req.MoveOutDate, req.Reason); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}

	t, err := s.tenants.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, t, http.StatusOK)
}
