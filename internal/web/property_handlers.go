package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcarver/rentroll/internal/property"
	"github.com/jcarver/rentroll/internal/unit"
)

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	opts := property.ListOptions{
		Status: property.Status(r.URL.Query().Get("status")),
		Type:   property.Type(r.URL.Query().Get("type")),
	}

	if r.URL.Query().Get("withStats") == "true" {
		props, err := s.properties.ListWithStats(opts)
		if err != nil {
			apiError(w, fmt.Sprintf("listing properties: %v", err), http.StatusInternalServerError)
			return
		}
		apiJSON(w, props, http.StatusOK)
		return
	}

	props, err := s.properties.List(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing properties: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, props, http.StatusOK)
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var p property.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.properties.Insert(&p)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := s.properties.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var p property.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	p.ID = id

	updated, err := s.properties.Update(&p)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.properties.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}

func (s *Server) getPropertyStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := s.properties.GetStats(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, stats, http.StatusOK)
}

func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	propertyID, err := queryID(r, "propertyId")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	units, err := s.units.List(propertyID)
	if err != nil {
		apiError(w, fmt.Sprintf("listing units: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, units, http.StatusOK)
}

func (s *Server) createUnit(w http.ResponseWriter, r *http.Request) {
	var u unit.Unit
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.units.Insert(&u)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getUnit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := s.units.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, u, http.StatusOK)
}

func (s *Server) updateUnit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var u unit.Unit
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	u.ID = id

	updated, err := s.units.Update(&u)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteUnit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.units.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}

func (s *Server) getUnitHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	history, err := s.tenants.HistoryByUnit(id)
	if err != nil {
		apiError(w, fmt.Sprintf("loading history: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, history, http.StatusOK)
}
