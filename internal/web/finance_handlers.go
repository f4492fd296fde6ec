package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcarver/rentroll/internal/expense"
	"github.com/jcarver/rentroll/internal/mortgage"
	"github.com/jcarver/rentroll/internal/payment"
	"github.com/jcarver/rentroll/internal/vendor"
)

func (s *Server) listMortgages(w http.ResponseWriter, r *http.Request) {
	propertyID, err := queryID(r, "propertyId")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	mortgages, err := s.mortgages.List(propertyID)
	if err != nil {
		apiError(w, fmt.Sprintf("listing mortgages: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, mortgages, http.StatusOK)
}

func (s *Server) createMortgage(w http.ResponseWriter, r *http.Request) {
	var m mortgage.Mortgage
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.mortgages.Insert(&m)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getMortgage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := s.mortgages.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, m, http.StatusOK)
}

func (s *Server) updateMortgage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var m mortgage.Mortgage
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	m.ID = id

	updated, err := s.mortgages.Update(&m)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteMortgage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.mortgages.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	opts := expense.ListOptions{
		Category:  expense.Category(r.URL.Query().Get("category")),
		StartDate: r.URL.Query().Get("from"),
		EndDate:   r.URL.Query().Get("to"),
	}

	var err error
	if opts.PropertyID, err = queryID(r, "propertyId"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := s.expenses.List(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing expenses: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, expenses, http.StatusOK)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var e expense.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.expenses.Insert(&e)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := s.expenses.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, e, http.StatusOK)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var e expense.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	e.ID = id

	updated, err := s.expenses.Update(&e)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.expenses.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	opts := payment.ListOptions{
		Status:    payment.Status(r.URL.Query().Get("status")),
		StartDate: r.URL.Query().Get("from"),
		EndDate:   r.URL.Query().Get("to"),
	}

	var err error
	if opts.TenantID, err = queryID(r, "tenantId"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if opts.PropertyID, err = queryID(r, "propertyId"); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	payments, err := s.payments.List(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing payments: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, payments, http.StatusOK)
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var p payment.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.payments.Insert(&p)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := s.payments.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) updatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var p payment.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	p.ID = id

	updated, err := s.payments.Update(&p)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) markPaymentPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		PaidDate string `json:"paidDate"`
		Method   string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.PaidDate == "" {
		apiError(w, "paidDate is required", http.StatusBadRequest)
		return
	}

	updated, err := s.payments.MarkPaid(id, req.PaidDate, req.Method)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.payments.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}

func (s *Server) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.vendors.List(r.URL.Query().Get("serviceType"))
	if err != nil {
		apiError(w, fmt.Sprintf("listing vendors: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, vendors, http.StatusOK)
}

func (s *Server) createVendor(w http.ResponseWriter, r *http.Request) {
	var v vendor.Vendor
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.vendors.Insert(&v)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) getVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := s.vendors.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, v, http.StatusOK)
}

func (s *Server) updateVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var v vendor.Vendor
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	v.ID = id

	updated, err := s.vendors.Update(&v)
	if err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.vendors.Delete(id); err != nil {
		apiError(w, err.Error(), notFoundStatus(err))
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "deleted": true}, http.StatusOK)
}
