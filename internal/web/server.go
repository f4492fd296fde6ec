// Package web provides the REST API server.
package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jcarver/rentroll/internal/ai"
	"github.com/jcarver/rentroll/internal/auth"
	"github.com/jcarver/rentroll/internal/billing"
	"github.com/jcarver/rentroll/internal/config"
	"github.com/jcarver/rentroll/internal/email"
	"github.com/jcarver/rentroll/internal/expense"
	"github.com/jcarver/rentroll/internal/logging"
	"github.com/jcarver/rentroll/internal/mortgage"
	"github.com/jcarver/rentroll/internal/payment"
	"github.com/jcarver/rentroll/internal/property"
	"github.com/jcarver/rentroll/internal/report"
	"github.com/jcarver/rentroll/internal/task"
	"github.com/jcarver/rentroll/internal/tenant"
	"github.com/jcarver/rentroll/internal/unit"
	"github.com/jcarver/rentroll/internal/vendor"
)

// Server is the API HTTP server.
type Server struct {
	users      *auth.UserStore
	sessions   *auth.SessionStore
	properties *property.Repository
	units      *unit.Repository
	tenants    *tenant.Repository
	tasks      *task.Repository
	drafts     *task.DraftRepository
	comms      *task.CommRepository
	mortgages  *mortgage.Repository
	expenses   *expense.Repository
	payments   *payment.Repository
	vendors    *vendor.Repository
	billing    *billing.Repository
	reports    *report.Builder
	analyzer   *ai.Analyzer
	dispatcher *email.Dispatcher

	dataDir string
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer wires the repositories and middleware for the given
// database and configuration.
func NewServer(db *sql.DB, cfg config.Config) *Server {
	tasks := task.NewRepository(db)
	comms := task.NewCommRepository(db)
	expenses := expense.NewRepository(db)
	payments := payment.NewRepository(db)

	var transport email.Transport
	smtpCfg := email.SMTPConfig{
		Host: cfg.SMTPHost, Port: cfg.SMTPPort, User: cfg.SMTPUser,
		Pass: cfg.SMTPPass, From: cfg.SMTPFrom,
	}
	if smtpCfg.IsConfigured() && !cfg.DevMode {
		transport = email.NewSMTPTransport(smtpCfg)
	} else {
		transport = email.LogTransport{}
	}

	s := &Server{
		users:      auth.NewUserStore(db),
		sessions:   auth.NewSessionStore(db),
		properties: property.NewRepository(db),
		units:      unit.NewRepository(db),
		tenants:    tenant.NewRepository(db),
		tasks:      tasks,
		drafts:     task.NewDraftRepository(db, tasks),
		comms:      comms,
		mortgages:  mortgage.NewRepository(db),
		expenses:   expenses,
		payments:   payments,
		vendors:    vendor.NewRepository(db),
		billing:    billing.NewRepository(db),
		reports:    report.NewBuilder(tasks, expenses, payments),
		analyzer:   ai.NewAnalyzer(cfg.OpenAIKey),
		dispatcher: email.NewDispatcher(transport, comms),
		dataDir:    cfg.DataDir,
		mux:        http.NewServeMux(),
	}

	s.routes()
	s.handler = logging.RequestLogger(auth.RequireToken(s.sessions, s.users, s.mux))

	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/auth/me", s.handleMe)

	s.mux.HandleFunc("GET /api/properties", s.listProperties)
	s.mux.HandleFunc("POST /api/properties", s.createProperty)
	s.mux.HandleFunc("GET /api/properties/{id}", s.getProperty)
	s.mux.HandleFunc("PUT /api/properties/{id}", s.updateProperty)
	s.mux.HandleFunc("DELETE /api/properties/{id}", s.deleteProperty)
	s.mux.HandleFunc("GET /api/properties/{id}/stats", s.getPropertyStats)

	s.mux.HandleFunc("GET /api/units", s.listUnits)
	s.mux.HandleFunc("POST /api/units", s.createUnit)
	s.mux.HandleFunc("GET /api/units/{id}", s.getUnit)
	s.mux.HandleFunc("PUT /api/units/{id}", s.updateUnit)
	s.mux.HandleFunc("DELETE /api/units/{id}", s.deleteUnit)
	s.mux.HandleFunc("GET /api/units/{id}/history", s.getUnitHistory)

	s.mux.HandleFunc("GET /api/tenants", s.listTenants)
	s.mux.HandleFunc("POST /api/tenants", s.createTenant)
	s.mux.HandleFunc("GET /api/tenants/available", s.listAvailableTenants)
	s.mux.HandleFunc("GET /api/tenants/{id}", s.getTenant)
	s.mux.HandleFunc("PUT /api/tenants/{id}", s.updateTenant)
	s.mux.HandleFunc("DELETE /api/tenants/{id}", s.deleteTenant)
	s.mux.HandleFunc("POST /api/tenants/{id}/assign", s.assignTenant)
	s.mux.HandleFunc("POST /api/tenants/{id}/move-out", s.moveOutTenant)

	s.mux.HandleFunc("GET /api/tasks", s.listTasks)
	s.mux.HandleFunc("POST /api/tasks", s.createTask)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	s.mux.HandleFunc("GET /api/tasks/{id}/draft", s.getDraft)
	s.mux.HandleFunc("PUT /api/tasks/{id}/draft", s.saveDraft)
	s.mux.HandleFunc("POST /api/tasks/{id}/draft/commit", s.commitDraft)
	s.mux.HandleFunc("DELETE /api/tasks/{id}/draft", s.discardDraft)
	s.mux.HandleFunc("GET /api/tasks/{id}/attachments", s.listAttachments)
	s.mux.HandleFunc("POST /api/tasks/{id}/attachments", s.uploadAttachment)
	s.mux.HandleFunc("GET /api/tasks/{id}/attachments/{attachmentId}", s.downloadAttachment)
	s.mux.HandleFunc("DELETE /api/tasks/{id}/attachments/{attachmentId}", s.deleteAttachment)
	s.mux.HandleFunc("GET /api/tasks/{id}/communications", s.listCommunications)
	s.mux.HandleFunc("POST /api/tasks/{id}/communications", s.sendCommunication)

	s.mux.HandleFunc("GET /api/mortgages", s.listMortgages)
	s.mux.HandleFunc("POST /api/mortgages", s.createMortgage)
	s.mux.HandleFunc("GET /api/mortgages/{id}", s.getMortgage)
	s.mux.HandleFunc("PUT /api/mortgages/{id}", s.updateMortgage)
	s.mux.HandleFunc("DELETE /api/mortgages/{id}", s.deleteMortgage)

	s.mux.HandleFunc("GET /api/expenses", s.listExpenses)
	s.mux.HandleFunc("POST /api/expenses", s.createExpense)
	s.mux.HandleFunc("GET /api/expenses/{id}", s.getExpense)
	s.mux.HandleFunc("PUT /api/expenses/{id}", s.updateExpense)
	s.mux.HandleFunc("DELETE /api/expenses/{id}", s.deleteExpense)

	s.mux.HandleFunc("GET /api/rent-payments", s.listPayments)
	s.mux.HandleFunc("POST /api/rent-payments", s.createPayment)
	s.mux.HandleFunc("GET /api/rent-payments/{id}", s.getPayment)
	s.mux.HandleFunc("PUT /api/rent-payments/{id}", s.updatePayment)
	s.mux.HandleFunc("DELETE /api/rent-payments/{id}", s.deletePayment)
	s.mux.HandleFunc("POST /api/rent-payments/{id}/mark-paid", s.markPaymentPaid)

	s.mux.HandleFunc("GET /api/vendors", s.listVendors)
	s.mux.HandleFunc("POST /api/vendors", s.createVendor)
	s.mux.HandleFunc("GET /api/vendors/{id}", s.getVendor)
	s.mux.HandleFunc("PUT /api/vendors/{id}", s.updateVendor)
	s.mux.HandleFunc("DELETE /api/vendors/{id}", s.deleteVendor)

	s.mux.HandleFunc("POST /api/billing-records", s.createBillingRecord)
	s.mux.HandleFunc("GET /api/billing-records/{tenantId}", s.listBillingRecords)
	s.mux.HandleFunc("PUT /api/billing-records/{id}", s.updateBillingRecord)
	s.mux.HandleFunc("POST /api/billing-records/generate-monthly", s.generateMonthlyBilling)
	s.mux.HandleFunc("POST /api/billing-records/run-automatic", s.runAutomaticBilling)
	s.mux.HandleFunc("GET /api/outstanding-balance/{tenantId}", s.getOutstandingBalance)
	s.mux.HandleFunc("GET /api/billing/plans", s.listPlans)
	s.mux.HandleFunc("POST /api/billing/simulate", s.simulatePlan)

	s.mux.HandleFunc("GET /api/reports/calendar", s.getCalendar)
	s.mux.HandleFunc("GET /api/reports/financial", s.getFinancialReport)
	s.mux.HandleFunc("GET /api/reports/export", s.exportReport)

	s.mux.HandleFunc("POST /api/ai/analyze-document", s.analyzeDocument)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// pathID parses the named path value as an int64 ID.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// queryID parses an optional numeric query parameter. Absent or empty
// returns 0.
func queryID(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// notFoundStatus picks 404 for "not found" repository errors, 400
// otherwise.
func notFoundStatus(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
