package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
	"github.com/erazemk/unifind/internal/schema"
	"github.com/erazemk/unifind/internal/store"
)

// ReportsHandler handles lost and found report endpoints.
type ReportsHandler struct {
	Store *store.Memory
}

// List handles GET /api/reports.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	st := query.New(nil)
	for _, k := range query.Keys {
		st.SetFilter(k, params.Get(string(k)))
	}
	filters := st.Effective()

	var fe schema.FieldErrors
	if err := schema.FilterDates(filters); errors.As(err, &fe) {
		validationError(w, fe)
		return
	}

	reports, err := h.Store.ListReports(r.Context(), filters)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}
	jsonResponse(w, http.StatusOK, reports)
}

// Get handles GET /api/reports/{id}.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.Store.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}
	if report == nil {
		jsonError(w, http.StatusNotFound, "Report not found")
		return
	}
	jsonResponse(w, http.StatusOK, report)
}

// Create handles POST /api/reports.
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req model.ReportInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Accept any date that is already today somewhere.
	var fe schema.FieldErrors
	if err := schema.Report(req, time.Now().In(schema.LatestZone)); errors.As(err, &fe) {
		validationError(w, fe)
		return
	}

	reporter := model.Person{Name: claims.Name, Email: claims.Email}
	report, err := h.Store.CreateReport(r.Context(), req, reporter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to create report")
		return
	}

	slog.Info("report created", "id", report.ID, "type", report.Type, "user", claims.Email)
	jsonResponse(w, http.StatusCreated, report)
}
