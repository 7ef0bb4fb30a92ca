package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/schema"
	"github.com/erazemk/unifind/internal/store"
)

// ClaimsHandler handles ownership claim endpoints.
type ClaimsHandler struct {
	Store *store.Memory
}

// Submit handles POST /api/reports/{id}/claims.
func (h *ClaimsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req model.ClaimInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var fe schema.FieldErrors
	if err := schema.Claim(req); errors.As(err, &fe) {
		validationError(w, fe)
		return
	}

	claimant := model.Person{Name: claims.Name, Email: claims.Email}
	claim, err := h.Store.CreateClaim(r.Context(), r.PathValue("id"), claimant, strings.TrimSpace(req.VerificationNote))
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Report not found")
		return
	case errors.Is(err, store.ErrNotClaimable):
		jsonError(w, http.StatusConflict, "This item has already been claimed")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "Failed to submit claim")
		return
	}

	slog.Info("claim submitted", "claim", claim.ID, "report", claim.ItemID, "user", claims.Email)
	jsonResponse(w, http.StatusCreated, claim)
}

// List handles GET /api/claims.
func (h *ClaimsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := h.Store.PendingClaims(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to list claims")
		return
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	jsonResponse(w, http.StatusOK, claims)
}

// Approve handles POST /api/claims/{id}/approve.
func (h *ClaimsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, true)
}

// Reject handles POST /api/claims/{id}/reject.
func (h *ClaimsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, false)
}

func (h *ClaimsHandler) resolve(w http.ResponseWriter, r *http.Request, approve bool) {
	id := r.PathValue("id")
	claim, err := h.Store.ResolveClaim(r.Context(), id, approve)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Claim not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to update claim")
		return
	}

	action := "rejected"
	if approve {
		action = "approved"
	}
	slog.Info("claim "+action, "claim", claim.ID, "report", claim.ItemID, "admin", GetClaims(r.Context()).Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Claim " + action})
}
