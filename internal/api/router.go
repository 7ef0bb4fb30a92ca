package api

import (
	"net/http"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(mem *store.Memory, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Store: mem, JWTSecret: jwtSecret}
	reportsHandler := &ReportsHandler{Store: mem}
	claimsHandler := &ClaimsHandler{Store: mem}

	authMW := AuthMiddleware(jwtSecret)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: accounts and browsing.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("GET /api/reports", reportsHandler.List)
	mux.HandleFunc("GET /api/reports/{id}", reportsHandler.Get)

	// Authenticated routes.
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/reports", authMW(http.HandlerFunc(reportsHandler.Create)))
	mux.Handle("POST /api/reports/{id}/claims", authMW(http.HandlerFunc(claimsHandler.Submit)))

	// Claim triage (admin only).
	mux.Handle("GET /api/claims", authMW(requireAdmin(http.HandlerFunc(claimsHandler.List))))
	mux.Handle("POST /api/claims/{id}/approve", authMW(requireAdmin(http.HandlerFunc(claimsHandler.Approve))))
	mux.Handle("POST /api/claims/{id}/reject", authMW(requireAdmin(http.HandlerFunc(claimsHandler.Reject))))

	return mux
}
