package httpx

import (
	"log/slog"
	"net/http"

	"github.com/journalsoc/journal-api/internal/domain/policy"
	"github.com/journalsoc/journal-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Moderation   *service.ModerationService
	Roles        *service.RoleService
	Auth         *service.AuthService
	Events       *service.SessionEvents
	CookieDomain string
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	postHandlers := &PostHandlers{Svc: services.Moderation}
	profileHandlers := &ProfileHandlers{Svc: services.Roles}
	var authHandlers *AuthHandlers
	if services.Auth != nil {
		authHandlers = &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: services.Logger}
	}

	registerPostRoutes(mux, postHandlers, services.Auth)
	registerProfileRoutes(mux, profileHandlers, services.Auth)
	if services.Events != nil && services.Auth != nil {
		eventHandlers := &SessionEventHandlers{Events: services.Events}
		mux.Handle("GET /api/session-events",
			RequireAuth(services.Auth)(http.HandlerFunc(eventHandlers.Stream)))
	}
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if authHandlers != nil {
		registerAuthRoutes(mux, authHandlers)
	}

	return mux
}

// registerPostRoutes wires the public listing plus the authenticated
// moderation endpoints. The published listing stays open; everything else
// requires a session, and the services re-check the role policy against the
// profile store.
func registerPostRoutes(mux *http.ServeMux, h *PostHandlers, auth *service.AuthService) {
	authed := authWrap(auth)
	// Published listing is public; a presented session is still attached
	// to the request context.
	mux.Handle("GET /api/posts", optionalWrap(auth)(http.HandlerFunc(h.ListPublished)))
	mux.Handle("POST /api/posts", authed(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/posts/review", authed(http.HandlerFunc(h.ListUnreviewed)))
	mux.Handle("POST /api/posts/{id}/approve", authed(http.HandlerFunc(h.Approve)))
}

func registerProfileRoutes(mux *http.ServeMux, h *ProfileHandlers, auth *service.AuthService) {
	adminOnly := actionWrap(auth, policy.ActionManageRoles)
	mux.Handle("GET /api/profiles", adminOnly(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/profiles/{id}/roles", adminOnly(http.HandlerFunc(h.GetRoles)))
	mux.Handle("PUT /api/profiles/{id}/roles", adminOnly(http.HandlerFunc(h.UpdateRoles)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// authWrap returns a no-op wrapper when auth is nil, otherwise applies RequireAuth.
func authWrap(auth *service.AuthService) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAuth(auth)
}

// actionWrap returns a no-op wrapper when auth is nil, otherwise applies RequireAction.
func actionWrap(auth *service.AuthService, action policy.Action) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAction(auth, action)
}

func optionalWrap(auth *service.AuthService) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return OptionalAuth(auth)
}
