package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/service"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ValidateToken], and — on success —
// stores the authenticated user's ID and role in the request context under
// [utils.UserIDCtxKey] and [utils.RoleCtxKey] before delegating to the next
// handler.
//
// Validation consults the live account state: a token whose version no
// longer matches the account, or whose account is locked or deactivated, is
// rejected even if the signature and expiry are fine.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ValidateToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAccountLocked) || errors.Is(err, service.ErrAccountDeactivated):
				log.Err(err).Msg("session denied by account state")
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			default:
				log.Err(err).Msg("error occurred during token validation")
				http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
				return
			}
		}

		// Store the authenticated identity in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.RoleCtxKey, token.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly gates a route group behind the admin role. It must be mounted
// after auth, which is what populates the role in the context.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		role, ok := utils.GetRoleFromContext(r.Context())
		if !ok || role != models.RoleAdmin {
			log.Warn().Str("role", role).Msg("non-admin request to admin route")
			http.Error(w, ErrAdminOnly.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
