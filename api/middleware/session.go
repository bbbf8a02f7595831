package middleware

import (
	"net/http"

	"github.com/novamart/storefront-backend/api/responses"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/session"
)

const sessionTokenHeader = "X-Session-Token"

// Session resolves the guest session from the request token, issuing a
// fresh one when the request carries none. A malformed or expired token is
// rejected so a client never silently loses its cart to a new session.
func Session(manager *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := r.Header.Get(sessionTokenHeader)
			var sessionID string
			if token == "" {
				issued, id, err := manager.Issue()
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue session token"))
					return
				}
				w.Header().Set(sessionTokenHeader, issued)
				sessionID = id
			} else {
				id, err := manager.Parse(token)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token"))
					return
				}
				sessionID = id
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
