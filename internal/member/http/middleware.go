package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/httpx"
	"github.com/momentree/momentree/pkg/slogx"
)

// AuthMiddleware resolves the bearer access token (when present) to a
// principal and attaches it to the request context.
//
// An absent Authorization header passes the request through anonymously. A
// present but unverifiable token is rejected with 401: a client that sends
// credentials deserves to know they were bad. A verified token whose member
// no longer exists (or is deleted) also passes through anonymously; the
// route-level guards decide whether anonymous is acceptable.
func AuthMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := auth.Authenticate(ctx, header)
			switch {
			case err == nil:
				ctx = contextWithPrincipal(ctx, principal)
				next.ServeHTTP(w, r.WithContext(ctx))

			case errors.Is(err, service.ErrNotAuthenticated):
				// Token checked out but the member is gone. Anonymous.
				log.Info("verified token without a usable member")
				next.ServeHTTP(w, r)

			default:
				log.Warn("access token rejected", "error", err)
				writeServiceError(w, err)
			}
		})
	}
}

// RequireMember rejects anonymous requests with 401.
func RequireMember() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				ErrUnauthorized.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admin members
// with 403.
func RequireAdmin() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				ErrUnauthorized.WriteError(w)
				return
			}
			if !principal.IsAdmin() {
				ErrForbidden.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func contextWithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	ctx = context.WithValue(ctx, httpx.CtxKeyMemberID, p.Member.ID)
	ctx = context.WithValue(ctx, httpx.CtxKeyPrincipal, p)
	return ctx
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(httpx.CtxKeyPrincipal).(domain.Principal)
	return p, ok
}
