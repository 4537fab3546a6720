package middlewares

import (
	"net/http"

	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/security/authn"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

// SecurityObserver recibe los rechazos (métricas). nil = no-op.
type SecurityObserver interface {
	AuthFailure(reason string)
	AuthzDenied(action string)
}

type noopObserver struct{}

func (noopObserver) AuthFailure(string) {}
func (noopObserver) AuthzDenied(string) {}

func observerOrNoop(o SecurityObserver) SecurityObserver {
	if o == nil {
		return noopObserver{}
	}
	return o
}

func rejectionError(reason authn.Reason) *httperrors.AppError {
	switch reason {
	case authn.ReasonExpired:
		return httperrors.ErrTokenExpired
	case authn.ReasonMissing:
		return httperrors.ErrTokenMissing
	default:
		return httperrors.ErrTokenInvalid
	}
}

// WithAuthentication resuelve el header Authorization:
//   - sin Bearer: sigue anónimo.
//   - token válido: Principal en el contexto y logger enriquecido.
//   - expirado/inválido: responde 401 y corta la cadena.
func WithAuthentication(dec authn.Decoder, obs SecurityObserver) Middleware {
	obs = observerOrNoop(obs)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out := authn.Authenticate(r.Header.Get("Authorization"), dec)

			switch out.State {
			case authn.Rejected:
				logger.From(r.Context()).Debug("token rejected",
					logger.Reason(string(out.Reason)),
					logger.Err(out.Err),
				)
				obs.AuthFailure(string(out.Reason))
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				httperrors.WriteError(w, r, rejectionError(out.Reason).WithCause(out.Err))
				return

			case authn.Authenticated:
				ctx := principal.With(r.Context(), out.Principal)
				ctx = logger.ToContext(ctx, logger.From(ctx).With(
					logger.Email(out.Principal.Identifier),
					logger.Role(out.Principal.Role.String()),
				))
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithRouteAccess aplica las reglas por prefijo (/api/admin/**, /api/**, público).
// Va después de WithAuthentication.
func WithRouteAccess(obs SecurityObserver) Middleware {
	obs = observerOrNoop(obs)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := authz.ClassifyRoute(r.URL.Path)
			var pp *principal.Principal
			if p, ok := principal.From(r.Context()); ok {
				pp = &p
			}

			switch authz.CanAccess(class, pp) {
			case authz.DenyMissing:
				obs.AuthFailure(string(authn.ReasonMissing))
				w.Header().Set("WWW-Authenticate", "Bearer")
				httperrors.WriteError(w, r, rejectionError(authn.ReasonMissing))
				return
			case authz.DenyRole:
				obs.AuthzDenied("route." + class.String())
				logger.From(r.Context()).Debug("route access denied", logger.String("route_class", class.String()))
				httperrors.WriteError(w, r, httperrors.ErrInsufficientAuthority)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
