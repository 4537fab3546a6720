// Package router arma el árbol de rutas chi y la cadena global de middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctl "github.com/dropDatabas3/hellopos/internal/http/controllers/auth"
	categoryctl "github.com/dropDatabas3/hellopos/internal/http/controllers/category"
	healthctl "github.com/dropDatabas3/hellopos/internal/http/controllers/health"
	productctl "github.com/dropDatabas3/hellopos/internal/http/controllers/product"
	storectl "github.com/dropDatabas3/hellopos/internal/http/controllers/store"
	userctl "github.com/dropDatabas3/hellopos/internal/http/controllers/user"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	mw "github.com/dropDatabas3/hellopos/internal/http/middlewares"
	"github.com/dropDatabas3/hellopos/internal/metrics"
	"github.com/dropDatabas3/hellopos/internal/rate"
	"github.com/dropDatabas3/hellopos/internal/security/authn"
)

// Controllers agrupa los controllers de todos los dominios.
type Controllers struct {
	Auth     *authctl.Controller
	User     *userctl.Controller
	Store    *storectl.Controller
	Category *categoryctl.Controller
	Product  *productctl.Controller
	Health   *healthctl.Controller
}

type Deps struct {
	Controllers Controllers
	Decoder     authn.Decoder
	CORS        mw.CORSConfig
	// Opcionales.
	Metrics *metrics.Metrics
	// Security recibe fallas de credencial y denegaciones; nil usa Metrics.
	Security    mw.SecurityObserver
	AuthLimiter rate.Limiter
	// TrustedProxies habilita X-Forwarded-For en la clave del rate limit. nil = RemoteAddr.
	TrustedProxies *mw.TrustedProxies
	// ServeMetrics monta /metrics en este router.
	ServeMetrics bool
}

// New devuelve el handler raíz. Orden: recover, request id, logging, métricas,
// headers, CORS, autenticación y acceso por ruta.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	security := d.Security
	if security == nil && d.Metrics != nil {
		security = d.Metrics
	}

	use(r,
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		metricsMiddleware(d.Metrics),
		mw.WithSecurityHeaders(),
		mw.WithCORS(d.CORS),
		mw.WithAuthentication(d.Decoder, security),
		mw.WithRouteAccess(security),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, r, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, r, httperrors.ErrMethodNotAllowed)
	})

	c := d.Controllers

	r.Get("/healthz", c.Health.Live)
	r.Get("/readyz", c.Health.Ready)
	if d.ServeMetrics && d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		use(r, mw.WithNoStore(), mw.WithRateLimit(d.AuthLimiter, rateKey(d.TrustedProxies)))
		r.Post("/signup", c.Auth.Signup)
		r.Post("/login", c.Auth.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", c.User.List)
			r.Patch("/stores/{id}/moderate", c.Store.Moderate)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/profile", c.User.Profile)
			r.Get("/{id}", c.User.Get)
		})

		r.Route("/stores", func(r chi.Router) {
			r.Post("/", c.Store.Create)
			r.Get("/", c.Store.List)
			r.Get("/admin", c.Store.ByAdmin)
			r.Get("/employee", c.Store.ByEmployee)
			r.Get("/{id}", c.Store.Get)
			r.Put("/{id}", c.Store.Update)
			r.Delete("/{id}", c.Store.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", c.Category.Create)
			r.Get("/store/{storeId}", c.Category.ListByStore)
			r.Put("/{id}", c.Category.Update)
			r.Delete("/{id}", c.Category.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", c.Product.Create)
			r.Get("/store/{storeId}", c.Product.ListByStore)
			r.Get("/store/{storeId}/search", c.Product.Search)
			r.Put("/{id}", c.Product.Update)
			r.Delete("/{id}", c.Product.Delete)
		})
	})

	return r
}

// use registra los middlewares no nil (los opcionales devuelven nil cuando no aplican).
func use(r chi.Router, mws ...mw.Middleware) {
	for _, m := range mws {
		if m != nil {
			r.Use(m)
		}
	}
}

func rateKey(tp *mw.TrustedProxies) mw.RateKeyFunc {
	if tp == nil {
		return mw.IPPathRateKey
	}
	return tp.IPPathRateKey
}

func metricsMiddleware(m *metrics.Metrics) mw.Middleware {
	if m == nil {
		return nil
	}
	return m.Middleware()
}
