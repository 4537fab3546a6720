// Package health expone liveness y readiness.
package health

import (
	"context"
	"net/http"
	"time"

	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	"github.com/dropDatabas3/hellopos/internal/http/helpers"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

// Check es una dependencia a verificar en /readyz (store, cache).
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Controller struct {
	checks  []Check
	version string
	timeout time.Duration
}

func NewController(version string, checks ...Check) *Controller {
	return &Controller{checks: checks, version: version, timeout: 2 * time.Second}
}

type response struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Live maneja GET /healthz.
func (c *Controller) Live(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, response{Status: "ok", Version: c.version})
}

// Ready maneja GET /readyz.
func (c *Controller) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	out := response{Status: "ok", Version: c.version, Checks: map[string]string{}}
	for _, ch := range c.checks {
		if err := ch.Ping(ctx); err != nil {
			logger.From(ctx).Warn("readiness check failed", logger.Component(ch.Name), logger.Err(err))
			out.Status = "degraded"
			out.Checks[ch.Name] = "fail"
			continue
		}
		out.Checks[ch.Name] = "ok"
	}
	if out.Status != "ok" {
		httperrors.WriteError(w, r, httperrors.ErrServiceUnavailable.WithDetail("dependencies not ready"))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}
