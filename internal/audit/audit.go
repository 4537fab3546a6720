// Package audit registra eventos de seguridad (tokens emitidos, credenciales
// rechazadas, acciones denegadas) en un logger "audit" y los reenvía a las
// métricas.
package audit

import (
	"go.uber.org/zap"

	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

// Sink recibe los mismos eventos (normalmente *metrics.Metrics).
type Sink interface {
	TokenIssued(flow string)
	AuthFailure(reason string)
	AuthzDenied(action string)
}

// Observer implementa los observers de services y middlewares.
type Observer struct {
	log  *zap.Logger
	next Sink
}

// New usa el logger global. next puede ser nil.
func New(next Sink) *Observer {
	return NewWith(logger.Named("audit"), next)
}

func NewWith(l *zap.Logger, next Sink) *Observer {
	return &Observer{log: l, next: next}
}

func (o *Observer) TokenIssued(flow string) {
	o.log.Info("token issued", logger.String("event", "token_issued"), logger.String("flow", flow))
	if o.next != nil {
		o.next.TokenIssued(flow)
	}
}

func (o *Observer) AuthFailure(reason string) {
	o.log.Info("credential rejected", logger.String("event", "auth_failure"), logger.Reason(reason))
	if o.next != nil {
		o.next.AuthFailure(reason)
	}
}

func (o *Observer) AuthzDenied(action string) {
	o.log.Warn("action denied", logger.String("event", "authz_denied"), logger.Action(action))
	if o.next != nil {
		o.next.AuthzDenied(action)
	}
}
