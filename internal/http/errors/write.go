package errors

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

// TimestampLayout es yyyy-MM-dd HH:mm:ss.
const TimestampLayout = "2006-01-02 15:04:05"

// Body es la forma fija de toda respuesta de error.
type Body struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// Responder escribe errores. Es inmutable; se comparte entre goroutines.
type Responder struct {
	// AuthzStatus reemplaza el status de ErrInsufficientAuthority (401 o 403).
	AuthzStatus int
	Now         func() time.Time
}

var defaultResponder atomic.Pointer[Responder]

func init() {
	defaultResponder.Store(&Responder{AuthzStatus: http.StatusUnauthorized, Now: time.Now})
}

// SetDefault instala r como responder de WriteError. Se llama al arrancar.
func SetDefault(r *Responder) {
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.AuthzStatus != http.StatusForbidden {
		r.AuthzStatus = http.StatusUnauthorized
	}
	defaultResponder.Store(r)
}

// Default devuelve el responder instalado.
func Default() *Responder { return defaultResponder.Load() }

// WriteError escribe err con el responder por defecto.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	Default().Write(w, r, err)
}

// Body arma el cuerpo sin escribirlo.
func (rs *Responder) Body(ae *AppError, path string) Body {
	status, label := rs.statusFor(ae)
	return Body{
		Timestamp: rs.Now().Format(TimestampLayout),
		Status:    status,
		Error:     label,
		Message:   ae.PublicMessage(),
		Path:      path,
	}
}

func (rs *Responder) statusFor(ae *AppError) (int, string) {
	if ae.Code == ErrInsufficientAuthority.Code && rs.AuthzStatus == http.StatusForbidden {
		return http.StatusForbidden, "Forbidden"
	}
	return ae.HTTPStatus, ae.Label
}

// Write serializa err. Los 5xx se loguean con la causa; el cliente no la ve.
func (rs *Responder) Write(w http.ResponseWriter, r *http.Request, err error) {
	ae := FromError(err)
	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	body := rs.Body(ae, path)

	if body.Status >= 500 && r != nil {
		logger.From(r.Context()).Error("request failed",
			logger.String("code", ae.Code),
			logger.Status(body.Status),
			logger.Err(ae.Err),
		)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(body.Status)
	_ = json.NewEncoder(w).Encode(body)
}
