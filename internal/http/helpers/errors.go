package helpers

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
)

// WriteServiceError traduce los errores comunes de los services. Los errores
// propios de cada dominio se mapean en su controller antes de llegar acá.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *common.NotFoundError

	switch ve, isValidation := common.AsValidation(err); {
	case isValidation:
		httperrors.WriteError(w, r, httperrors.ErrValidation.WithDetail(ve.Error()).WithCause(err))

	case errors.Is(err, common.ErrNotAuthenticated):
		httperrors.WriteError(w, r, httperrors.ErrTokenMissing)

	case errors.Is(err, common.ErrUnknownIdentity):
		httperrors.WriteError(w, r, httperrors.ErrUserNotFound.WithCause(err))

	case errors.Is(err, authz.ErrInsufficientAuthority):
		httperrors.WriteError(w, r, httperrors.ErrInsufficientAuthority.WithCause(err))

	case errors.As(err, &nf):
		httperrors.WriteError(w, r, httperrors.ErrNotFound.WithDetail(nf.Error()))

	case repository.IsNotFound(err):
		httperrors.WriteError(w, r, httperrors.ErrNotFound.WithCause(err))

	case repository.IsConflict(err):
		httperrors.WriteError(w, r, httperrors.ErrConflict.WithCause(err))

	default:
		// 500; el writer loguea la causa.
		httperrors.WriteError(w, r, err)
	}
}
