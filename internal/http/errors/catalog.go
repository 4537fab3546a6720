package errors

import "net/http"

// ---- 400 ----

var (
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Label:      "Bad Request",
		Message:    "The request is malformed or missing parameters",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Label:      "Bad Request",
		Message:    "Request body is not valid JSON",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrValidation = &AppError{
		Code:       "VALIDATION_ERROR",
		Label:      "Validation Error",
		Message:    "Request validation failed",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrRestrictedRole = &AppError{
		Code:       "RESTRICTED_ROLE",
		Label:      "User Error",
		Message:    "Role admin is not allowed!",
		HTTPStatus: http.StatusBadRequest,
	}
)

// ---- 401 ----
// Mismo Label para todas las fallas de credencial; el Message dice cuál fue.

var (
	ErrTokenMissing = &AppError{
		Code:       "TOKEN_MISSING",
		Label:      "Unauthorized",
		Message:    "Full authentication is required to access this resource",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenExpired = &AppError{
		Code:       "TOKEN_EXPIRED",
		Label:      "Unauthorized",
		Message:    "JWT token expired",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenInvalid = &AppError{
		Code:       "TOKEN_INVALID",
		Label:      "Unauthorized",
		Message:    "Invalid JWT token",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Label:      "Authentication Error",
		Message:    "Invalid Password!",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrInsufficientAuthority sale con 401 salvo que el Responder se configure con 403.
	ErrInsufficientAuthority = &AppError{
		Code:       "INSUFFICIENT_AUTHORITY",
		Label:      "Unauthorized",
		Message:    "You don't have permission to perform this action",
		HTTPStatus: http.StatusUnauthorized,
	}
)

// ---- 404 / 405 / 409 ----

var (
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Label:      "Not Found",
		Message:    "Resource not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Label:      "User Not Found",
		Message:    "User not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrRouteNotFound = &AppError{
		Code:       "ROUTE_NOT_FOUND",
		Label:      "Not Found",
		Message:    "No handler for this route",
		HTTPStatus: http.StatusNotFound,
	}

	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Label:      "Method Not Allowed",
		Message:    "HTTP method not allowed for this route",
		HTTPStatus: http.StatusMethodNotAllowed,
	}

	ErrConflict = &AppError{
		Code:       "CONFLICT",
		Label:      "Conflict",
		Message:    "Resource already exists",
		HTTPStatus: http.StatusConflict,
	}

	ErrEmailAlreadyInUse = &AppError{
		Code:       "EMAIL_IN_USE",
		Label:      "Conflict",
		Message:    "Email id already register!",
		HTTPStatus: http.StatusConflict,
	}
)

// ---- 429 / 5xx ----

var (
	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Label:      "Too Many Requests",
		Message:    "Too many requests, try again later",
		HTTPStatus: http.StatusTooManyRequests,
	}

	ErrInternalServerError = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Label:      "Internal Server Error",
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrServiceUnavailable = &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Label:      "Service Unavailable",
		Message:    "Service temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
	}
)
