package httpx

import (
	"net/http"

	apperrors "github.com/journalsoc/journal-api/internal/errors"
)

// RenderAppError maps a service-layer error onto the wire: status code and a
// stable machine-readable error code. Unknown errors render as 500 without
// leaking internals beyond the error message.
func RenderAppError(w http.ResponseWriter, err error) {
	code, errCode := statusForError(err)
	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: err})
}

func statusForError(err error) (int, string) {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest, "validation_failed"
	case apperrors.IsUnauthorized(err):
		return http.StatusForbidden, "forbidden"
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case apperrors.IsConflict(err):
		return http.StatusConflict, "conflict"
	case apperrors.IsUnavailable(err):
		return http.StatusServiceUnavailable, "collaborator_unavailable"
	case apperrors.IsTimeout(err):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
