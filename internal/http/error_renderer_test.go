package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/journalsoc/journal-api/internal/errors"
)

func TestRenderAppError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:        "validation",
			err:         apperrors.Validation("title is required"),
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "validation_failed",
		},
		{
			name:        "unauthorized",
			err:         apperrors.Unauthorized("admin role required"),
			wantStatus:  http.StatusForbidden,
			wantErrCode: "forbidden",
		},
		{
			name:        "not found",
			err:         apperrors.NotFoundf("post %q not found", "p1"),
			wantStatus:  http.StatusNotFound,
			wantErrCode: "not_found",
		},
		{
			name:        "unavailable",
			err:         apperrors.Unavailable("database unavailable", nil),
			wantStatus:  http.StatusServiceUnavailable,
			wantErrCode: "collaborator_unavailable",
		},
		{
			name:        "wrapped not found",
			err:         fmt.Errorf("approve post: %w", apperrors.NotFoundf("post %q not found", "p1")),
			wantStatus:  http.StatusNotFound,
			wantErrCode: "not_found",
		},
		{
			name:        "unknown",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RenderAppError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantErrCode)
		})
	}
}
