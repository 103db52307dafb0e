package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"event not found", apperrors.ErrEventNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"forbidden", apperrors.NewForbiddenError("not the initiator"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"capacity exceeded", apperrors.NewCapacityExceededError("limit reached"), http.StatusConflict, dto.ErrorCodeCapacityExceeded},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"conflict", apperrors.NewConflictError("already published"), http.StatusConflict, dto.ErrorCodeConflict},
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"dependency failure", apperrors.NewDependencyError("stats down"), http.StatusBadGateway, dto.ErrorCodeExternalServiceError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest("GET", "/", nil)

			HandleAPIError(c, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}

			var response dto.ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if response.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", response.Error.Code, tt.wantCode)
			}
		})
	}
}
