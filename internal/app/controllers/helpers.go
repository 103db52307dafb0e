package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// parseIDParam parses a numeric path parameter. On failure it writes the 400
// response itself and returns ok=false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// authorizedPathUser checks that the :userId path segment names the
// authenticated caller. On mismatch it writes the 403 response itself.
func authorizedPathUser(ctx *gin.Context) (int64, bool) {
	pathUserID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return 0, false
	}

	callerID, ok := middleware.CurrentUserID(ctx)
	if !ok || callerID != pathUserID {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Path user does not match authenticated user")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return pathUserID, true
}

// queryInt64List collects a repeatable query parameter, also accepting
// comma-separated values. Unparseable entries are skipped.
func queryInt64List(ctx *gin.Context, name string) []int64 {
	var values []int64
	for _, raw := range ctx.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if id, err := strconv.ParseInt(part, 10, 64); err == nil {
				values = append(values, id)
			}
		}
	}
	return values
}

// queryTime parses an optional timestamp query parameter in the
// "2006-01-02 15:04:05" wire format.
func queryTime(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation(helpers.StatsTimeLayout, raw, time.UTC)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails("timestamp must use the format " + helpers.StatsTimeLayout)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &parsed, true
}

// queryBoolPtr parses an optional boolean query parameter
func queryBoolPtr(ctx *gin.Context, name string) *bool {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// bindingError writes the standard 400 response for a failed payload bind
func bindingError(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
		WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
