package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/integration/entrypoint/dto"
)

// handleError maps coded domain errors to HTTP responses. Uncoded errors become 500 with the
// fallback code of the calling area.
func handleError(ctx *gin.Context, err error, fallback string) {
	var payErr *domainerror.PaymentError
	var setErr *domainerror.SettingsError
	var remErr *domainerror.ReminderError

	switch {
	case errors.As(err, &payErr):
		ctx.JSON(getStatusCodeForPaymentError(payErr.Code), dto.ErrorResponse{
			Error: payErr.Message,
			Code:  string(payErr.Code),
		})
	case errors.As(err, &setErr):
		ctx.JSON(getStatusCodeForSettingsError(setErr.Code), dto.ErrorResponse{
			Error: setErr.Message,
			Code:  string(setErr.Code),
		})
	case errors.As(err, &remErr):
		ctx.JSON(getStatusCodeForReminderError(remErr.Code), dto.ErrorResponse{
			Error:   remErr.Message,
			Code:    string(remErr.Code),
			Details: remErr.Error(),
		})
	default:
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  fallback,
		})
	}
}

// getStatusCodeForPaymentError maps payment error codes to HTTP status codes.
func getStatusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodePaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingPaymentFields,
		domainerror.ErrCodeInvalidScheduleMode,
		domainerror.ErrCodeMissingDueDate,
		domainerror.ErrCodeInvalidDayOfMonth,
		domainerror.ErrCodeInvalidInterval,
		domainerror.ErrCodeInvalidRemindOffsets,
		domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeInvalidMonthOfYear,
		domainerror.ErrCodeInvalidCurrency,
		domainerror.ErrCodeInvalidProviderAddress:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForSettingsError maps settings error codes to HTTP status codes.
func getStatusCodeForSettingsError(code domainerror.SettingsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTimezone,
		domainerror.ErrCodeInvalidCopyEmail,
		domainerror.ErrCodeInvalidPlanTier,
		domainerror.ErrCodeInvalidDisplayName:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForReminderError maps reminder error codes to HTTP status codes.
func getStatusCodeForReminderError(code domainerror.ReminderErrorCode) int {
	switch code {
	case domainerror.ErrCodeReminderBatchLoad:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
