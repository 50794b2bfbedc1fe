package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payontime/backend/internal/application/usecase/settings"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/integration/entrypoint/dto"
	"github.com/payontime/backend/internal/integration/entrypoint/middleware"
)

// SettingsController handles notification settings endpoints.
type SettingsController struct {
	getUseCase    *settings.GetSettingsUseCase
	updateUseCase *settings.UpdateSettingsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), settings.GetSettingsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodeSettingsStoreFailed))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output))
}

// Update handles PUT /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	email, _ := middleware.GetUserEmailFromContext(ctx)

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPlanTier),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), settings.UpdateSettingsInput{
		UserID:                userID,
		Email:                 email,
		Timezone:              req.Timezone,
		EmailEnabled:          req.EmailEnabled,
		PushEnabled:           req.PushEnabled,
		NotificationCopyEmail: req.NotificationCopyEmail,
		PlanTier:              req.PlanTier,
		DisplayName:           req.DisplayName,
	})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodeSettingsStoreFailed))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output))
}
