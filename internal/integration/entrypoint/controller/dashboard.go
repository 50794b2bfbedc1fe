package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payontime/backend/internal/application/usecase/dashboard"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/valueobject"
	"github.com/payontime/backend/internal/integration/entrypoint/dto"
	"github.com/payontime/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getDashboardUseCase *dashboard.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getDashboardUseCase *dashboard.GetDashboardUseCase) *DashboardController {
	return &DashboardController{
		getDashboardUseCase: getDashboardUseCase,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	input := dashboard.GetDashboardInput{UserID: userID}
	if raw := ctx.Query("date"); raw != "" {
		date, err := valueobject.ParseDate(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		input.Date = &date
	}

	output, err := c.getDashboardUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodeDashboardInternalError))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}
