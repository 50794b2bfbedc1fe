// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/usecase/payment"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/valueobject"
	"github.com/payontime/backend/internal/integration/entrypoint/dto"
	"github.com/payontime/backend/internal/integration/entrypoint/middleware"
)

// PaymentController handles payment endpoints.
type PaymentController struct {
	createUseCase     *payment.CreatePaymentUseCase
	listUseCase       *payment.ListPaymentsUseCase
	getUseCase        *payment.GetPaymentUseCase
	updateUseCase     *payment.UpdatePaymentUseCase
	setActiveUseCase  *payment.SetPaymentActiveUseCase
	deleteUseCase     *payment.DeletePaymentUseCase
	previewUseCase    *payment.PreviewRemindersUseCase
	categoriesUseCase *payment.ListCategoriesUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	createUseCase *payment.CreatePaymentUseCase,
	listUseCase *payment.ListPaymentsUseCase,
	getUseCase *payment.GetPaymentUseCase,
	updateUseCase *payment.UpdatePaymentUseCase,
	setActiveUseCase *payment.SetPaymentActiveUseCase,
	deleteUseCase *payment.DeletePaymentUseCase,
	previewUseCase *payment.PreviewRemindersUseCase,
	categoriesUseCase *payment.ListCategoriesUseCase,
) *PaymentController {
	return &PaymentController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		setActiveUseCase:  setActiveUseCase,
		deleteUseCase:     deleteUseCase,
		previewUseCase:    previewUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// Create handles POST /payments requests.
func (c *PaymentController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	req, ok := bindPaymentRequest(ctx)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), payment.CreatePaymentInput{
		UserID: userID,
		Draft:  req.ToDraft(),
	})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodePaymentStoreFailed))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(output.Payment))
}

// List handles GET /payments requests.
func (c *PaymentController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), payment.ListPaymentsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodePaymentStoreFailed))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(output.Payments))
}

// Get handles GET /payments/:id requests.
func (c *PaymentController) Get(ctx *gin.Context) {
	userID, paymentID, ok := c.identify(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), payment.GetPaymentInput{
		PaymentID: paymentID,
		UserID:    userID,
	})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodePaymentStoreFailed))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(output.Payment))
}

// Update handles PATCH /payments/:id requests.
func (c *PaymentController) Update(ctx *gin.Context) {
	userID, paymentID, ok := c.identify(ctx)
	if !ok {
		return
	}

	req, ok := bindPaymentRequest(ctx)
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), payment.UpdatePaymentInput{
		PaymentID: paymentID,
		UserID:    userID,
		Draft:     req.ToDraft(),
	})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodePaymentStoreFailed))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(output.Payment))
}

// SetActive handles PATCH /payments/:id/active requests.
func (c *PaymentController) SetActive(ctx *gin.Context) {
	userID, paymentID, ok := c.identify(ctx)
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	output, err := c.setActiveUseCase.Execute(ctx.Request.Context(), payment.SetPaymentActiveInput{
		PaymentID: paymentID,
		UserID:    userID,
		IsActive:  *req.IsActive,
	})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodePaymentStoreFailed))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(output.Payment))
}

// Delete handles DELETE /payments/:id requests.
func (c *PaymentController) Delete(ctx *gin.Context) {
	userID, paymentID, ok := c.identify(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), payment.DeletePaymentInput{
		PaymentID: paymentID,
		UserID:    userID,
	})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodePaymentStoreFailed))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// PreviewReminders handles POST /payments/reminder-preview requests.
func (c *PaymentController) PreviewReminders(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	req, ok := bindPaymentRequest(ctx)
	if !ok {
		return
	}

	var date *valueobject.Date
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := valueobject.ParseDate(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		date = &parsed
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), payment.PreviewRemindersInput{
		UserID: userID,
		Draft:  req.ToDraft(),
		Date:   date,
	})
	if err != nil {
		handleError(ctx, err, string(domainerror.ErrCodePaymentStoreFailed))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderPreviewResponse(output))
}

// Categories handles GET /payments/categories requests.
func (c *PaymentController) Categories(ctx *gin.Context) {
	output := c.categoriesUseCase.Execute()
	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

func (c *PaymentController) identify(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return uuid.Nil, uuid.Nil, false
	}

	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payment ID format",
			Code:  string(domainerror.ErrCodePaymentNotFound),
		})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, paymentID, true
}

func bindPaymentRequest(ctx *gin.Context) (dto.PaymentRequest, bool) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return req, false
	}
	return req, true
}
