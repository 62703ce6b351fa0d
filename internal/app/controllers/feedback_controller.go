package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/app/services"
	"github.com/oguzt/trainhub/internal/middleware"
)

// FeedbackController handles the public feedback form endpoints and the
// admin-side listing and CSV export
type FeedbackController struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// GetFeedbackInfo returns the public form context for a nominee
func (c *FeedbackController) GetFeedbackInfo(ctx *gin.Context) {
	nomineeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	info, err := c.feedbackService.Info(ctx, nomineeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      info,
		Timestamp: time.Now(),
	})
}

// SubmitFeedback stores feedback from the public form. Returns 201 when a new
// record is created, 200 when an earlier submission is overwritten.
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	nomineeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.FeedbackSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feedback data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feedback, created, err := c.feedbackService.Submit(ctx, nomineeID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.APIResponse{
		Data:      feedback,
		Timestamp: time.Now(),
	})
}

// ListEventFeedback returns all feedback for one event with nominee info
func (c *FeedbackController) ListEventFeedback(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	items, err := c.feedbackService.ListByEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// ExportEventFeedback streams all feedback for one event as a CSV download
func (c *FeedbackController) ExportEventFeedback(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	filename, data, err := c.feedbackService.ExportCSV(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "text/csv", data)
}
