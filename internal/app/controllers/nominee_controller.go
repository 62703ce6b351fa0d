package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/app/services"
	"github.com/oguzt/trainhub/internal/middleware"
	"github.com/oguzt/trainhub/internal/pkg/email"
)

// NomineeController handles nominee management and the public accept/reject
// endpoints reached from invitation emails
type NomineeController struct {
	nomineeService *services.NomineeService
	links          email.LinkBuilder
}

// NewNomineeController creates a new NomineeController
func NewNomineeController(nomineeService *services.NomineeService, links email.LinkBuilder) *NomineeController {
	return &NomineeController{
		nomineeService: nomineeService,
		links:          links,
	}
}

// ListNominees returns all nominees for an event
func (c *NomineeController) ListNominees(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	nominees, err := c.nomineeService.ListByEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nominees,
		Timestamp: time.Now(),
	})
}

// InviteNominees creates nominees for an event and sends invitation emails.
// The body is either one nominee object or an array of them; a single object
// is treated as a batch of one. The status code reflects the batch outcome:
// 201 all created, 207 partial, 400 none.
func (c *NomineeController) InviteNominees(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	entries, ok := c.bindInviteBody(ctx)
	if !ok {
		return
	}

	result, err := c.nomineeService.InviteBatch(ctx, eventID, entries)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	switch {
	case len(result.Created) == 0:
		status = http.StatusBadRequest
	case len(result.Errors) > 0:
		status = http.StatusMultiStatus
	}

	ctx.JSON(status, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetNominee returns one nominee with any embedded feedback
func (c *NomineeController) GetNominee(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	nominee, err := c.nomineeService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nominee,
		Timestamp: time.Now(),
	})
}

// UpdateNominee updates a nominee's descriptive fields
func (c *NomineeController) UpdateNominee(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.NomineeUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid nominee data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	nominee, err := c.nomineeService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nominee,
		Timestamp: time.Now(),
	})
}

// DeleteNominee removes a nominee from an event
func (c *NomineeController) DeleteNominee(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.nomineeService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Nominee deleted"},
		Timestamp: time.Now(),
	})
}

// AcceptInvitation records an accept click from the invitation email and
// redirects the browser to the frontend response page
func (c *NomineeController) AcceptInvitation(ctx *gin.Context) {
	c.respond(ctx, true)
}

// RejectInvitation records a reject click from the invitation email and
// redirects the browser to the frontend response page
func (c *NomineeController) RejectInvitation(ctx *gin.Context) {
	c.respond(ctx, false)
}

func (c *NomineeController) respond(ctx *gin.Context, accept bool) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.nomineeService.Respond(ctx, id, accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, c.links.ResponseRedirectURL(result.Status, result.NomineeName, result.EventTitle))
}

// MarkAttended marks an accepted nominee as attended
func (c *NomineeController) MarkAttended(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	nominee, err := c.nomineeService.MarkAttended(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nominee,
		Timestamp: time.Now(),
	})
}

// SendFeedbackRequests emails the feedback form link to every attended
// nominee of an event
func (c *NomineeController) SendFeedbackRequests(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	sent, err := c.nomineeService.SendFeedbackRequests(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"sent": sent},
		Timestamp: time.Now(),
	})
}

// bindInviteBody reads the invite payload, accepting a single object or an
// array. Sniffs the first non-space byte instead of binding twice.
func (c *NomineeController) bindInviteBody(ctx *gin.Context) ([]dto.NomineeCreateRequest, bool) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unable to read request body")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request body is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	var entries []dto.NomineeCreateRequest
	if trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &entries)
	} else {
		var single dto.NomineeCreateRequest
		if err = json.Unmarshal(trimmed, &single); err == nil {
			entries = []dto.NomineeCreateRequest{single}
		}
	}
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid nominee data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	return entries, true
}
