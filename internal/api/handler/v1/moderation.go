package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/request"
	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/response"
	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/service"
)

type ModerationService interface {
	UpdateStatus(ctx context.Context, staff domain.User, placeID uint, status domain.PlaceStatus) (domain.Place, error)
	ListPending(ctx context.Context, staff domain.User) ([]domain.Place, error)
	Analytics(ctx context.Context, staff domain.User) (domain.Analytics, error)
}

type ModerationHandler struct {
	svc  ModerationService
	uSvc UserService
}

func NewModerationHandler(svc ModerationService, uSvc UserService) *ModerationHandler {
	return &ModerationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleUpdateStatus godoc
// @Summary      Approve or reject a pending place
// @Description  Staff only. Notifies the creator; approval also awards the creator points.
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        placeID  path      int                          true  "Place ID"
// @Param        request  body      request.UpdateStatusRequest  true  "approved or rejected"
// @Success      200      {object}  response.StatusResponse
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID}/status [patch]
// @Security     BearerAuth
func (h *ModerationHandler) HandleUpdateStatus(ctx *gin.Context) {
	staff, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	placeID, respErr := parseID(ctx, "placeID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	place, err := h.svc.UpdateStatus(ctx.Request.Context(), staff, placeID, domain.PlaceStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrPlaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.StatusResponse{Success: true, Place: place})
}

// HandleListPending godoc
// @Summary      Review queue
// @Tags         moderation
// @Produce      json
// @Success      200  {array}   domain.Place
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /moderation/places [get]
// @Security     BearerAuth
func (h *ModerationHandler) HandleListPending(ctx *gin.Context) {
	staff, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	places, err := h.svc.ListPending(ctx.Request.Context(), staff)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListPending -> h.svc.ListPending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, places)
}

// HandleAnalytics godoc
// @Summary      Site-wide counters for staff
// @Tags         moderation
// @Produce      json
// @Success      200  {object}  domain.Analytics
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /analytics [get]
// @Security     BearerAuth
func (h *ModerationHandler) HandleAnalytics(ctx *gin.Context) {
	staff, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	analytics, err := h.svc.Analytics(ctx.Request.Context(), staff)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleAnalytics -> h.svc.Analytics -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, analytics)
}
