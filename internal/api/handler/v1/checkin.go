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
	"github.com/ghostpin/ghostpin-api/internal/pkg/storage"
	"github.com/ghostpin/ghostpin-api/internal/service"
)

type CheckInService interface {
	CheckIn(ctx context.Context, user domain.User, placeID uint, req domain.CheckInRequest) (domain.CheckIn, error)
	ListMine(ctx context.Context, user domain.User) ([]domain.CheckIn, error)
	ListForPlace(ctx context.Context, viewer domain.User, placeID uint) ([]domain.CheckIn, error)
	Get(ctx context.Context, user domain.User, id uint) (domain.CheckIn, error)
	PresignProofUpload(ctx context.Context, user domain.User, fileName, contentType string) (storage.PresignedUpload, error)
}

type CheckInHandler struct {
	svc  CheckInService
	uSvc UserService
}

func NewCheckInHandler(svc CheckInService, uSvc UserService) *CheckInHandler {
	return &CheckInHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCheckIn godoc
// @Summary      Check in at an approved place
// @Description  A second check-in at the same place is not an error: the earlier check-in is returned with created=false.
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Param        placeID  path      int                     true  "Place ID"
// @Param        request  body      request.CheckInRequest  false "Check-in details"
// @Success      200      {object}  response.CheckInResponse
// @Success      201      {object}  response.CheckInResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID}/check-in [post]
// @Security     BearerAuth
func (h *CheckInHandler) HandleCheckIn(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	placeID, respErr := parseID(ctx, "placeID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CheckInRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	checkIn, err := h.svc.CheckIn(ctx.Request.Context(), user, placeID, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			ctx.JSON(http.StatusOK, response.CheckInResponse{
				Success: true,
				Created: false,
				Message: "You have already checked in at this place.",
				CheckIn: checkIn,
			})
		case errors.Is(err, service.ErrPlaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
		default:
			err = fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.CheckInResponse{
		Success: true,
		Created: true,
		Message: fmt.Sprintf("Checked in! You earned %d points.", checkIn.PointsAwarded),
		CheckIn: checkIn,
	})
}

// HandleListPlaceCheckIns godoc
// @Summary      Check-ins at a place
// @Tags         check-ins
// @Produce      json
// @Param        placeID  path      int  true  "Place ID"
// @Success      200      {array}   domain.CheckIn
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID}/check-ins [get]
func (h *CheckInHandler) HandleListPlaceCheckIns(ctx *gin.Context) {
	viewer, respErr := getViewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	placeID, respErr := parseID(ctx, "placeID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	checkIns, err := h.svc.ListForPlace(ctx.Request.Context(), viewer, placeID)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleListPlaceCheckIns -> h.svc.ListForPlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, checkIns)
}

// HandleListMyCheckIns godoc
// @Summary      The caller's check-ins
// @Tags         check-ins
// @Produce      json
// @Success      200  {array}   domain.CheckIn
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /check-ins [get]
// @Security     BearerAuth
func (h *CheckInHandler) HandleListMyCheckIns(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	checkIns, err := h.svc.ListMine(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyCheckIns -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, checkIns)
}

func (h *CheckInHandler) HandleGetCheckIn(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	checkInID, respErr := parseID(ctx, "checkInID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	checkIn, err := h.svc.Get(ctx.Request.Context(), user, checkInID)
	if err != nil {
		if errors.Is(err, service.ErrCheckInNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("check-in", "ID", checkInID))
			return
		}

		err = fmt.Errorf("v1.HandleGetCheckIn -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, checkIn)
}

// HandlePresignProof godoc
// @Summary      Presigned upload URL for a check-in photo
// @Description  The client PUTs the image to upload_url and then sends public_url as photo_proof_url.
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Param        request  body      request.PresignUploadRequest  true  "File"
// @Success      200      {object}  storage.PresignedUpload
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /uploads/check-in-proof [post]
// @Security     BearerAuth
func (h *CheckInHandler) HandlePresignProof(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PresignUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	upload, err := h.svc.PresignProofUpload(ctx.Request.Context(), user, req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedContentType) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandlePresignProof -> h.svc.PresignProofUpload -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, upload)
}
