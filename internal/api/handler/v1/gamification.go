package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/request"
	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/response"
	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/service"
)

type GamificationService interface {
	ListBadges(ctx context.Context, viewer domain.User) ([]domain.Badge, error)
	AwardBadge(ctx context.Context, staff domain.User, userID, badgeID uint) (bool, error)
	CreateBadge(ctx context.Context, staff domain.User, badge domain.Badge) (domain.Badge, error)
	CreateChallenge(ctx context.Context, staff domain.User, challenge domain.Challenge) (domain.Challenge, error)
	ListChallenges(ctx context.Context, now time.Time) (domain.ChallengeBoard, error)
}

type GamificationHandler struct {
	svc  GamificationService
	uSvc UserService
}

func NewGamificationHandler(svc GamificationService, uSvc UserService) *GamificationHandler {
	return &GamificationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListBadges godoc
// @Summary      Active badges
// @Description  earned is set for badges the authenticated caller holds.
// @Tags         gamification
// @Produce      json
// @Success      200  {array}   domain.Badge
// @Failure      500  {object}  response.Err
// @Router       /badges [get]
func (h *GamificationHandler) HandleListBadges(ctx *gin.Context) {
	viewer, respErr := getViewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	badges, err := h.svc.ListBadges(ctx.Request.Context(), viewer)
	if err != nil {
		err = fmt.Errorf("v1.HandleListBadges -> h.svc.ListBadges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, badges)
}

// HandleListChallenges godoc
// @Summary      Running challenges and the most recent finished ones
// @Tags         gamification
// @Produce      json
// @Success      200  {object}  domain.ChallengeBoard
// @Failure      500  {object}  response.Err
// @Router       /challenges [get]
func (h *GamificationHandler) HandleListChallenges(ctx *gin.Context) {
	board, err := h.svc.ListChallenges(ctx.Request.Context(), time.Now())
	if err != nil {
		err = fmt.Errorf("v1.HandleListChallenges -> h.svc.ListChallenges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// HandleAwardBadge godoc
// @Summary      Grant a badge to a user
// @Description  Staff only. Granting a badge twice is a no-op reported as awarded=false.
// @Tags         gamification
// @Accept       json
// @Produce      json
// @Param        userID   path      int                        true  "User ID"
// @Param        request  body      request.AwardBadgeRequest  true  "Badge"
// @Success      200      {object}  response.AwardBadgeResponse
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID}/badges [post]
// @Security     BearerAuth
func (h *GamificationHandler) HandleAwardBadge(ctx *gin.Context) {
	staff, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	userID, respErr := parseID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AwardBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	awarded, err := h.svc.AwardBadge(ctx.Request.Context(), staff, userID, req.BadgeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
		case errors.Is(err, service.ErrBadgeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("badge", "ID", req.BadgeID))
		default:
			err = fmt.Errorf("v1.HandleAwardBadge -> h.svc.AwardBadge -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.AwardBadgeResponse{Success: true, Awarded: awarded})
}

func (h *GamificationHandler) HandleCreateBadge(ctx *gin.Context) {
	staff, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	badge, err := h.svc.CreateBadge(ctx.Request.Context(), staff, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateBadge -> h.svc.CreateBadge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, badge)
}

func (h *GamificationHandler) HandleCreateChallenge(ctx *gin.Context) {
	staff, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	challenge, err := h.svc.CreateChallenge(ctx.Request.Context(), staff, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateChallenge -> h.svc.CreateChallenge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, challenge)
}
