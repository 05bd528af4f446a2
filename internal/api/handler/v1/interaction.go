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

type InteractionService interface {
	ToggleFavorite(ctx context.Context, user domain.User, placeID uint) (string, error)
	ListFavorites(ctx context.Context, user domain.User) ([]domain.Favorite, error)
	VotePlace(ctx context.Context, user domain.User, placeID uint, voteType domain.VoteType) (domain.VoteResult, error)
	VoteComment(ctx context.Context, user domain.User, commentID uint, voteType domain.VoteType) (domain.CommentVoteResult, error)
}

type InteractionHandler struct {
	svc  InteractionService
	uSvc UserService
}

func NewInteractionHandler(svc InteractionService, uSvc UserService) *InteractionHandler {
	return &InteractionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleToggleFavorite godoc
// @Summary      Favorite or unfavorite a place
// @Tags         interactions
// @Produce      json
// @Param        placeID  path      int  true  "Place ID"
// @Success      200      {object}  response.FavoriteResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID}/favorite [post]
// @Security     BearerAuth
func (h *InteractionHandler) HandleToggleFavorite(ctx *gin.Context) {
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

	action, err := h.svc.ToggleFavorite(ctx.Request.Context(), user, placeID)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleToggleFavorite -> h.svc.ToggleFavorite -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.FavoriteResponse{Success: true, Action: action})
}

// HandleListFavorites godoc
// @Summary      The caller's favorite places
// @Tags         interactions
// @Produce      json
// @Success      200  {array}   domain.Favorite
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /favorites [get]
// @Security     BearerAuth
func (h *InteractionHandler) HandleListFavorites(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	favorites, err := h.svc.ListFavorites(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleListFavorites -> h.svc.ListFavorites -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, favorites)
}

// HandleVotePlace godoc
// @Summary      Vote on a place
// @Description  Voting the same way twice removes the vote; voting the other way flips it.
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        placeID  path      int                  true  "Place ID"
// @Param        request  body      request.VoteRequest  true  "up or down"
// @Success      200      {object}  response.VoteResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID}/vote [post]
// @Security     BearerAuth
func (h *InteractionHandler) HandleVotePlace(ctx *gin.Context) {
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

	var req request.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.VotePlace(ctx.Request.Context(), user, placeID, domain.VoteType(req.VoteType))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
		case errors.Is(err, service.ErrInvalidVoteType):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleVotePlace -> h.svc.VotePlace -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.VoteResponse{Success: true, VoteResult: result})
}

// HandleVoteComment godoc
// @Summary      Vote on a comment
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        commentID  path      int                  true  "Comment ID"
// @Param        request    body      request.VoteRequest  true  "up or down"
// @Success      200        {object}  response.CommentVoteResponse
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /comments/{commentID}/vote [post]
// @Security     BearerAuth
func (h *InteractionHandler) HandleVoteComment(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	commentID, respErr := parseID(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.VoteComment(ctx.Request.Context(), user, commentID, domain.VoteType(req.VoteType))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("comment", "ID", commentID))
		case errors.Is(err, service.ErrInvalidVoteType):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleVoteComment -> h.svc.VoteComment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.CommentVoteResponse{Success: true, CommentVoteResult: result})
}
