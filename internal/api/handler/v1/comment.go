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

type CommentService interface {
	Add(ctx context.Context, user domain.User, comment domain.Comment) (domain.Comment, error)
	List(ctx context.Context, viewer domain.User, placeID uint) ([]domain.Comment, error)
}

type CommentHandler struct {
	svc  CommentService
	uSvc UserService
}

func NewCommentHandler(svc CommentService, uSvc UserService) *CommentHandler {
	return &CommentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListComments godoc
// @Summary      Threaded comments of a place
// @Tags         comments
// @Produce      json
// @Param        placeID  path      int  true  "Place ID"
// @Success      200      {array}   domain.Comment
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID}/comments [get]
func (h *CommentHandler) HandleListComments(ctx *gin.Context) {
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

	comments, err := h.svc.List(ctx.Request.Context(), viewer, placeID)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleListComments -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	ctx.JSON(http.StatusOK, comments)
}

// HandleAddComment godoc
// @Summary      Comment on a place or reply to a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        placeID  path      int                     true  "Place ID"
// @Param        request  body      request.CommentRequest  true  "Comment"
// @Success      201      {object}  domain.Comment
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID}/comments [post]
// @Security     BearerAuth
func (h *CommentHandler) HandleAddComment(ctx *gin.Context) {
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

	var req request.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	comment, err := h.svc.Add(ctx.Request.Context(), user, domain.Comment{
		PlaceID:   placeID,
		CheckInID: req.CheckInID,
		ParentID:  req.ParentID,
		Text:      req.Text,
		Rating:    req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
		case errors.Is(err, service.ErrCommentNotFound) && req.ParentID != nil:
			response.RenderErr(ctx, response.ErrNotFound("comment", "ID", *req.ParentID))
		case errors.Is(err, service.ErrCheckInNotFound) && req.CheckInID != nil:
			response.RenderErr(ctx, response.ErrNotFound("check-in", "ID", *req.CheckInID))
		case errors.Is(err, service.ErrInvalidParent),
			errors.Is(err, service.ErrReplyTooDeep),
			errors.Is(err, service.ErrInvalidRating):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleAddComment -> h.svc.Add -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}
