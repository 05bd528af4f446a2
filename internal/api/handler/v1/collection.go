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

type CollectionService interface {
	Create(ctx context.Context, user domain.User, collection domain.Collection) (domain.Collection, error)
	AddPlace(ctx context.Context, user domain.User, collectionID, placeID uint, order int, notes string) (domain.CollectionPlace, error)
	Get(ctx context.Context, viewer domain.User, id uint) (domain.CollectionDetail, error)
	ListPublic(ctx context.Context) ([]domain.Collection, error)
}

type CollectionHandler struct {
	svc  CollectionService
	uSvc UserService
}

func NewCollectionHandler(svc CollectionService, uSvc UserService) *CollectionHandler {
	return &CollectionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListCollections godoc
// @Summary      Public trails
// @Tags         collections
// @Produce      json
// @Success      200  {array}   domain.Collection
// @Failure      500  {object}  response.Err
// @Router       /collections [get]
func (h *CollectionHandler) HandleListCollections(ctx *gin.Context) {
	collections, err := h.svc.ListPublic(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCollections -> h.svc.ListPublic -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, collections)
}

// HandleCreateCollection godoc
// @Summary      Create a trail
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCollectionRequest  true  "Collection"
// @Success      201      {object}  domain.Collection
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /collections [post]
// @Security     BearerAuth
func (h *CollectionHandler) HandleCreateCollection(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateCollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	collection, err := h.svc.Create(ctx.Request.Context(), user, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidDifficulty) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCollection -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, collection)
}

// HandleGetCollection godoc
// @Summary      A trail with its places in order
// @Description  Includes the total walking distance between consecutive places and the encoded polyline.
// @Tags         collections
// @Produce      json
// @Param        collectionID  path      int  true  "Collection ID"
// @Success      200           {object}  domain.CollectionDetail
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /collections/{collectionID} [get]
func (h *CollectionHandler) HandleGetCollection(ctx *gin.Context) {
	viewer, respErr := getViewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	collectionID, respErr := parseID(ctx, "collectionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	detail, err := h.svc.Get(ctx.Request.Context(), viewer, collectionID)
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("collection", "ID", collectionID))
			return
		}

		err = fmt.Errorf("v1.HandleGetCollection -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleAddCollectionPlace godoc
// @Summary      Add a place to one of the caller's trails
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        collectionID  path      int                                true  "Collection ID"
// @Param        request       body      request.AddCollectionPlaceRequest  true  "Entry"
// @Success      201           {object}  domain.CollectionPlace
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /collections/{collectionID}/places [post]
// @Security     BearerAuth
func (h *CollectionHandler) HandleAddCollectionPlace(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	collectionID, respErr := parseID(ctx, "collectionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddCollectionPlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, err := h.svc.AddPlace(ctx.Request.Context(), user, collectionID, req.PlaceID, *req.Order, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCollectionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("collection", "ID", collectionID))
		case errors.Is(err, service.ErrPlaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", req.PlaceID))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrOrderTaken), errors.Is(err, service.ErrPlaceInCollection):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrInvalidOrder):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleAddCollectionPlace -> h.svc.AddPlace -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}
