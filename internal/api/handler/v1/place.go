package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/request"
	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/response"
	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/service"
)

type PlaceService interface {
	Submit(ctx context.Context, user domain.User, place domain.Place) (domain.Place, error)
	Get(ctx context.Context, viewer domain.User, id uint) (domain.PlaceDetail, error)
	Update(ctx context.Context, actor domain.User, id uint, changes domain.Place) (domain.Place, error)
	List(ctx context.Context, filter domain.PlaceFilter) (domain.PlacePage, error)
	Trending(ctx context.Context) ([]domain.Place, error)
}

type ProximityService interface {
	FindNearby(ctx context.Context, caller domain.User, lat, lng, radiusKm float64) ([]domain.NearbyPlace, error)
}

type PlaceHandler struct {
	svc       PlaceService
	proximity ProximityService
	uSvc      UserService
}

func NewPlaceHandler(svc PlaceService, proximity ProximityService, uSvc UserService) *PlaceHandler {
	return &PlaceHandler{
		svc:       svc,
		proximity: proximity,
		uSvc:      uSvc,
	}
}

// HandleListPlaces godoc
// @Summary      List approved places
// @Description  Newest first, 12 per page. q searches name, description and legends case-insensitively.
// @Tags         places
// @Produce      json
// @Param        q           query     string  false  "Search text"
// @Param        category    query     string  false  "Category"
// @Param        difficulty  query     string  false  "Difficulty"
// @Param        page        query     int     false  "Page (default 1)"
// @Success      200         {object}  domain.PlacePage
// @Failure      500         {object}  response.Err
// @Router       /places [get]
func (h *PlaceHandler) HandleListPlaces(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	result, err := h.svc.List(ctx.Request.Context(), domain.PlaceFilter{
		Query:      ctx.Query("q"),
		Category:   ctx.Query("category"),
		Difficulty: ctx.Query("difficulty"),
		Page:       page,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleListPlaces -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleTrendingPlaces godoc
// @Summary      Most visited approved places
// @Tags         places
// @Produce      json
// @Success      200  {array}   domain.Place
// @Failure      500  {object}  response.Err
// @Router       /places/trending [get]
func (h *PlaceHandler) HandleTrendingPlaces(ctx *gin.Context) {
	places, err := h.svc.Trending(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleTrendingPlaces -> h.svc.Trending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, places)
}

// HandleNearbyPlaces godoc
// @Summary      Approved places around a point
// @Description  Sorted by distance. Authenticated callers may receive a nearby_place notification.
// @Tags         places
// @Produce      json
// @Param        lat     query     number  true   "Latitude"
// @Param        lng     query     number  true   "Longitude"
// @Param        radius  query     number  false  "Radius in km"
// @Success      200     {object}  response.NearbyResponse
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /places/nearby [get]
func (h *PlaceHandler) HandleNearbyPlaces(ctx *gin.Context) {
	caller, respErr := getViewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	lat, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid lat: %q", ctx.Query("lat"))))
		return
	}
	lng, err := strconv.ParseFloat(ctx.Query("lng"), 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid lng: %q", ctx.Query("lng"))))
		return
	}
	var radius float64
	if raw := ctx.Query("radius"); raw != "" {
		if radius, err = strconv.ParseFloat(raw, 64); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid radius: %q", raw)))
			return
		}
	}

	places, err := h.proximity.FindNearby(ctx.Request.Context(), caller, lat, lng, radius)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) || errors.Is(err, service.ErrInvalidRadius) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleNearbyPlaces -> h.proximity.FindNearby -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NearbyResponse{Places: places, Count: len(places)})
}

// HandleGetPlace godoc
// @Summary      Get a place
// @Description  Pending and rejected places are only visible to their creator and to staff.
// @Tags         places
// @Produce      json
// @Param        placeID  path      int  true  "Place ID"
// @Success      200      {object}  domain.PlaceDetail
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID} [get]
func (h *PlaceHandler) HandleGetPlace(ctx *gin.Context) {
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

	detail, err := h.svc.Get(ctx.Request.Context(), viewer, placeID)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPlace -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleSubmitPlace godoc
// @Summary      Submit a place for review
// @Tags         places
// @Accept       json
// @Produce      json
// @Param        request  body      request.PlaceRequest  true  "Place"
// @Success      201      {object}  domain.Place
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places [post]
// @Security     BearerAuth
func (h *PlaceHandler) HandleSubmitPlace(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	place, err := h.svc.Submit(ctx.Request.Context(), user, req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitPlace -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, place)
}

// HandleUpdatePlace godoc
// @Summary      Edit a place
// @Tags         places
// @Accept       json
// @Produce      json
// @Param        placeID  path      int                   true  "Place ID"
// @Param        request  body      request.PlaceRequest  true  "Place"
// @Success      200      {object}  domain.Place
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /places/{placeID} [put]
// @Security     BearerAuth
func (h *PlaceHandler) HandleUpdatePlace(ctx *gin.Context) {
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

	var req request.PlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	place, err := h.svc.Update(ctx.Request.Context(), user, placeID, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleUpdatePlace -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, place)
}
