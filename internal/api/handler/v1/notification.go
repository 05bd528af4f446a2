package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/response"
	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/service"
)

type NotificationService interface {
	List(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
	ClearAll(ctx context.Context, userID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type NotificationHandler struct {
	svc  NotificationService
	uSvc UserService
}

func NewNotificationHandler(svc NotificationService, uSvc UserService) *NotificationHandler {
	return &NotificationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListNotifications godoc
// @Summary      The caller's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Success      200  {array}   domain.Notification
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) HandleListNotifications(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	notifications, err := h.svc.List(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListNotifications -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// HandleUnreadCount godoc
// @Summary      Number of unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.UnreadResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /notifications/unread-count [get]
// @Security     BearerAuth
func (h *NotificationHandler) HandleUnreadCount(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.UnreadCount(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleUnreadCount -> h.svc.UnreadCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UnreadResponse{UnreadCount: count})
}

// HandleMarkRead godoc
// @Summary      Mark one notification read
// @Tags         notifications
// @Produce      json
// @Param        notificationID  path      int  true  "Notification ID"
// @Success      200             {object}  response.MessageResponse
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /notifications/{notificationID}/read [patch]
// @Security     BearerAuth
func (h *NotificationHandler) HandleMarkRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	notificationID, respErr := parseID(ctx, "notificationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.MarkRead(ctx.Request.Context(), user.ID, notificationID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("notification", "ID", notificationID))
			return
		}

		err = fmt.Errorf("v1.HandleMarkRead -> h.svc.MarkRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Notification marked as read"})
}

func (h *NotificationHandler) HandleMarkAllRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.MarkAllRead(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleMarkAllRead -> h.svc.MarkAllRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CountResponse{Success: true, Count: count})
}

func (h *NotificationHandler) HandleDelete(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	notificationID, respErr := parseID(ctx, "notificationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), user.ID, notificationID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("notification", "ID", notificationID))
			return
		}

		err = fmt.Errorf("v1.HandleDelete -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Notification deleted"})
}

func (h *NotificationHandler) HandleClearAll(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.ClearAll(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleClearAll -> h.svc.ClearAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CountResponse{Success: true, Count: count})
}
