package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/response"
	"github.com/ghostpin/ghostpin-api/internal/domain"
)

const (
	clientSendBuffer = 256
	hubQueueSize     = 1024
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = pongWait * 9 / 10
)

type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// NotificationHub fans stored notifications out to the websocket connections of their recipients.
// A user may hold several connections.
type NotificationHub struct {
	uSvc         UserService
	upgrader     websocket.Upgrader
	clients      map[uint]map[*Client]bool
	clientsMutex sync.RWMutex
	broadcast    chan domain.Notification
	register     chan *Client
	unregister   chan *Client
	done         chan struct{}
}

func NewNotificationHub(uSvc UserService, allowedOrigins []string) *NotificationHub {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &NotificationHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin]
			},
		},
		uSvc:       uSvc,
		clients:    make(map[uint]map[*Client]bool),
		broadcast:  make(chan domain.Notification, hubQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client registry until ctx is cancelled.
func (h *NotificationHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.clientsMutex.Lock()
			for userID, set := range h.clients {
				for client := range set {
					close(client.send)
				}
				delete(h.clients, userID)
			}
			h.clientsMutex.Unlock()
			return
		case client := <-h.register:
			h.clientsMutex.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			h.remove(client)
			h.clientsMutex.Unlock()
		case notification := <-h.broadcast:
			message, err := json.Marshal(notification)
			if err != nil {
				zap.L().Error("json.Marshal notification", zap.Error(err))
				continue
			}

			h.clientsMutex.Lock()
			for client := range h.clients[notification.UserID] {
				select {
				case client.send <- message:
				default:
					h.remove(client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// remove must be called with clientsMutex held.
func (h *NotificationHub) remove(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok || !set[client] {
		return
	}

	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

// Publish queues a notification for delivery. It never blocks; when the queue is full the
// notification is only available through the inbox endpoints.
func (h *NotificationHub) Publish(notification domain.Notification) {
	select {
	case h.broadcast <- notification:
	default:
		zap.L().Warn("notification hub queue full", zap.Uint("notification_id", notification.ID))
	}
}

func (h *NotificationHub) connections(userID uint) int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	return len(h.clients[userID])
}

// HandleStream godoc
// @Summary      Live notifications
// @Description  Upgrades to a websocket that receives the caller's new notifications as JSON.
// @Tags         notifications
// @Produce      json
// @Param        access_token  query     string  false  "JWT when the Authorization header cannot be set (this route only)"
// @Success      101           {string}  string  "Switching Protocols to WebSocket"
// @Failure      401           {object}  response.Err
// @Router       /notifications/stream [get]
// @Security     BearerAuth
func (h *NotificationHub) HandleStream(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, clientSendBuffer),
		userID: user.ID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the peer going away; clients never send anything meaningful.
func (c *Client) readPump(h *NotificationHub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket closed", zap.Uint("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}
