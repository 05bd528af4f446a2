package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostpin/ghostpin-api/internal/api/middleware"
	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/service"
)

type stubUserService struct{}

func (stubUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	if id == 0 {
		return domain.User{}, service.ErrUserNotFound
	}

	return domain.User{ID: id, Username: "walker"}, nil
}

func (stubUserService) GetProfile(context.Context, uint) (domain.ProfileSummary, error) {
	return domain.ProfileSummary{}, nil
}

func (stubUserService) UpdateProfile(context.Context, uint, string) (domain.Profile, error) {
	return domain.Profile{}, nil
}

func (stubUserService) Leaderboard(context.Context, int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

// newHubServer serves the stream with the user id taken from the X-User header instead of a JWT.
func newHubServer(t *testing.T) (*NotificationHub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewNotificationHub(stubUserService{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	engine := gin.New()
	engine.GET("/stream", func(ctx *gin.Context) {
		if ctx.GetHeader("X-User") == "7" {
			ctx.Set(middleware.ContextKeyUserID, uint(7))
		}
		ctx.Next()
	}, hub.HandleStream)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"

	return websocket.DefaultDialer.Dial(url, header)
}

func TestNotificationHubDelivers(t *testing.T) {
	hub, srv := newHubServer(t)

	conn, _, err := dial(t, srv, http.Header{"X-User": []string{"7"}})
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.connections(7) == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(domain.Notification{ID: 1, UserID: 8, Title: "not yours"})
	hub.Publish(domain.Notification{ID: 2, UserID: 7, Title: "Place Approved", Type: domain.NotificationPlaceApproved})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var got domain.Notification
	require.NoError(t, json.Unmarshal(message, &got))
	assert.Equal(t, uint(2), got.ID)
	assert.Equal(t, domain.NotificationPlaceApproved, got.Type)
}

func TestNotificationHubUnregistersOnClose(t *testing.T) {
	hub, srv := newHubServer(t)

	conn, _, err := dial(t, srv, http.Header{"X-User": []string{"7"}})
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return hub.connections(7) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.connections(7) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNotificationHubRequiresUser(t *testing.T) {
	_, srv := newHubServer(t)

	_, resp, err := dial(t, srv, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNotificationHubPublishNeverBlocks(t *testing.T) {
	hub := NewNotificationHub(stubUserService{}, nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < hubQueueSize+10; i++ {
			hub.Publish(domain.Notification{UserID: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}
