package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ghostpin/ghostpin-api/internal/api/handler/v1/response"
	"github.com/ghostpin/ghostpin-api/internal/config"
	"github.com/ghostpin/ghostpin-api/internal/db"
	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/pkg/reputation"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

const testUserAgent = "ghostpin-test"

type testEnv struct {
	server *Server
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	conf := &config.AppConfig{
		API: &config.APIConfig{
			BaseURL:       "localhost:8080",
			Environment:   "test",
			Port:          "8080",
			JWTSigningKey: "test-signing-key",
		},
		Gin:      &config.GinConfig{Mode: gin.TestMode},
		Postgres: &config.PostgresConfig{},
		Reputation: &config.ReputationConfig{
			Awards:        reputation.DefaultAwards(),
			MaxReplyDepth: 10,
		},
		Proximity: &config.ProximityConfig{
			DefaultRadiusKm:    10,
			MaxRadiusKm:        200,
			NotificationWindow: time.Hour,
			VerifyRadiusKm:     0.5,
		},
		Storage: &config.StorageConfig{
			Bucket:          "ghostpin-test",
			Region:          "auto",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			PublicURL:       "https://cdn.ghostpin.test",
			PresignTTL:      15 * time.Minute,
		},
	}

	s := NewServer(conf, gdb)
	t.Cleanup(func() {
		s.Close()
		_ = sqlDB.Close()
	})

	return &testEnv{server: s, db: gdb}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", testUserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.Router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

// register signs a user up and returns it with a token.
func (e *testEnv) register(t *testing.T, name string) (domain.User, string) {
	t.Helper()

	email := name + "@ghostpin.test"
	rec := e.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":            email,
		"username":         name,
		"password":         "Secret#123",
		"confirm_password": "Secret#123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "Secret#123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[response.LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)

	return login.User, login.Token
}

func (e *testEnv) promote(t *testing.T, user domain.User) {
	t.Helper()

	require.NoError(t, e.db.Model(&dao.User{}).Where("id = ?", user.ID).Update("is_staff", true).Error)
}

func placeBody(lat, lng float64) map[string]any {
	return map[string]any{
		"name":          "Sanatorium " + uuid.NewString()[:6],
		"description":   "Closed in 1968",
		"latitude":      lat,
		"longitude":     lng,
		"category":      "historical",
		"difficulty":    "moderate",
		"safety_rating": 3,
	}
}

func TestHealthcheck(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	env.server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	tests := []struct {
		name string
		body map[string]string
	}{
		{
			name: "weak password",
			body: map[string]string{"email": "bob@ghostpin.test", "username": "bob", "password": "password", "confirm_password": "password"},
		},
		{
			name: "password mismatch",
			body: map[string]string{"email": "bob@ghostpin.test", "username": "bob", "password": "Secret#123", "confirm_password": "Secret#124"},
		},
		{
			name: "duplicate email",
			body: map[string]string{"email": "alice@ghostpin.test", "username": "alice2", "password": "Secret#123", "confirm_password": "Secret#123"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@ghostpin.test",
		"password": "Wrong#123",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	errBody := decode[response.Err](t, rec)
	assert.False(t, errBody.Success)
	assert.Equal(t, http.StatusUnauthorized, errBody.HTTPStatusCode)
	assert.NotEmpty(t, errBody.ErrorText)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/favorites", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, decode[response.Err](t, rec).HTTPStatusCode)

	rec = env.do(t, http.MethodGet, "/places", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenBoundToUserAgent(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "another-browser")
	rec := httptest.NewRecorder()
	env.server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQueryTokenOnlyOnStream(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice")

	rec := env.do(t, http.MethodGet, "/favorites?access_token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/notifications?access_token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/notifications/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated, then refused by the upgrader because this is not a websocket handshake.
	rec = env.do(t, http.MethodGet, "/notifications/stream?access_token="+token, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/notifications/stream", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.register(t, "alice")
	staff, staffToken := env.register(t, "warden")
	env.promote(t, staff)

	rec := env.do(t, http.MethodPost, "/places", aliceToken, placeBody(48.8566, 2.3522))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	place := decode[domain.Place](t, rec)
	assert.Equal(t, domain.PlaceStatusPending, place.Status)
	assert.Equal(t, alice.ID, place.CreatedByID)
	path := fmt.Sprintf("/places/%d", place.ID)

	// Pending places stay hidden from everyone but the creator and staff.
	rec = env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decode[response.Err](t, rec)
	assert.False(t, errBody.Success)
	assert.Equal(t, http.StatusNotFound, errBody.HTTPStatusCode)

	rec = env.do(t, http.MethodGet, path, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPatch, path+"/status", aliceToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPatch, path+"/status", staffToken, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/moderation/places", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Place](t, rec), 1)

	rec = env.do(t, http.MethodPatch, path+"/status", staffToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	status := decode[response.StatusResponse](t, rec)
	assert.True(t, status.Success)
	assert.Equal(t, domain.PlaceStatusApproved, status.Place.Status)

	rec = env.do(t, http.MethodPatch, path+"/status", staffToken, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/notifications/unread-count", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// The welcome from alice's first login, then the approval.
	assert.Equal(t, int64(2), decode[response.UnreadResponse](t, rec).UnreadCount)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/users/%d", alice.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[domain.ProfileSummary](t, rec)
	assert.Equal(t, 70, summary.Profile.Points)
	assert.Equal(t, int64(1), summary.ApprovedPlaces)
}

func TestCheckInTwice(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.register(t, "alice")
	staff, staffToken := env.register(t, "warden")
	env.promote(t, staff)

	rec := env.do(t, http.MethodPost, "/places", staffToken, placeBody(45.0, 5.0))
	require.Equal(t, http.StatusCreated, rec.Code)
	place := decode[domain.Place](t, rec)
	path := fmt.Sprintf("/places/%d", place.ID)

	// Pending places cannot be checked into.
	rec = env.do(t, http.MethodPost, path+"/check-in", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, path+"/status", staffToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, path+"/check-in", aliceToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[response.CheckInResponse](t, rec)
	assert.True(t, first.Created)
	assert.Equal(t, 10, first.CheckIn.PointsAwarded)

	rec = env.do(t, http.MethodPost, path+"/check-in", aliceToken, map[string]string{"notes": "again"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decode[response.CheckInResponse](t, rec)
	assert.True(t, second.Success)
	assert.False(t, second.Created)
	assert.Equal(t, first.CheckIn.ID, second.CheckIn.ID)

	rec = env.do(t, http.MethodGet, "/check-ins", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.CheckIn](t, rec), 1)
}

func TestNearbyEndpoint(t *testing.T) {
	env := newTestEnv(t)
	staff, staffToken := env.register(t, "warden")
	env.promote(t, staff)

	for _, lng := range []float64{0.01, 0.5} {
		rec := env.do(t, http.MethodPost, "/places", staffToken, placeBody(0, lng))
		require.Equal(t, http.StatusCreated, rec.Code)
		place := decode[domain.Place](t, rec)
		rec = env.do(t, http.MethodPatch, fmt.Sprintf("/places/%d/status", place.ID), staffToken, map[string]string{"status": "approved"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/places/nearby?lat=0&lng=0&radius=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	nearby := decode[response.NearbyResponse](t, rec)
	require.Equal(t, 1, nearby.Count)
	assert.InDelta(t, 1.11, nearby.Places[0].Distance, 0.01)

	rec = env.do(t, http.MethodGet, "/places/nearby?lat=0&lng=0&radius=100", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[response.NearbyResponse](t, rec).Count)

	for _, query := range []string{"lat=91&lng=0", "lat=0&lng=0&radius=-1", "lat=abc&lng=0"} {
		rec = env.do(t, http.MethodGet, "/places/nearby?"+query, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestFavoriteToggleEndpoint(t *testing.T) {
	env := newTestEnv(t)
	staff, staffToken := env.register(t, "warden")
	env.promote(t, staff)

	rec := env.do(t, http.MethodPost, "/places", staffToken, placeBody(10, 10))
	require.Equal(t, http.StatusCreated, rec.Code)
	place := decode[domain.Place](t, rec)
	path := fmt.Sprintf("/places/%d/favorite", place.ID)

	rec = env.do(t, http.MethodPost, path, staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.FavoriteActionFavorited, decode[response.FavoriteResponse](t, rec).Action)

	rec = env.do(t, http.MethodPost, path, staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FavoriteActionUnfavorited, decode[response.FavoriteResponse](t, rec).Action)
}

func TestPresignRejectsNonImages(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice")

	rec := env.do(t, http.MethodPost, "/uploads/check-in-proof", token, map[string]string{
		"file_name":    "notes.txt",
		"content_type": "text/plain",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaffOnlyRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice")

	for _, path := range []string{"/analytics", "/moderation/places"} {
		rec := env.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	rec := env.do(t, http.MethodPost, "/badges", token, map[string]any{"name": "Night owl", "points_required": 100})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
