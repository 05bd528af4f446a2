package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ghostpin/ghostpin-api/docs"
	v1 "github.com/ghostpin/ghostpin-api/internal/api/handler/v1"
	"github.com/ghostpin/ghostpin-api/internal/api/middleware"
	"github.com/ghostpin/ghostpin-api/internal/config"
	"github.com/ghostpin/ghostpin-api/internal/pkg/storage"
	"github.com/ghostpin/ghostpin-api/internal/repository"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
	"github.com/ghostpin/ghostpin-api/internal/service"
)

const (
	basePath   = "/api/v1"
	streamPath = "/notifications/stream"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Hub    *v1.NotificationHub

	repos    *repositories
	stopHub  context.CancelFunc
	userSvc  *service.UserService
	handlers *handlers
}

type repositories struct {
	users         *repository.UserRepository
	places        *repository.PlaceRepository
	interactions  *repository.InteractionRepository
	checkIns      *repository.CheckInRepository
	comments      *repository.CommentRepository
	notifications *repository.NotificationRepository
	collections   *repository.CollectionRepository
	gamification  *repository.GamificationRepository
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	place        *v1.PlaceHandler
	moderation   *v1.ModerationHandler
	interaction  *v1.InteractionHandler
	checkIn      *v1.CheckInHandler
	comment      *v1.CommentHandler
	notification *v1.NotificationHandler
	collection   *v1.CollectionHandler
	gamification *v1.GamificationHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		repos:  newRepositories(db),
	}

	s.MountMiddlewares()

	s.userSvc = service.NewUserService(s.repos.users,
		repository.NewProfileStatsRepository(s.repos.places, s.repos.checkIns, s.repos.collections, s.repos.gamification))
	s.initHub()
	s.handlers = &handlers{
		auth:         s.initAuthHandler(),
		user:         v1.NewUserHandler(s.userSvc),
		place:        s.initPlaceHandler(),
		moderation:   s.initModerationHandler(),
		interaction:  v1.NewInteractionHandler(service.NewInteractionService(s.repos.interactions), s.userSvc),
		checkIn:      s.initCheckInHandler(),
		comment:      s.initCommentHandler(),
		notification: v1.NewNotificationHandler(service.NewNotificationService(s.repos.notifications), s.userSvc),
		collection:   v1.NewCollectionHandler(service.NewCollectionService(s.repos.collections, s.repos.places), s.userSvc),
		gamification: v1.NewGamificationHandler(service.NewGamificationService(s.repos.gamification, s.repos.users, s.Hub), s.userSvc),
	}
	s.MountHandlers()

	return s
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		users:         repository.NewUserRepository(dao.NewUserDAO(db), dao.NewProfileDAO(db)),
		places:        repository.NewPlaceRepository(dao.NewPlaceDAO(db)),
		interactions:  repository.NewInteractionRepository(dao.NewInteractionDAO(db)),
		checkIns:      repository.NewCheckInRepository(dao.NewCheckInDAO(db)),
		comments:      repository.NewCommentRepository(dao.NewCommentDAO(db)),
		notifications: repository.NewNotificationRepository(dao.NewNotificationDAO(db)),
		collections:   repository.NewCollectionRepository(dao.NewCollectionDAO(db)),
		gamification:  repository.NewGamificationRepository(dao.NewGamificationDAO(db)),
	}
}

// initHub starts the notification fan-out; Close stops it.
func (s *Server) initHub() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopHub = cancel
	s.Hub = v1.NewNotificationHub(s.userSvc, s.Config.API.AllowedCORSDomains)

	go s.Hub.Run(ctx)
}

func (s *Server) Close() {
	s.stopHub()
}

func (s *Server) initAuthHandler() *v1.AuthHandler {
	svc := service.NewAuthService(s.repos.users, s.repos.notifications, s.Hub)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initPlaceHandler() *v1.PlaceHandler {
	viewer := repository.NewPlaceViewerRepository(s.repos.interactions, s.repos.checkIns, s.repos.comments)
	svc := service.NewPlaceService(s.repos.places, viewer, s.Config.Reputation.Awards)
	proximity := service.NewProximityService(s.repos.places, s.repos.notifications, s.Hub, s.Config.Proximity)
	handler := v1.NewPlaceHandler(svc, proximity, s.userSvc)

	return handler
}

func (s *Server) initModerationHandler() *v1.ModerationHandler {
	activity := repository.NewActivityRepository(s.repos.users, s.repos.checkIns)
	svc := service.NewModerationService(s.repos.places, activity, s.Hub, s.Config.Reputation.Awards)
	handler := v1.NewModerationHandler(svc, s.userSvc)

	return handler
}

func (s *Server) initCheckInHandler() *v1.CheckInHandler {
	presigner := storage.NewPresigner(s.Config.Storage)
	svc := service.NewCheckInService(s.repos.checkIns, s.repos.places, presigner, s.Config.Reputation.Awards, s.Config.Proximity.VerifyRadiusKm)
	handler := v1.NewCheckInHandler(svc, s.userSvc)

	return handler
}

func (s *Server) initCommentHandler() *v1.CommentHandler {
	svc := service.NewCommentService(s.repos.comments, s.repos.places, s.repos.checkIns, s.Hub, s.Config.Reputation.Awards, s.Config.Reputation.MaxReplyDepth)
	handler := v1.NewCommentHandler(svc, s.userSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	// The stream URL can carry a token, so it stays out of the access log.
	s.Router.Use(gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{basePath + streamPath}}))
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers() {
	h := s.handlers
	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.GET("/leaderboard", h.user.HandleLeaderboard)
		public.GET("/challenges", h.gamification.HandleListChallenges)
		public.GET("/collections", h.collection.HandleListCollections)
	}

	// Anonymous callers are welcome here; a valid token personalises the response.
	browse := s.Router.Group(basePath, authenticator.OptionalJWT())
	{
		browse.GET("/places", h.place.HandleListPlaces)
		browse.GET("/places/trending", h.place.HandleTrendingPlaces)
		browse.GET("/places/nearby", h.place.HandleNearbyPlaces)
		browse.GET("/places/:placeID", h.place.HandleGetPlace)
		browse.GET("/places/:placeID/check-ins", h.checkIn.HandleListPlaceCheckIns)
		browse.GET("/places/:placeID/comments", h.comment.HandleListComments)
		browse.GET("/collections/:collectionID", h.collection.HandleGetCollection)
		browse.GET("/badges", h.gamification.HandleListBadges)
	}

	members := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		members.GET("/users/:userID", h.user.HandleGetUser)
		members.PUT("/users/me", h.user.HandleUpdateMe)

		members.POST("/places", h.place.HandleSubmitPlace)
		members.PUT("/places/:placeID", h.place.HandleUpdatePlace)
		members.POST("/places/:placeID/favorite", h.interaction.HandleToggleFavorite)
		members.POST("/places/:placeID/vote", h.interaction.HandleVotePlace)
		members.POST("/places/:placeID/check-in", h.checkIn.HandleCheckIn)
		members.POST("/places/:placeID/comments", h.comment.HandleAddComment)
		members.POST("/comments/:commentID/vote", h.interaction.HandleVoteComment)

		members.GET("/favorites", h.interaction.HandleListFavorites)
		members.GET("/check-ins", h.checkIn.HandleListMyCheckIns)
		members.GET("/check-ins/:checkInID", h.checkIn.HandleGetCheckIn)
		members.POST("/uploads/check-in-proof", h.checkIn.HandlePresignProof)

		members.GET("/notifications", h.notification.HandleListNotifications)
		members.DELETE("/notifications", h.notification.HandleClearAll)
		members.GET("/notifications/unread-count", h.notification.HandleUnreadCount)
		members.POST("/notifications/read-all", h.notification.HandleMarkAllRead)
		members.PATCH("/notifications/:notificationID/read", h.notification.HandleMarkRead)
		members.DELETE("/notifications/:notificationID", h.notification.HandleDelete)

		members.POST("/collections", h.collection.HandleCreateCollection)
		members.POST("/collections/:collectionID/places", h.collection.HandleAddCollectionPlace)
	}

	// The only route that takes the token from the query string.
	s.Router.GET(basePath+streamPath, authenticator.VerifyJWTFromQuery(), s.Hub.HandleStream)

	// Staff checks live in the services.
	staff := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		staff.GET("/moderation/places", h.moderation.HandleListPending)
		staff.PATCH("/places/:placeID/status", h.moderation.HandleUpdateStatus)
		staff.GET("/analytics", h.moderation.HandleAnalytics)
		staff.POST("/users/:userID/badges", h.gamification.HandleAwardBadge)
		staff.POST("/badges", h.gamification.HandleCreateBadge)
		staff.POST("/challenges", h.gamification.HandleCreateChallenge)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "GhostPin API"
	docs.SwaggerInfo.Description = "Crowd-sourced map of abandoned and forgotten places."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
