package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ghostpin/ghostpin-api/internal/config"
	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/pkg/geo"
)

var (
	ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrInvalidRadius      = errors.New("radius must be positive and within the allowed maximum")
)

type ApprovedPlaceRepository interface {
	FindByStatus(ctx context.Context, status domain.PlaceStatus) ([]domain.Place, error)
}

type NearbyNotificationRepository interface {
	CreateUnlessRecent(ctx context.Context, notification domain.Notification, since time.Time) (domain.Notification, bool, error)
}

type ProximityService struct {
	places        ApprovedPlaceRepository
	notifications NearbyNotificationRepository
	publisher     Publisher
	conf          *config.ProximityConfig
	now           func() time.Time
}

func NewProximityService(places ApprovedPlaceRepository, notifications NearbyNotificationRepository, publisher Publisher, conf *config.ProximityConfig) *ProximityService {
	return &ProximityService{
		places:        places,
		notifications: notifications,
		publisher:     publisher,
		conf:          conf,
		now:           time.Now,
	}
}

// FindNearby scans every approved place and keeps those within radiusKm of (lat, lng),
// nearest first. A radius of zero falls back to the configured default. When caller is
// authenticated and something was found, a nearby_place notification is stored unless one
// was already created within the configured window.
func (s *ProximityService) FindNearby(ctx context.Context, caller domain.User, lat, lng, radiusKm float64) ([]domain.NearbyPlace, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidCoordinates
	}
	if radiusKm == 0 {
		radiusKm = s.conf.DefaultRadiusKm
	}
	if radiusKm <= 0 || (s.conf.MaxRadiusKm > 0 && radiusKm > s.conf.MaxRadiusKm) {
		return nil, ErrInvalidRadius
	}

	approved, err := s.places.FindByStatus(ctx, domain.PlaceStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("s.places.FindByStatus -> %w", err)
	}

	origin := geo.Point{Latitude: lat, Longitude: lng}
	nearby := make([]domain.NearbyPlace, 0)
	for _, p := range approved {
		d := geo.Between(origin, geo.Point{Latitude: p.Latitude, Longitude: p.Longitude})
		if d <= radiusKm {
			nearby = append(nearby, domain.NearbyPlace{Place: p, Distance: geo.Round2(d)})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		if nearby[i].Distance == nearby[j].Distance {
			return nearby[i].ID < nearby[j].ID
		}
		return nearby[i].Distance < nearby[j].Distance
	})

	if caller.ID != 0 && len(nearby) > 0 {
		s.notify(ctx, caller.ID, len(nearby))
	}

	return nearby, nil
}

// notify is best effort: a failure is logged and never fails the search.
func (s *ProximityService) notify(ctx context.Context, userID uint, found int) {
	since := s.now().Add(-s.conf.NotificationWindow)

	created, ok, err := s.notifications.CreateUnlessRecent(ctx, domain.NearbyNotification(userID, found), since)
	if err != nil {
		zap.L().Warn("nearby notification failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if ok {
		s.publisher.Publish(created)
	}
}
