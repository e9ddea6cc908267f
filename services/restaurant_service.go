package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"dinner-backend/models"
	"dinner-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	placesCacheSize = 64
	placesCacheTTL  = 24 * time.Hour
)

var ErrRestaurantNotFound = errors.New("restaurant_not_found")

// RestaurantService merges provider data, persisted attendance and
// per-request distance into a single view, and coordinates join/leave
// membership transitions.
type RestaurantService struct {
	DB     *gorm.DB
	Places PlacesProvider

	// TTL memoization of provider results keyed by rounded location+radius
	cache *expirable.LRU[string, []models.Restaurant]
}

func NewRestaurantService(db *gorm.DB, places PlacesProvider) *RestaurantService {
	return &RestaurantService{
		DB:     db,
		Places: places,
		cache:  expirable.NewLRU[string, []models.Restaurant](placesCacheSize, nil, placesCacheTTL),
	}
}

type attendeeCountRow struct {
	RestaurantID string
	Count        int
}

// GetAllRestaurantDetails returns every cached/provider restaurant around
// the query center with distance, live attendee count and the requesting
// user's attendance flag. Distance is computed from the query center, not
// stored.
func (s *RestaurantService) GetAllRestaurantDetails(lat, lng float64, userID uint, radiusMeters int) ([]models.RestaurantWithDetails, error) {
	attendingID, err := s.attendingRestaurantID(userID)
	if err != nil {
		return nil, err
	}

	restaurants, err := s.nearbyCached(lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}

	var rows []attendeeCountRow
	if err := s.DB.
		Model(&models.Attendee{}).
		Select("dinner_groups.restaurant_id AS restaurant_id, COUNT(attendees.id) AS count").
		Joins("JOIN dinner_groups ON dinner_groups.id = attendees.dinner_group_id").
		Group("dinner_groups.restaurant_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count attendees: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.RestaurantID] = row.Count
	}

	details := make([]models.RestaurantWithDetails, 0, len(restaurants))
	for _, r := range restaurants {
		details = append(details, models.RestaurantWithDetails{
			Restaurant:      r,
			Distance:        utils.DistanceMiles(lat, lng, r.Lat, r.Lng),
			AttendeeCount:   counts[r.ID],
			IsUserAttending: userID != 0 && r.ID == attendingID,
		})
	}
	return details, nil
}

// JoinDinnerGroup moves the user into the restaurant's group, leaving any
// prior group first so a user never holds two memberships.
func (s *RestaurantService) JoinDinnerGroup(userID uint, restaurantID string) error {
	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("failed to look up restaurant: %w", err)
	}

	if err := s.LeaveDinnerGroup(userID); err != nil {
		return err
	}

	var group models.DinnerGroup
	if err := s.DB.
		Where(models.DinnerGroup{RestaurantID: restaurantID}).
		FirstOrCreate(&group).Error; err != nil {
		return fmt.Errorf("failed to find or create dinner group: %w", err)
	}

	attendee := models.Attendee{UserID: userID, DinnerGroupID: group.ID}
	if err := s.DB.Create(&attendee).Error; err != nil {
		if isDuplicateEntry(err) {
			// concurrent join for the same user won the race; keep theirs
			log.Printf("⚠️  join race for user %d, keeping existing attendance", userID)
			return nil
		}
		return fmt.Errorf("failed to create attendee: %w", err)
	}
	return nil
}

// LeaveDinnerGroup removes the user's attendance and deletes the group if
// it emptied. No-op when the user attends nothing.
func (s *RestaurantService) LeaveDinnerGroup(userID uint) error {
	var attendee models.Attendee
	err := s.DB.Where("user_id = ?", userID).First(&attendee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up attendance: %w", err)
	}

	if err := s.DB.Delete(&models.Attendee{}, attendee.ID).Error; err != nil {
		return fmt.Errorf("failed to delete attendee: %w", err)
	}

	var remaining int64
	if err := s.DB.
		Model(&models.Attendee{}).
		Where("dinner_group_id = ?", attendee.DinnerGroupID).
		Count(&remaining).Error; err != nil {
		return fmt.Errorf("failed to count remaining attendees: %w", err)
	}
	if remaining == 0 {
		if err := s.DB.Delete(&models.DinnerGroup{}, attendee.DinnerGroupID).Error; err != nil {
			return fmt.Errorf("failed to delete empty dinner group: %w", err)
		}
	}
	return nil
}

// CurrentGroup returns the user's dinner group with its restaurant and
// attendees, or nil when the user attends nothing.
func (s *RestaurantService) CurrentGroup(userID uint) (*models.DinnerGroup, error) {
	var attendee models.Attendee
	err := s.DB.Where("user_id = ?", userID).First(&attendee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up attendance: %w", err)
	}

	var group models.DinnerGroup
	if err := s.DB.
		Preload("Restaurant").
		Preload("Attendees").
		First(&group, attendee.DinnerGroupID).Error; err != nil {
		return nil, fmt.Errorf("failed to load dinner group: %w", err)
	}
	return &group, nil
}

func (s *RestaurantService) attendingRestaurantID(userID uint) (string, error) {
	if userID == 0 {
		return "", nil
	}
	var restaurantID string
	err := s.DB.
		Model(&models.Attendee{}).
		Select("dinner_groups.restaurant_id").
		Joins("JOIN dinner_groups ON dinner_groups.id = attendees.dinner_group_id").
		Where("attendees.user_id = ?", userID).
		Scan(&restaurantID).Error
	if err != nil {
		return "", fmt.Errorf("failed to look up attendance: %w", err)
	}
	return restaurantID, nil
}

func (s *RestaurantService) nearbyCached(lat, lng float64, radiusMeters int) ([]models.Restaurant, error) {
	key := fmt.Sprintf("%v,%v:%d", utils.RoundCoord(lat), utils.RoundCoord(lng), radiusMeters)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	restaurants, err := s.Places.NearbyRestaurants(lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}

	if len(restaurants) > 0 {
		if err := s.DB.
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&restaurants).Error; err != nil {
			return nil, fmt.Errorf("failed to upsert restaurants: %w", err)
		}
	}

	s.cache.Add(key, restaurants)
	return restaurants, nil
}

func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
