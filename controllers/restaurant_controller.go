package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"dinner-backend/models"
	"dinner-backend/services"
	"dinner-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	maxNearbyResults   = 30
	defaultMaxDistance = 10 // miles, top of the allowed filter range

	// radius for the provider search when the page doesn't pass one,
	// roughly the 10 mile default distance filter in meters
	defaultRadiusMeters = 16093
)

type RestaurantController struct {
	RestaurantSvc *services.RestaurantService
}

func NewRestaurantController(svc *services.RestaurantService) *RestaurantController {
	return &RestaurantController{RestaurantSvc: svc}
}

// restaurantFilters are the page's query filters, clamped into range.
// Zero MinRating/MaxPrice means no constraint.
type restaurantFilters struct {
	MaxDistance float64 // 1-10 miles
	MinRating   float64 // 1-5
	MaxPrice    int     // 1-4
}

// GetRestaurants renders the two-list view: dinner groups first (attended
// restaurants, busiest first), then nearby restaurants filtered and
// capped. GET /api/restaurants?lat=&lng=&userId=&radius=&distance=&rating=&price=
func (rc *RestaurantController) GetRestaurants(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidLocation", "query param 'lat' must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidLocation", "query param 'lng' must be a number")
		return
	}

	userID := parseUserID(c.Query("userId"))

	radius := defaultRadiusMeters
	if raw := c.Query("radius"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			radius = v
		}
	}

	filters := parseFilters(c)

	all, err := rc.RestaurantSvc.GetAllRestaurantDetails(lat, lng, userID, radius)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load restaurants: "+err.Error())
		return
	}

	groups, nearby := rankRestaurants(all, filters)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"dinnerGroups": groups,
		"nearby":       nearby,
	})
}

func parseUserID(raw string) uint {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func parseFilters(c *gin.Context) restaurantFilters {
	f := restaurantFilters{MaxDistance: defaultMaxDistance}

	if raw := c.Query("distance"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxDistance = clampFloat(v, 1, 10)
		}
	}
	if raw := c.Query("rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinRating = clampFloat(v, 1, 5)
		}
	}
	if raw := c.Query("price"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.MaxPrice = clampInt(v, 1, 4)
		}
	}
	return f
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rankRestaurants splits the merged list into attended groups (busiest
// first) and filtered nearby restaurants (best-rated first, closest on
// ties, capped at maxNearbyResults).
func rankRestaurants(all []models.RestaurantWithDetails, f restaurantFilters) (groups, nearby []models.RestaurantWithDetails) {
	groups = []models.RestaurantWithDetails{}
	nearby = []models.RestaurantWithDetails{}

	for _, r := range all {
		if r.AttendeeCount > 0 {
			groups = append(groups, r)
			continue
		}
		if matchesFilters(r, f) {
			nearby = append(nearby, r)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].AttendeeCount != groups[j].AttendeeCount {
			return groups[i].AttendeeCount > groups[j].AttendeeCount
		}
		return groups[i].Name < groups[j].Name
	})

	sort.SliceStable(nearby, func(i, j int) bool {
		ri, rj := ratingOrZero(nearby[i]), ratingOrZero(nearby[j])
		if ri != rj {
			return ri > rj
		}
		return nearby[i].Distance < nearby[j].Distance
	})

	if len(nearby) > maxNearbyResults {
		nearby = nearby[:maxNearbyResults]
	}
	return groups, nearby
}

func matchesFilters(r models.RestaurantWithDetails, f restaurantFilters) bool {
	if r.Distance > f.MaxDistance {
		return false
	}
	if f.MinRating > 0 && (r.Rating == nil || *r.Rating < f.MinRating) {
		return false
	}
	if f.MaxPrice > 0 && (r.PriceLevel == nil || *r.PriceLevel > f.MaxPrice) {
		return false
	}
	return true
}

func ratingOrZero(r models.RestaurantWithDetails) float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}
