package controllers

import (
	"errors"
	"net/http"

	"dinner-backend/services"
	"dinner-backend/utils"

	"github.com/gin-gonic/gin"
)

// DinnerGroupActionPayload is the page's membership form: intent=join
// needs a restaurantId, intent=leave doesn't. Binds form posts and JSON.
type DinnerGroupActionPayload struct {
	Intent       string `form:"intent" json:"intent"`
	RestaurantID string `form:"restaurantId" json:"restaurantId"`
	UserID       uint   `form:"userId" json:"userId"`
}

type DinnerGroupController struct {
	RestaurantSvc *services.RestaurantService
}

func NewDinnerGroupController(svc *services.RestaurantService) *DinnerGroupController {
	return &DinnerGroupController{RestaurantSvc: svc}
}

// HandleAction processes a join/leave form post. Malformed input returns a
// structured error payload rather than a 500.
func (dc *DinnerGroupController) HandleAction(c *gin.Context) {
	var payload DinnerGroupActionPayload
	if err := c.ShouldBind(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "could not parse action payload")
		return
	}
	if payload.UserID == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.missingUserId", "field 'userId' is required")
		return
	}

	switch payload.Intent {
	case "join":
		if payload.RestaurantID == "" {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.missingRestaurantId", "intent 'join' requires field 'restaurantId'")
			return
		}
		if err := dc.RestaurantSvc.JoinDinnerGroup(payload.UserID, payload.RestaurantID); err != nil {
			if errors.Is(err, services.ErrRestaurantNotFound) {
				utils.JSONErrorCode(c, http.StatusNotFound, "error.restaurantNotFound", "restaurant "+payload.RestaurantID+" is not known")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to join dinner group: "+err.Error())
			return
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{"intent": "join", "restaurantId": payload.RestaurantID})

	case "leave":
		if err := dc.RestaurantSvc.LeaveDinnerGroup(payload.UserID); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to leave dinner group: "+err.Error())
			return
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{"intent": "leave"})

	default:
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidIntent", "intent must be 'join' or 'leave'")
	}
}

// GetCurrentGroup returns the user's dinner group for the page banner, or
// null data when they attend nothing. GET /api/dinner-groups?userId=
func (dc *DinnerGroupController) GetCurrentGroup(c *gin.Context) {
	userID := parseUserID(c.Query("userId"))
	if userID == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.missingUserId", "query param 'userId' is required")
		return
	}

	group, err := dc.RestaurantSvc.CurrentGroup(userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load dinner group: "+err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, group)
}
