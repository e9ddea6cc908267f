package models

import (
	"time"
)

// DinnerGroup exists while at least one attendee is signed up for its
// restaurant. At most one group per restaurant.
type DinnerGroup struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RestaurantID string `gorm:"uniqueIndex;size:191;column:restaurant_id" json:"restaurantId"`

	Restaurant Restaurant `gorm:"foreignKey:RestaurantID;references:ID" json:"restaurant,omitempty"`
	Attendees  []Attendee `gorm:"foreignKey:DinnerGroupID" json:"attendees,omitempty"`
}
