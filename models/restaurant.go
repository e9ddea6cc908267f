package models

import (
	"time"

	"gorm.io/datatypes"
)

// Restaurant is upserted from the places provider; the provider-assigned
// place id is the primary key and never changes.
type Restaurant struct {
	ID string `gorm:"primaryKey;size:191" json:"id"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name       string   `gorm:"size:255" json:"name"`
	PriceLevel *int     `gorm:"column:price_level" json:"priceLevel,omitempty"`
	Rating     *float64 `gorm:"column:rating" json:"rating,omitempty"`

	// separate lat/lng columns for portability and haversine math
	Lat float64 `gorm:"type:decimal(10,8)" json:"lat"`
	Lng float64 `gorm:"type:decimal(11,8)" json:"lng"`

	PhotoRef *string `gorm:"column:photo_ref;size:512" json:"photoRef,omitempty"`
	MapsURL  string  `gorm:"column:maps_url;size:512" json:"mapsUrl"`

	PhotoAttributions datatypes.JSON `gorm:"column:photo_attributions" json:"photoAttributions,omitempty"`
}

// RestaurantWithDetails is the per-request merged view: provider data plus
// distance from the query center and live attendance. Never persisted.
type RestaurantWithDetails struct {
	Restaurant

	Distance        float64 `gorm:"-" json:"distance"`
	AttendeeCount   int     `gorm:"-" json:"attendeeCount"`
	IsUserAttending bool    `gorm:"-" json:"isUserAttending"`
}
