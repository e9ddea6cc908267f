package models

import (
	"time"
)

// Attendee links a user to a dinner group. The unique index on user_id
// keeps a user in at most one group at a time.
type Attendee struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID        uint `gorm:"uniqueIndex;column:user_id" json:"userId"`
	DinnerGroupID uint `gorm:"index;column:dinner_group_id" json:"dinnerGroupId"`

	DinnerGroup DinnerGroup `gorm:"foreignKey:DinnerGroupID" json:"-"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
}
