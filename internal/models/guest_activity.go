package models

import (
	"time"

	"gorm.io/datatypes"
)

// GuestActivity is an append-only telemetry record for unauthenticated
// visitors. Pure logging; rows are never updated or deleted.
type GuestActivity struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Action    string         `json:"action" gorm:"not null;size:100;index"`
	Details   datatypes.JSON `json:"details,omitempty"`
	IPAddress string         `json:"ip_address" gorm:"size:45"`
	UserAgent string         `json:"user_agent" gorm:"size:500"`
	Timestamp time.Time      `json:"timestamp" gorm:"index:,sort:desc"`
}

func (GuestActivity) TableName() string {
	return "guest_activities"
}
