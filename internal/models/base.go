package models

import (
	"time"
)

// Base contains the columns shared by every table: an auto-increment
// integer key and an immutable creation timestamp.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
