package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistedToken holds a JWT revoked by logout until its natural expiry.
type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}
