package dbmodels

import (
	"time"
)

// BaseModel is embedded by every persisted record. IDs come from the
// uuid-ossp extension, so records can be created without a round trip
// for key generation.
type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
