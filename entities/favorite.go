package entities

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is the user/item membership join table. The composite primary key
// keeps the set free of duplicates at the storage layer.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
