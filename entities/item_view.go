package entities

import (
	"time"

	"github.com/google/uuid"
)

// ItemView is an append-only view event. Rows are never updated or deleted.
type ItemView struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"index" json:"user_id"`
	ItemID   uuid.UUID `gorm:"index" json:"item_id"`
	ViewedAt time.Time `gorm:"index" json:"viewed_at"`

	User *User `gorm:"foreignKey:UserID"`
	Item *Item `gorm:"foreignKey:ItemID"`
}
