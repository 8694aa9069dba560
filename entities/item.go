package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	ItemStatusForSale  = "FOR_SALE"
	ItemStatusReserved = "RESERVED"
	ItemStatusSold     = "SOLD"
)

type Item struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SellerID    uuid.UUID  `gorm:"index" json:"seller_id"`
	CategoryID  uuid.UUID  `gorm:"index" json:"category_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
	Status      string     `json:"status"` // FOR_SALE, RESERVED, SOLD
	ReservedBy  *uuid.UUID `json:"reserved_by,omitempty"`

	Seller   *User     `gorm:"foreignKey:SellerID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
	Images   []*Image  `gorm:"foreignKey:ItemID"`
	Timestamp
}

type Image struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ItemID   uuid.UUID `gorm:"index" json:"item_id"`
	URL      string    `json:"url"`
	Position int       `json:"position"`

	Item *Item `gorm:"foreignKey:ItemID"`
	Timestamp
}
