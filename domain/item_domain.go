package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateItem     = "item created successfully"
	MessageSuccessUpdateItem     = "item updated successfully"
	MessageSuccessDeleteItem     = "item deleted successfully"
	MessageSuccessGetItems       = "items retrieved successfully"
	MessageSuccessGetItem        = "item retrieved successfully"
	MessageSuccessToggleFavorite = "favorite toggled successfully"
	MessageSuccessGetFavorites   = "favorite items retrieved successfully"

	MessageFailedCreateItem     = "failed to create item"
	MessageFailedUpdateItem     = "failed to update item"
	MessageFailedDeleteItem     = "failed to delete item"
	MessageFailedGetItems       = "failed to retrieve items"
	MessageFailedGetItem        = "failed to retrieve item"
	MessageFailedToggleFavorite = "failed to toggle favorite"
	MessageFailedGetFavorites   = "failed to retrieve favorite items"

	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidStatus      = errors.New("invalid item status")
	ErrIncompleteLocation = errors.New("latitude and longitude must be supplied together")
	ErrNotItemSeller      = errors.New("item does not belong to user")
)

type (
	CreateItemRequest struct {
		Title       string                  `json:"title" form:"title" validate:"required"`
		Description string                  `json:"description" form:"description" validate:"required"`
		CategoryID  string                  `json:"category_id" form:"category_id" validate:"required,uuid"`
		Price       float64                 `json:"price" form:"price" validate:"min=0"`
		Latitude    *float64                `json:"latitude" form:"latitude" validate:"omitempty,latitude"`
		Longitude   *float64                `json:"longitude" form:"longitude" validate:"omitempty,longitude"`
		Images      []*multipart.FileHeader `json:"-" form:"-"`
	}

	UpdateItemRequest struct {
		Title       string   `json:"title" validate:"omitempty"`
		Description string   `json:"description" validate:"omitempty"`
		CategoryID  string   `json:"category_id" validate:"omitempty,uuid"`
		Price       *float64 `json:"price" validate:"omitempty,min=0"`
		Status      string   `json:"status" validate:"omitempty,oneof=FOR_SALE RESERVED SOLD"`
	}

	// SearchItemsRequest carries the discovery filters. Pointer fields mean
	// "absent filter imposes no constraint"; there are no sentinel values.
	SearchItemsRequest struct {
		MinPrice    *float64 `query:"min_price"`
		MaxPrice    *float64 `query:"max_price"`
		CategoryIDs []string `query:"category_ids"`
		Q           string   `query:"q"`
		Latitude    *float64 `query:"latitude"`
		Longitude   *float64 `query:"longitude"`
		DistanceKm  *float64 `query:"distance_km"`
		Page        int      `query:"page"`
		Size        int      `query:"size"`
	}

	ItemResponse struct {
		ID                     string    `json:"id"`
		SellerID               string    `json:"seller_id"`
		SellerName             string    `json:"seller_name"`
		CategoryID             string    `json:"category_id"`
		CategoryName           string    `json:"category_name"`
		Title                  string    `json:"title"`
		Description            string    `json:"description"`
		Price                  float64   `json:"price"`
		Latitude               *float64  `json:"latitude,omitempty"`
		Longitude              *float64  `json:"longitude,omitempty"`
		PublishedAt            time.Time `json:"published_at"`
		Status                 string    `json:"status"`
		ReservedBy             string    `json:"reserved_by,omitempty"`
		Images                 []string  `json:"images"`
		FavoritedByCurrentUser bool      `json:"favorited_by_current_user"`
		DistanceKm             *float64  `json:"distance_km,omitempty"`
	}
)
