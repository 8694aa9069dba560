package domain

import (
	"errors"
)

var (
	MessageSuccessRecordView         = "item view recorded successfully"
	MessageSuccessGetRecommendations = "recommended items retrieved successfully"

	MessageFailedRecordView         = "failed to record item view"
	MessageFailedGetRecommendations = "failed to retrieve recommended items"

	ErrViewItemNotFound = errors.New("viewed item not found")
)

type (
	RecordViewResponse struct {
		Recorded bool `json:"recorded"`
	}

	ToggleFavoriteResponse struct {
		Toggled   bool `json:"toggled"`
		Favorited bool `json:"favorited"`
	}
)
