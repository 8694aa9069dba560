package recommendation

import (
	"context"
	"errors"
	"log"
	"time"

	"marketplace-backend/domain"
	"marketplace-backend/entities"
	"marketplace-backend/pkg/item"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// RecommendationLimit caps every recommendation response.
	RecommendationLimit = 8

	// RecentViewWindow is how many of the user's latest views feed the
	// category affinity signal.
	RecentViewWindow = 10
)

type (
	RecommendationService interface {
		RecordView(ctx context.Context, itemID string, userID string) (domain.RecordViewResponse, error)
		GetRecommendations(ctx context.Context, userID string) ([]domain.ItemResponse, error)
	}

	recommendationService struct {
		recommendationRepository RecommendationRepository
		itemRepository           item.ItemRepository
	}
)

func NewRecommendationService(recommendationRepository RecommendationRepository, itemRepository item.ItemRepository) RecommendationService {
	return &recommendationService{
		recommendationRepository: recommendationRepository,
		itemRepository:           itemRepository,
	}
}

func (s *recommendationService) RecordView(ctx context.Context, itemID string, userID string) (domain.RecordViewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecordViewResponse{}, domain.ErrParseUUID
	}
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return domain.RecordViewResponse{}, domain.ErrParseUUID
	}

	// Unknown item is a failure result, not an error.
	if _, err := s.itemRepository.GetItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecordViewResponse{Recorded: false}, nil
		}
		return domain.RecordViewResponse{}, err
	}

	view := &entities.ItemView{
		ID:       uuid.New(),
		UserID:   userUUID,
		ItemID:   itemUUID,
		ViewedAt: time.Now(),
	}

	if err := s.recommendationRepository.CreateItemView(ctx, view); err != nil {
		return domain.RecordViewResponse{}, err
	}

	return domain.RecordViewResponse{Recorded: true}, nil
}

// GetRecommendations prefers items sharing a category with the user's recent
// views and fills any remaining slots from the global view-count ranking, so
// the feed is never empty for users with little history.
func (s *recommendationService) GetRecommendations(ctx context.Context, userID string) ([]domain.ItemResponse, error) {
	recentViews, err := s.recommendationRepository.GetRecentViewsByUser(ctx, userID, RecentViewWindow)
	if err != nil {
		return nil, err
	}

	if len(recentViews) == 0 {
		fallback, err := s.recommendationRepository.GetMostViewedItems(ctx, userID, nil, RecommendationLimit)
		if err != nil {
			return nil, err
		}
		return s.projectItems(ctx, fallback, userID)
	}

	seen := make(map[uuid.UUID]bool)
	var categoryIDs []uuid.UUID
	for _, v := range recentViews {
		if v.Item == nil {
			continue
		}
		if !seen[v.Item.CategoryID] {
			seen[v.Item.CategoryID] = true
			categoryIDs = append(categoryIDs, v.Item.CategoryID)
		}
	}

	var candidates []*entities.Item
	if len(categoryIDs) > 0 {
		candidates, err = s.recommendationRepository.GetAffinityItems(ctx, categoryIDs, userID, RecommendationLimit)
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) < RecommendationLimit {
		chosen := make([]uuid.UUID, 0, len(candidates))
		for _, c := range candidates {
			chosen = append(chosen, c.ID)
		}

		remaining := RecommendationLimit - len(candidates)
		fallback, err := s.recommendationRepository.GetMostViewedItems(ctx, userID, chosen, remaining)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, fallback...)
	}

	if len(candidates) > RecommendationLimit {
		candidates = candidates[:RecommendationLimit]
	}

	log.Printf("returning %d recommendations for user %s", len(candidates), userID)

	return s.projectItems(ctx, candidates, userID)
}

func (s *recommendationService) projectItems(ctx context.Context, items []*entities.Item, userID string) ([]domain.ItemResponse, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	favorited, err := s.itemRepository.GetFavoritedItemIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.ItemResponse, 0, len(items))
	for _, it := range items {
		res = append(res, item.ToItemResponse(it, favorited[it.ID]))
	}
	return res, nil
}
