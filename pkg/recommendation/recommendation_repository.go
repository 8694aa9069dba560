package recommendation

import (
	"context"
	"time"

	"marketplace-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecommendationRepository interface {
		CreateItemView(ctx context.Context, view *entities.ItemView) error
		GetRecentViewsByUser(ctx context.Context, userID string, limit int) ([]*entities.ItemView, error)
		GetAffinityItems(ctx context.Context, categoryIDs []uuid.UUID, excludeSellerID string, limit int) ([]*entities.Item, error)
		GetMostViewedItems(ctx context.Context, excludeSellerID string, excludeItemIDs []uuid.UUID, limit int) ([]*entities.Item, error)
	}

	recommendationRepository struct {
		db *gorm.DB
	}
)

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Seller").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

func (r *recommendationRepository) CreateItemView(ctx context.Context, view *entities.ItemView) error {
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(view).Error
}

func (r *recommendationRepository) GetRecentViewsByUser(ctx context.Context, userID string, limit int) ([]*entities.ItemView, error) {
	var views []*entities.ItemView
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ?", userID).
		Order("viewed_at desc").
		Limit(limit).
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *recommendationRepository) GetAffinityItems(ctx context.Context, categoryIDs []uuid.UUID, excludeSellerID string, limit int) ([]*entities.Item, error) {
	var items []*entities.Item
	if err := withRelations(r.db.WithContext(ctx)).
		Where("status = ?", entities.ItemStatusForSale).
		Where("category_id IN ?", categoryIDs).
		Where("seller_id != ?", excludeSellerID).
		Order("published_at desc, id asc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetMostViewedItems ranks items by total view count, ties broken by item id
// so the ordering is deterministic. Items with no views rank last.
func (r *recommendationRepository) GetMostViewedItems(ctx context.Context, excludeSellerID string, excludeItemIDs []uuid.UUID, limit int) ([]*entities.Item, error) {
	var items []*entities.Item

	query := r.db.WithContext(ctx).
		Model(&entities.Item{}).
		Joins("LEFT JOIN item_views ON item_views.item_id = items.id").
		Where("items.status = ?", entities.ItemStatusForSale).
		Where("items.seller_id != ?", excludeSellerID)

	if len(excludeItemIDs) > 0 {
		query = query.Where("items.id NOT IN ?", excludeItemIDs)
	}

	if err := withRelations(query).
		Group("items.id").
		Order("COUNT(item_views.id) desc, items.id asc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
