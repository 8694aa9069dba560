package item

import (
	"context"
	"strings"

	"marketplace-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ItemFilter holds the optional discovery predicates. Nil pointers and
	// empty slices impose no constraint.
	ItemFilter struct {
		MinPrice    *float64
		MaxPrice    *float64
		CategoryIDs []uuid.UUID
		Query       string
		Latitude    *float64
		Longitude   *float64
		DistanceKm  *float64
	}

	ItemRepository interface {
		CreateItem(ctx context.Context, item *entities.Item) error
		GetItemByID(ctx context.Context, id string) (*entities.Item, error)
		UpdateItem(ctx context.Context, item *entities.Item) error
		DeleteItem(ctx context.Context, id string) error
		GetItemsBySeller(ctx context.Context, sellerID string, page, size int) ([]*entities.Item, int64, error)
		FindFilteredItems(ctx context.Context, currentUserID string, filter ItemFilter, page, size int) ([]*entities.Item, int64, error)

		ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
		GetFavoriteItems(ctx context.Context, userID string, page, size int) ([]*entities.Item, int64, error)
		GetFavoritedItemIDs(ctx context.Context, userID string, itemIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	itemRepository struct {
		db *gorm.DB
	}
)

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Seller").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

func (r *itemRepository) CreateItem(ctx context.Context, item *entities.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	var item entities.Item
	if err := withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item *entities.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Item{}).Error
}

func (r *itemRepository) GetItemsBySeller(ctx context.Context, sellerID string, page, size int) ([]*entities.Item, int64, error) {
	var items []*entities.Item
	var count int64

	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)

	if err := query.Model(&entities.Item{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withRelations(query).
		Order("published_at desc, id asc").
		Offset(page * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

// haversineSQL is the great-circle distance from the supplied point in km,
// same formula the product defines (R = 6371). The cosine is clamped so
// floating point drift cannot push acos out of its domain.
const haversineSQL = `6371 * acos(LEAST(1.0, GREATEST(-1.0,
	cos(radians(?)) * cos(radians(latitude)) *
	cos(radians(longitude) - radians(?)) +
	sin(radians(?)) * sin(radians(latitude)))))`

func (r *itemRepository) FindFilteredItems(ctx context.Context, currentUserID string, filter ItemFilter, page, size int) ([]*entities.Item, int64, error) {
	var items []*entities.Item
	var count int64

	query := r.db.WithContext(ctx).
		Where("status = ?", entities.ItemStatusForSale).
		Where("seller_id != ?", currentUserID)

	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Latitude != nil && filter.Longitude != nil && filter.DistanceKm != nil {
		// Items without a location never match a geo filter.
		query = query.Where(
			"latitude IS NOT NULL AND longitude IS NOT NULL AND "+haversineSQL+" <= ?",
			*filter.Latitude, *filter.Longitude, *filter.Latitude, *filter.DistanceKm,
		)
	}

	if err := query.Model(&entities.Item{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	// Fixed ordering keeps consecutive pages free of duplicates and gaps.
	if err := withRelations(query).
		Order("published_at desc, id asc").
		Offset(page * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

// ToggleFavorite flips membership inside one transaction so two concurrent
// toggles on the same pair cannot both insert or both miss the delete.
func (r *itemRepository) ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	var favorited bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&entities.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return nil
		}

		if err := tx.Create(&entities.Favorite{UserID: userID, ItemID: itemID}).Error; err != nil {
			return err
		}
		favorited = true
		return nil
	})

	return favorited, err
}

func (r *itemRepository) GetFavoriteItems(ctx context.Context, userID string, page, size int) ([]*entities.Item, int64, error) {
	var items []*entities.Item
	var count int64

	query := r.db.WithContext(ctx).
		Model(&entities.Item{}).
		Joins("JOIN favorites ON favorites.item_id = items.id").
		Where("favorites.user_id = ?", userID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withRelations(query).
		Order("favorites.created_at desc, items.id asc").
		Offset(page * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *itemRepository) GetFavoritedItemIDs(ctx context.Context, userID string, itemIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	favorited := make(map[uuid.UUID]bool, len(itemIDs))
	if len(itemIDs) == 0 {
		return favorited, nil
	}

	var favorites []entities.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Find(&favorites).Error; err != nil {
		return nil, err
	}

	for _, f := range favorites {
		favorited[f.ItemID] = true
	}
	return favorited, nil
}
