package item

import (
	"context"
	"errors"
	"time"

	"marketplace-backend/domain"
	"marketplace-backend/entities"
	"marketplace-backend/internal/utils"
	"marketplace-backend/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ItemService interface {
		CreateItem(ctx context.Context, req domain.CreateItemRequest, userID string) (domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) error
		DeleteItem(ctx context.Context, id string, userID string) error
		GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error)
		GetMyItems(ctx context.Context, userID string, page, size int) ([]domain.ItemResponse, int64, error)
		SearchItems(ctx context.Context, req domain.SearchItemsRequest, userID string) ([]domain.ItemResponse, int64, error)
		ToggleFavorite(ctx context.Context, itemID string, userID string) (domain.ToggleFavoriteResponse, error)
		GetFavoriteItems(ctx context.Context, userID string, page, size int) ([]domain.ItemResponse, int64, error)
	}

	itemService struct {
		itemRepository     ItemRepository
		categoryRepository CategoryLookup
		userRepository     UserLookup
		s3                 storage.AwsS3
	}

	// CategoryLookup and UserLookup are the narrow collaborator contracts the
	// discovery core needs; the full repositories satisfy them.
	CategoryLookup interface {
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
	}

	UserLookup interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}
)

func NewItemService(itemRepository ItemRepository, categoryRepository CategoryLookup, userRepository UserLookup, s3 storage.AwsS3) ItemService {
	return &itemService{
		itemRepository:     itemRepository,
		categoryRepository: categoryRepository,
		userRepository:     userRepository,
		s3:                 s3,
	}
}

// ToItemResponse projects an item with its preloaded relations into the flat
// read-only DTO returned across the API boundary.
func ToItemResponse(item *entities.Item, favorited bool) domain.ItemResponse {
	res := domain.ItemResponse{
		ID:                     item.ID.String(),
		SellerID:               item.SellerID.String(),
		CategoryID:             item.CategoryID.String(),
		Title:                  item.Title,
		Description:            item.Description,
		Price:                  item.Price,
		Latitude:               item.Latitude,
		Longitude:              item.Longitude,
		PublishedAt:            item.PublishedAt,
		Status:                 item.Status,
		Images:                 make([]string, 0, len(item.Images)),
		FavoritedByCurrentUser: favorited,
	}

	if item.Seller != nil {
		res.SellerName = item.Seller.Name
	}
	if item.Category != nil {
		res.CategoryName = item.Category.Name
	}
	if item.Status == entities.ItemStatusReserved && item.ReservedBy != nil {
		res.ReservedBy = item.ReservedBy.String()
	}
	for _, img := range item.Images {
		res.Images = append(res.Images, img.URL)
	}

	return res
}

func (s *itemService) projectItems(ctx context.Context, items []*entities.Item, userID string) ([]domain.ItemResponse, error) {
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
		res = append(res, ToItemResponse(it, favorited[it.ID]))
	}
	return res, nil
}

func (s *itemService) CreateItem(ctx context.Context, req domain.CreateItemRequest, userID string) (domain.ItemResponse, error) {
	sellerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ItemResponse{}, domain.ErrParseUUID
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return domain.ItemResponse{}, domain.ErrParseUUID
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return domain.ItemResponse{}, domain.ErrIncompleteLocation
	}
	if req.Price < 0 {
		return domain.ItemResponse{}, domain.ErrInvalidPrice
	}

	if _, err := s.categoryRepository.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrCategoryNotFound
		}
		return domain.ItemResponse{}, err
	}

	item := &entities.Item{
		ID:          uuid.New(),
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		PublishedAt: time.Now(),
		Status:      entities.ItemStatusForSale,
	}

	for i, file := range req.Images {
		url, err := s.s3.UploadFile(ctx, "items/"+sellerID.String(), file)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		item.Images = append(item.Images, &entities.Image{
			ID:       uuid.New(),
			ItemID:   item.ID,
			URL:      url,
			Position: i,
		})
	}

	if err := s.itemRepository.CreateItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	created, err := s.itemRepository.GetItemByID(ctx, item.ID.String())
	if err != nil {
		return domain.ItemResponse{}, err
	}

	return ToItemResponse(created, false), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) error {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}

	if item.SellerID.String() != userID {
		return domain.ErrNotItemSeller
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return domain.ErrParseUUID
		}
		if _, err := s.categoryRepository.GetCategoryByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCategoryNotFound
			}
			return err
		}
		item.CategoryID = categoryID
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.Status != "" {
		switch req.Status {
		case entities.ItemStatusForSale, entities.ItemStatusSold:
			item.Status = req.Status
			item.ReservedBy = nil
		default:
			// RESERVED is set by the reservation flow, not by edits.
			return domain.ErrInvalidStatus
		}
	}

	return s.itemRepository.UpdateItem(ctx, item)
}

func (s *itemService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}

	if item.SellerID.String() != userID {
		return domain.ErrNotItemSeller
	}

	return s.itemRepository.DeleteItem(ctx, id)
}

func (s *itemService) GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrItemNotFound
		}
		return domain.ItemResponse{}, err
	}

	favorited, err := s.itemRepository.GetFavoritedItemIDs(ctx, userID, []uuid.UUID{item.ID})
	if err != nil {
		return domain.ItemResponse{}, err
	}

	return ToItemResponse(item, favorited[item.ID]), nil
}

func (s *itemService) GetMyItems(ctx context.Context, userID string, page, size int) ([]domain.ItemResponse, int64, error) {
	items, count, err := s.itemRepository.GetItemsBySeller(ctx, userID, page, size)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.projectItems(ctx, items, userID)
	if err != nil {
		return nil, 0, err
	}
	return res, count, nil
}

func (s *itemService) SearchItems(ctx context.Context, req domain.SearchItemsRequest, userID string) ([]domain.ItemResponse, int64, error) {
	filter := ItemFilter{
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Query:    req.Q,
	}

	for _, raw := range req.CategoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, 0, domain.ErrParseUUID
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	// The geo filter only activates when all three inputs are present;
	// partially supplied coordinates are ignored rather than rejected.
	geoActive := req.Latitude != nil && req.Longitude != nil && req.DistanceKm != nil
	if geoActive {
		filter.Latitude = req.Latitude
		filter.Longitude = req.Longitude
		filter.DistanceKm = req.DistanceKm
	}

	items, count, err := s.itemRepository.FindFilteredItems(ctx, userID, filter, req.Page, req.Size)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.projectItems(ctx, items, userID)
	if err != nil {
		return nil, 0, err
	}

	if geoActive {
		for i := range res {
			if res[i].Latitude != nil && res[i].Longitude != nil {
				d := utils.HaversineKm(*req.Latitude, *req.Longitude, *res[i].Latitude, *res[i].Longitude)
				res[i].DistanceKm = &d
			}
		}
	}

	return res, count, nil
}

func (s *itemService) ToggleFavorite(ctx context.Context, itemID string, userID string) (domain.ToggleFavoriteResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, domain.ErrParseUUID
	}
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, domain.ErrParseUUID
	}

	// Unknown user or item is a failure result, not an error.
	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ToggleFavoriteResponse{Toggled: false}, nil
		}
		return domain.ToggleFavoriteResponse{}, err
	}
	if _, err := s.itemRepository.GetItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ToggleFavoriteResponse{Toggled: false}, nil
		}
		return domain.ToggleFavoriteResponse{}, err
	}

	favorited, err := s.itemRepository.ToggleFavorite(ctx, userUUID, itemUUID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	return domain.ToggleFavoriteResponse{Toggled: true, Favorited: favorited}, nil
}

func (s *itemService) GetFavoriteItems(ctx context.Context, userID string, page, size int) ([]domain.ItemResponse, int64, error) {
	items, count, err := s.itemRepository.GetFavoriteItems(ctx, userID, page, size)
	if err != nil {
		return nil, 0, err
	}

	// Every row here is a favorite by definition.
	res := make([]domain.ItemResponse, 0, len(items))
	for _, it := range items {
		res = append(res, ToItemResponse(it, true))
	}
	return res, count, nil
}
