package item

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"marketplace-backend/domain"
	"marketplace-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeItemRepository keeps items and favorite membership in memory so the
// toggle contract can be exercised end to end.
type fakeItemRepository struct {
	items     map[uuid.UUID]*entities.Item
	favorites map[uuid.UUID]map[uuid.UUID]bool

	searchResult []*entities.Item
	lastFilter   ItemFilter
	lastPage     int
	lastSize     int
}

func newFakeItemRepository() *fakeItemRepository {
	return &fakeItemRepository{
		items:     make(map[uuid.UUID]*entities.Item),
		favorites: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeItemRepository) CreateItem(_ context.Context, item *entities.Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepository) GetItemByID(_ context.Context, id string) (*entities.Item, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	item, ok := f.items[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeItemRepository) UpdateItem(_ context.Context, item *entities.Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepository) DeleteItem(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(f.items, parsed)
	return nil
}

func (f *fakeItemRepository) GetItemsBySeller(_ context.Context, sellerID string, _, _ int) ([]*entities.Item, int64, error) {
	var items []*entities.Item
	for _, it := range f.items {
		if it.SellerID.String() == sellerID {
			items = append(items, it)
		}
	}
	return items, int64(len(items)), nil
}

func (f *fakeItemRepository) FindFilteredItems(_ context.Context, _ string, filter ItemFilter, page, size int) ([]*entities.Item, int64, error) {
	f.lastFilter = filter
	f.lastPage = page
	f.lastSize = size
	return f.searchResult, int64(len(f.searchResult)), nil
}

func (f *fakeItemRepository) ToggleFavorite(_ context.Context, userID, itemID uuid.UUID) (bool, error) {
	set, ok := f.favorites[userID]
	if !ok {
		set = make(map[uuid.UUID]bool)
		f.favorites[userID] = set
	}
	if set[itemID] {
		delete(set, itemID)
		return false, nil
	}
	set[itemID] = true
	return true, nil
}

func (f *fakeItemRepository) GetFavoriteItems(_ context.Context, userID string, _, _ int) ([]*entities.Item, int64, error) {
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, err
	}
	var items []*entities.Item
	for id := range f.favorites[parsed] {
		if it, ok := f.items[id]; ok {
			items = append(items, it)
		}
	}
	return items, int64(len(items)), nil
}

func (f *fakeItemRepository) GetFavoritedItemIDs(_ context.Context, userID string, itemIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	res := make(map[uuid.UUID]bool)
	for _, id := range itemIDs {
		if f.favorites[parsed][id] {
			res[id] = true
		}
	}
	return res, nil
}

type fakeCategoryLookup struct {
	categories map[uuid.UUID]*entities.Category
}

func (f *fakeCategoryLookup) GetCategoryByID(_ context.Context, id string) (*entities.Category, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	c, ok := f.categories[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type fakeUserLookup struct {
	users map[uuid.UUID]*entities.User
}

func (f *fakeUserLookup) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	u, ok := f.users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeS3 struct{}

func (fakeS3) UploadFile(_ context.Context, folder string, file *multipart.FileHeader) (string, error) {
	return "https://bucket.s3.test.amazonaws.com/" + folder + "/" + file.Filename, nil
}

type serviceFixture struct {
	repo       *fakeItemRepository
	categories *fakeCategoryLookup
	users      *fakeUserLookup
	service    ItemService

	buyer    *entities.User
	seller   *entities.User
	category *entities.Category
}

func newServiceFixture() *serviceFixture {
	repo := newFakeItemRepository()
	categories := &fakeCategoryLookup{categories: make(map[uuid.UUID]*entities.Category)}
	users := &fakeUserLookup{users: make(map[uuid.UUID]*entities.User)}

	buyer := &entities.User{ID: uuid.New(), Name: "Buyer"}
	seller := &entities.User{ID: uuid.New(), Name: "Seller"}
	users.users[buyer.ID] = buyer
	users.users[seller.ID] = seller

	cat := &entities.Category{ID: uuid.New(), Name: "Electronics"}
	categories.categories[cat.ID] = cat

	return &serviceFixture{
		repo:       repo,
		categories: categories,
		users:      users,
		service:    NewItemService(repo, categories, users, fakeS3{}),
		buyer:      buyer,
		seller:     seller,
		category:   cat,
	}
}

func (fx *serviceFixture) addItem(status string) *entities.Item {
	item := &entities.Item{
		ID:          uuid.New(),
		SellerID:    fx.seller.ID,
		CategoryID:  fx.category.ID,
		Title:       "used laptop",
		Description: "well kept",
		Price:       150,
		PublishedAt: time.Now(),
		Status:      status,
		Seller:      fx.seller,
		Category:    fx.category,
	}
	fx.repo.items[item.ID] = item
	return item
}

func floatPtr(v float64) *float64 { return &v }

func TestToggleFavorite_DoubleToggleRestoresMembership(t *testing.T) {
	fx := newServiceFixture()
	item := fx.addItem(entities.ItemStatusForSale)
	ctx := context.Background()

	first, err := fx.service.ToggleFavorite(ctx, item.ID.String(), fx.buyer.ID.String())
	require.NoError(t, err)
	assert.True(t, first.Toggled)
	assert.True(t, first.Favorited)

	membership, err := fx.repo.GetFavoritedItemIDs(ctx, fx.buyer.ID.String(), []uuid.UUID{item.ID})
	require.NoError(t, err)
	assert.True(t, membership[item.ID])

	second, err := fx.service.ToggleFavorite(ctx, item.ID.String(), fx.buyer.ID.String())
	require.NoError(t, err)
	assert.True(t, second.Toggled)
	assert.False(t, second.Favorited)

	membership, err = fx.repo.GetFavoritedItemIDs(ctx, fx.buyer.ID.String(), []uuid.UUID{item.ID})
	require.NoError(t, err)
	assert.False(t, membership[item.ID])
}

func TestToggleFavorite_UnknownItemReportsFailure(t *testing.T) {
	fx := newServiceFixture()

	res, err := fx.service.ToggleFavorite(context.Background(), uuid.New().String(), fx.buyer.ID.String())

	require.NoError(t, err)
	assert.False(t, res.Toggled)
}

func TestToggleFavorite_UnknownUserReportsFailure(t *testing.T) {
	fx := newServiceFixture()
	item := fx.addItem(entities.ItemStatusForSale)

	res, err := fx.service.ToggleFavorite(context.Background(), item.ID.String(), uuid.New().String())

	require.NoError(t, err)
	assert.False(t, res.Toggled)
}

func TestSearchItems_PartialGeoInputSkipsGeoFilter(t *testing.T) {
	fx := newServiceFixture()

	req := domain.SearchItemsRequest{
		Latitude:  floatPtr(59.91),
		Longitude: floatPtr(10.75),
		// DistanceKm deliberately absent.
		Page: 0,
		Size: 20,
	}

	_, _, err := fx.service.SearchItems(context.Background(), req, fx.buyer.ID.String())

	require.NoError(t, err)
	assert.Nil(t, fx.repo.lastFilter.Latitude)
	assert.Nil(t, fx.repo.lastFilter.Longitude)
	assert.Nil(t, fx.repo.lastFilter.DistanceKm)
}

func TestSearchItems_FullGeoInputAppliesFilterAndDistance(t *testing.T) {
	fx := newServiceFixture()
	item := fx.addItem(entities.ItemStatusForSale)
	item.Latitude = floatPtr(60.91)
	item.Longitude = floatPtr(10.75)
	fx.repo.searchResult = []*entities.Item{item}

	req := domain.SearchItemsRequest{
		Latitude:   floatPtr(59.91),
		Longitude:  floatPtr(10.75),
		DistanceKm: floatPtr(120),
		Page:       0,
		Size:       20,
	}

	res, count, err := fx.service.SearchItems(context.Background(), req, fx.buyer.ID.String())

	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.NotNil(t, fx.repo.lastFilter.DistanceKm)
	assert.EqualValues(t, 120, *fx.repo.lastFilter.DistanceKm)

	require.Len(t, res, 1)
	require.NotNil(t, res[0].DistanceKm)
	// One degree of latitude apart, roughly 111 km.
	assert.InDelta(t, 111.2, *res[0].DistanceKm, 1.0)
}

func TestSearchItems_FilterPassthrough(t *testing.T) {
	fx := newServiceFixture()

	req := domain.SearchItemsRequest{
		MinPrice:    floatPtr(100),
		MaxPrice:    floatPtr(200),
		CategoryIDs: []string{fx.category.ID.String()},
		Q:           "laptop",
		Page:        2,
		Size:        10,
	}

	_, _, err := fx.service.SearchItems(context.Background(), req, fx.buyer.ID.String())

	require.NoError(t, err)
	assert.EqualValues(t, 100, *fx.repo.lastFilter.MinPrice)
	assert.EqualValues(t, 200, *fx.repo.lastFilter.MaxPrice)
	assert.Equal(t, []uuid.UUID{fx.category.ID}, fx.repo.lastFilter.CategoryIDs)
	assert.Equal(t, "laptop", fx.repo.lastFilter.Query)
	assert.Equal(t, 2, fx.repo.lastPage)
	assert.Equal(t, 10, fx.repo.lastSize)
}

func TestSearchItems_BadCategoryID(t *testing.T) {
	fx := newServiceFixture()

	req := domain.SearchItemsRequest{CategoryIDs: []string{"not-a-uuid"}}

	_, _, err := fx.service.SearchItems(context.Background(), req, fx.buyer.ID.String())

	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestGetFavoriteItems_AllRowsFlaggedFavorited(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	first := fx.addItem(entities.ItemStatusForSale)
	second := fx.addItem(entities.ItemStatusForSale)

	_, err := fx.service.ToggleFavorite(ctx, first.ID.String(), fx.buyer.ID.String())
	require.NoError(t, err)
	_, err = fx.service.ToggleFavorite(ctx, second.ID.String(), fx.buyer.ID.String())
	require.NoError(t, err)

	res, count, err := fx.service.GetFavoriteItems(ctx, fx.buyer.ID.String(), 0, 20)

	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, res, 2)
	for _, r := range res {
		assert.True(t, r.FavoritedByCurrentUser)
	}
}

func TestToItemResponse_Projection(t *testing.T) {
	fx := newServiceFixture()
	item := fx.addItem(entities.ItemStatusForSale)
	item.Images = []*entities.Image{
		{URL: "https://img/1.jpg", Position: 0},
		{URL: "https://img/2.jpg", Position: 1},
	}

	res := ToItemResponse(item, true)

	assert.Equal(t, item.ID.String(), res.ID)
	assert.Equal(t, "Seller", res.SellerName)
	assert.Equal(t, "Electronics", res.CategoryName)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, res.Images)
	assert.True(t, res.FavoritedByCurrentUser)
	assert.Empty(t, res.ReservedBy)
}

func TestToItemResponse_ReservedByOnlyWhenReserved(t *testing.T) {
	fx := newServiceFixture()
	buyerID := fx.buyer.ID

	item := fx.addItem(entities.ItemStatusReserved)
	item.ReservedBy = &buyerID
	assert.Equal(t, buyerID.String(), ToItemResponse(item, false).ReservedBy)

	sold := fx.addItem(entities.ItemStatusSold)
	sold.ReservedBy = &buyerID
	assert.Empty(t, ToItemResponse(sold, false).ReservedBy)
}

func TestCreateItem_IncompleteLocationRejected(t *testing.T) {
	fx := newServiceFixture()

	req := domain.CreateItemRequest{
		Title:       "bike",
		Description: "city bike",
		CategoryID:  fx.category.ID.String(),
		Price:       50,
		Latitude:    floatPtr(59.91),
	}

	_, err := fx.service.CreateItem(context.Background(), req, fx.seller.ID.String())

	assert.ErrorIs(t, err, domain.ErrIncompleteLocation)
}

func TestCreateItem_UnknownCategory(t *testing.T) {
	fx := newServiceFixture()

	req := domain.CreateItemRequest{
		Title:       "bike",
		Description: "city bike",
		CategoryID:  uuid.New().String(),
		Price:       50,
	}

	_, err := fx.service.CreateItem(context.Background(), req, fx.seller.ID.String())

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCreateItem_StartsForSale(t *testing.T) {
	fx := newServiceFixture()

	req := domain.CreateItemRequest{
		Title:       "bike",
		Description: "city bike",
		CategoryID:  fx.category.ID.String(),
		Price:       50,
	}

	res, err := fx.service.CreateItem(context.Background(), req, fx.seller.ID.String())

	require.NoError(t, err)
	assert.Equal(t, entities.ItemStatusForSale, res.Status)
	assert.Equal(t, fx.seller.ID.String(), res.SellerID)
	assert.False(t, res.FavoritedByCurrentUser)
}

func TestUpdateItem_OnlySellerMayEdit(t *testing.T) {
	fx := newServiceFixture()
	item := fx.addItem(entities.ItemStatusForSale)

	err := fx.service.UpdateItem(context.Background(), item.ID.String(), domain.UpdateItemRequest{Title: "new"}, fx.buyer.ID.String())

	assert.ErrorIs(t, err, domain.ErrNotItemSeller)
}

func TestUpdateItem_MarkSoldClearsReservation(t *testing.T) {
	fx := newServiceFixture()
	buyerID := fx.buyer.ID
	item := fx.addItem(entities.ItemStatusReserved)
	item.ReservedBy = &buyerID

	err := fx.service.UpdateItem(context.Background(), item.ID.String(), domain.UpdateItemRequest{Status: entities.ItemStatusSold}, fx.seller.ID.String())

	require.NoError(t, err)
	assert.Equal(t, entities.ItemStatusSold, item.Status)
	assert.Nil(t, item.ReservedBy)
}

func TestUpdateItem_ReservedStatusNotSettable(t *testing.T) {
	fx := newServiceFixture()
	item := fx.addItem(entities.ItemStatusForSale)

	err := fx.service.UpdateItem(context.Background(), item.ID.String(), domain.UpdateItemRequest{Status: entities.ItemStatusReserved}, fx.seller.ID.String())

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
