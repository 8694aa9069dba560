package handlers

import (
	"errors"
	"strconv"
	"strings"

	"marketplace-backend/domain"
	"marketplace-backend/internal/api/presenters"
	"marketplace-backend/pkg/item"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ItemHandler interface {
		CreateItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		GetItemDetails(c *fiber.Ctx) error
		GetMyItems(c *fiber.Ctx) error
		SearchItems(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		GetFavoriteItems(c *fiber.Ctx) error
	}

	itemHandler struct {
		itemService item.ItemService
		validator   *validator.Validate
	}
)

func NewItemHandler(itemService item.ItemService, validator *validator.Validate) ItemHandler {
	return &itemHandler{
		itemService: itemService,
		validator:   validator,
	}
}

func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	size, err := strconv.Atoi(c.Query("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}

	return page, size
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *itemHandler) CreateItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		req.Images = form.File["images"]
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateItem, err)
	}

	res, err := h.itemService.CreateItem(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCreateItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateItem)
}

func (h *itemHandler) UpdateItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.UpdateItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItem, err)
	}

	if err := h.itemService.UpdateItem(c.Context(), itemID, *req, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateItem, err)
		case errors.Is(err, domain.ErrNotItemSeller):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUpdateItem, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItem, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateItem)
}

func (h *itemHandler) DeleteItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.itemService.DeleteItem(c.Context(), itemID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteItem, err)
		case errors.Is(err, domain.ErrNotItemSeller):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteItem, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteItem, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteItem)
}

func (h *itemHandler) GetItemDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	res, err := h.itemService.GetItemByID(c.Context(), itemID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetItem)
}

func (h *itemHandler) GetMyItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, size := parsePagination(c)

	items, count, err := h.itemService.GetMyItems(c.Context(), userID, page, size)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"size":        size,
			"total":       count,
			"total_pages": (count + int64(size) - 1) / int64(size),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetItems)
}

func (h *itemHandler) SearchItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, size := parsePagination(c)

	req := domain.SearchItemsRequest{
		Q:    c.Query("q"),
		Page: page,
		Size: size,
	}

	var err error
	if req.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}
	if req.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}
	if req.Latitude, err = queryFloat(c, "latitude"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}
	if req.Longitude, err = queryFloat(c, "longitude"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}
	if req.DistanceKm, err = queryFloat(c, "distance_km"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}

	if raw := c.Query("category_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.CategoryIDs = append(req.CategoryIDs, id)
			}
		}
	}

	items, count, err := h.itemService.SearchItems(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"size":        size,
			"total":       count,
			"total_pages": (count + int64(size) - 1) / int64(size),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetItems)
}

func (h *itemHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	res, err := h.itemService.ToggleFavorite(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleFavorite, err)
	}

	if !res.Toggled {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedToggleFavorite, domain.ErrItemNotFound)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFavorite)
}

func (h *itemHandler) GetFavoriteItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, size := parsePagination(c)

	items, count, err := h.itemService.GetFavoriteItems(c.Context(), userID, page, size)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"size":        size,
			"total":       count,
			"total_pages": (count + int64(size) - 1) / int64(size),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}
