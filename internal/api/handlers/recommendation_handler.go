package handlers

import (
	"marketplace-backend/domain"
	"marketplace-backend/internal/api/presenters"
	"marketplace-backend/pkg/recommendation"

	"github.com/gofiber/fiber/v2"
)

type (
	RecommendationHandler interface {
		RecordView(c *fiber.Ctx) error
		GetRecommendations(c *fiber.Ctx) error
	}

	recommendationHandler struct {
		recommendationService recommendation.RecommendationService
	}
)

func NewRecommendationHandler(recommendationService recommendation.RecommendationService) RecommendationHandler {
	return &recommendationHandler{
		recommendationService: recommendationService,
	}
}

func (h *recommendationHandler) RecordView(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	res, err := h.recommendationService.RecordView(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordView, err)
	}

	if !res.Recorded {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedRecordView, domain.ErrViewItemNotFound)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordView)
}

func (h *recommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recommendationService.GetRecommendations(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecommendations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"items": res}, fiber.StatusOK, domain.MessageSuccessGetRecommendations)
}
