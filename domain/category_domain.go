package domain

import (
	"errors"
)

var (
	MessageSuccessGetCategories  = "categories retrieved successfully"
	MessageSuccessCreateCategory = "category created successfully"

	MessageFailedGetCategories  = "failed to retrieve categories"
	MessageFailedCreateCategory = "failed to create category"

	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

type (
	CreateCategoryRequest struct {
		Name string `json:"name" validate:"required"`
	}

	CategoryResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
