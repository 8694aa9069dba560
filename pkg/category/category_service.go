package category

import (
	"context"
	"errors"

	"marketplace-backend/domain"
	"marketplace-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CategoryService interface {
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error)
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	existing, err := s.categoryRepository.GetCategoryByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CategoryResponse{}, err
	}
	if existing != nil {
		return domain.CategoryResponse{}, domain.ErrCategoryAlreadyExists
	}

	category := &entities.Category{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}

	return domain.CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
	}, nil
}

func (s *categoryService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, domain.CategoryResponse{
			ID:   c.ID.String(),
			Name: c.Name,
		})
	}
	return res, nil
}
