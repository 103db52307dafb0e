package services

import (
	"context"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
)

// CategoryService owns the category directory
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create registers a new category
func (s *CategoryService) Create(ctx context.Context, req dto.NewCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{Name: req.Name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{ID: req.ID, Name: req.Name}
	updated, err := s.categories.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.ErrCategoryNotFound
	}
	return toCategoryResponse(category), nil
}

// GetByID retrieves a category
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.ErrCategoryNotFound
	}
	return toCategoryResponse(category), nil
}

// List retrieves categories with offset pagination
func (s *CategoryService) List(ctx context.Context, from, size int) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx, from, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *toCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// Delete removes a category that no event references
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	count, err := s.categories.CountEvents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("category is referenced by existing events")
	}

	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
