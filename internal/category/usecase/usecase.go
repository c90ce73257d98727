package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/category"
	"github.com/fekuna/omnipos-pos-service/internal/category/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.ToLower(strings.TrimSpace(input.Name))

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Category already exists")
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        name,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Description: input.Description,
		IsActive:    true,
	}
	if input.CreatedBy != "" {
		cat.CreatedBy = &input.CreatedBy
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperror.Conflict("Category already exists")
		}
		return nil, err
	}

	uc.logger.Info("Category created", zap.String("category_id", cat.ID), zap.String("name", cat.Name))
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("Category not found")
	}

	if input.DisplayName != nil && strings.TrimSpace(*input.DisplayName) != "" {
		cat.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Description != nil {
		cat.Description = *input.Description
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperror.NotFound("Category not found")
	}
	return uc.repo.Delete(ctx, id)
}
