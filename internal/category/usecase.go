package category

import (
	"context"

	"github.com/onsari/catalog-category-service/internal/category/dto"
	"github.com/onsari/catalog-category-service/internal/model"
)

type UseCase interface {
	GetCategories(ctx context.Context, f *dto.CategoryFilters) (*dto.CategoryList, error)
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput, operatorID int64) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, input *dto.UpdateCategoryInput, operatorID int64) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64, cascade bool) (bool, error)
}
