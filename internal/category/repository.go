package category

import (
	"context"

	"github.com/onsari/catalog-category-service/internal/category/dto"
	"github.com/onsari/catalog-category-service/internal/model"
)

// Repository is the narrow query/command surface over the flat categories
// table. FindAll and FindIDsMatching apply the same base filter (status,
// level); only the latter adds the keyword clauses.
type Repository interface {
	FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error)
	FindIDsMatching(ctx context.Context, f *dto.CategoryFilters) ([]int64, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindByCode(ctx context.Context, code string) (*model.Category, error)
	FindChildren(ctx context.Context, parentID int64) ([]model.Category, error)
	Create(ctx context.Context, c *model.Category) (int64, error)
	Update(ctx context.Context, id int64, input *dto.UpdateCategoryInput, operatorID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// DeleteMany deletes the given ids in order inside a single transaction
	// and reports the rows affected by the final id.
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
}
