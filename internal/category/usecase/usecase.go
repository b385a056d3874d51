package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/onsari/catalog-category-service/internal/auth"
	"github.com/onsari/catalog-category-service/internal/category"
	"github.com/onsari/catalog-category-service/internal/category/dto"
	"github.com/onsari/catalog-category-service/internal/category/tree"
	"github.com/onsari/catalog-category-service/internal/logger"
	"github.com/onsari/catalog-category-service/internal/model"
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

// GetCategories answers a list request as a forest: base-filtered rows are
// matched against the keyword (or all taken as matched), closed under
// ancestors and descendants so every hit keeps its context, then assembled
// into a tree rooted at the requested parent.
//
// Page/PageSize are accepted on the filter but the whole forest is returned
// in one response; see DESIGN.md.
func (uc *categoryUseCase) GetCategories(ctx context.Context, f *dto.CategoryFilters) (*dto.CategoryList, error) {
	if f == nil {
		f = &dto.CategoryFilters{}
	}

	rows, err := uc.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	matched := make(map[int64]struct{}, len(rows))
	if f.Keyword != "" {
		ids, err := uc.repo.FindIDsMatching(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			matched[id] = struct{}{}
		}
	} else {
		for _, row := range rows {
			matched[row.ID] = struct{}{}
		}
	}

	relevant := tree.Closure(rows, matched)

	filtered := make([]model.Category, 0, len(relevant))
	for _, row := range rows {
		if _, ok := relevant[row.ID]; ok {
			filtered = append(filtered, row)
		}
	}

	rootID := model.RootParentID
	if f.ParentID != nil {
		rootID = *f.ParentID
	}

	return &dto.CategoryList{List: tree.Build(filtered, rootID)}, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput, operatorID int64) (*model.Category, error) {
	if input.ParentID != model.RootParentID {
		parent, err := uc.repo.FindByID(ctx, input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, category.ErrParentNotFound
		}
	}

	// Advisory pre-check; the store's unique constraint has the final word
	// when two creates race on the same code.
	if input.Code != "" {
		existing, err := uc.repo.FindByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, category.ErrCodeTaken
		}
	}

	status := input.Status
	if status == "" {
		status = model.StatusActive
	}

	now := time.Now()
	c := &model.Category{
		ParentID:    input.ParentID,
		Name:        input.Name,
		Code:        optional(input.Code),
		Description: optional(input.Description),
		IconURL:     optional(input.IconURL),
		SortOrder:   input.SortOrder,
		Status:      status,
		Level:       input.Level,
		CreatedBy:   operatorID,
		UpdatedBy:   operatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := uc.repo.Create(ctx, c)
	if err != nil {
		uc.logger.Error("failed to create category",
			zap.String("request_id", auth.GetRequestID(ctx)),
			zap.String("category_name", input.Name),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("category created",
		zap.String("request_id", auth.GetRequestID(ctx)),
		zap.Int64("category_id", id),
		zap.Int64("operator_id", operatorID))

	created, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		c.ID = id
		return c, nil
	}
	return created, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id int64, input *dto.UpdateCategoryInput, operatorID int64) (*model.Category, error) {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, category.ErrCategoryNotFound
	}

	if input.Code != nil && *input.Code != "" {
		other, err := uc.repo.FindByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, category.ErrCodeTaken
		}
	}

	if _, err := uc.repo.Update(ctx, id, input, operatorID); err != nil {
		uc.logger.Error("failed to update category",
			zap.String("request_id", auth.GetRequestID(ctx)),
			zap.Int64("category_id", id),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("category updated",
		zap.String("request_id", auth.GetRequestID(ctx)),
		zap.Int64("category_id", id),
		zap.Int64("operator_id", operatorID))

	return uc.repo.FindByID(ctx, id)
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64, cascade bool) (bool, error) {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, category.ErrCategoryNotFound
	}

	children, err := uc.repo.FindChildren(ctx, id)
	if err != nil {
		return false, err
	}
	if len(children) > 0 && !cascade {
		return false, category.ErrHasChildren
	}

	// Depth-first, children before their parent at every level, the target
	// id last. The whole batch goes through one store transaction.
	ids := []int64{}
	if cascade {
		var collect func(parentID int64) error
		collect = func(parentID int64) error {
			kids, err := uc.repo.FindChildren(ctx, parentID)
			if err != nil {
				return err
			}
			for _, kid := range kids {
				if err := collect(kid.ID); err != nil {
					return err
				}
				ids = append(ids, kid.ID)
			}
			return nil
		}
		if err := collect(id); err != nil {
			return false, err
		}
	}
	ids = append(ids, id)

	affected, err := uc.repo.DeleteMany(ctx, ids)
	if err != nil {
		uc.logger.Error("failed to delete category",
			zap.String("request_id", auth.GetRequestID(ctx)),
			zap.Int64("category_id", id),
			zap.Error(err))
		return false, err
	}

	uc.logger.Info("category deleted",
		zap.String("request_id", auth.GetRequestID(ctx)),
		zap.Int64("category_id", id),
		zap.Int("descendants", len(ids)-1))

	return affected > 0, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
