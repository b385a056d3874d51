package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/onsari/catalog-category-service/internal/category"
	"github.com/onsari/catalog-category-service/internal/category/dto"
	"github.com/onsari/catalog-category-service/internal/model"
)

var _ category.Repository = (*MemoryRepository)(nil)

// MemoryRepository is a mutex-guarded in-memory implementation of the store
// contract, used by tests. Rows are kept in insertion order so sibling
// tie-breaks behave like the SQL store's category_id ordering.
type MemoryRepository struct {
	mu     sync.RWMutex
	rows   []model.Category
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func matchesBase(c *model.Category, f *dto.CategoryFilters) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Level != nil && c.Level != *f.Level {
		return false
	}
	return true
}

func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []model.Category{}
	for _, row := range r.rows {
		if matchesBase(&row, f) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (r *MemoryRepository) FindIDsMatching(ctx context.Context, f *dto.CategoryFilters) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := f.SearchFields
	if len(fields) == 0 {
		fields = []string{dto.SearchFieldName}
	}
	searchName := false
	searchCode := false
	for _, field := range fields {
		switch field {
		case dto.SearchFieldName:
			searchName = true
		case dto.SearchFieldCode:
			searchCode = true
		}
	}
	if !searchName && !searchCode {
		return nil, nil
	}

	keyword := strings.ToLower(f.Keyword)
	ids := []int64{}
	for _, row := range r.rows {
		if !matchesBase(&row, f) {
			continue
		}
		if searchName && strings.Contains(strings.ToLower(row.Name), keyword) {
			ids = append(ids, row.ID)
			continue
		}
		if searchCode && row.Code != nil && strings.Contains(strings.ToLower(*row.Code), keyword) {
			ids = append(ids, row.ID)
		}
	}
	return ids, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByID(id), nil
}

func (r *MemoryRepository) findByID(id int64) *model.Category {
	for i := range r.rows {
		if r.rows[i].ID == id {
			row := r.rows[i]
			return &row
		}
	}
	return nil
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code string) (*model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.rows {
		if r.rows[i].Code != nil && *r.rows[i].Code == code {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindChildren(ctx context.Context, parentID int64) ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	children := []model.Category{}
	for _, row := range r.rows {
		if row.ParentID == parentID {
			children = append(children, row)
		}
	}
	return children, nil
}

func (r *MemoryRepository) Create(ctx context.Context, c *model.Category) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirrors the SQL store's unique constraint on category_code.
	if c.Code != nil {
		for i := range r.rows {
			if r.rows[i].Code != nil && *r.rows[i].Code == *c.Code {
				return 0, category.ErrCodeTaken
			}
		}
	}

	row := *c
	row.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, row)
	return row.ID, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int64, input *dto.UpdateCategoryInput, operatorID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if input.Code != nil {
			for j := range r.rows {
				if j != i && r.rows[j].Code != nil && *r.rows[j].Code == *input.Code {
					return 0, category.ErrCodeTaken
				}
			}
			code := *input.Code
			r.rows[i].Code = &code
		}
		if input.Name != nil {
			r.rows[i].Name = *input.Name
		}
		if input.Description != nil {
			description := *input.Description
			r.rows[i].Description = &description
		}
		if input.IconURL != nil {
			iconURL := *input.IconURL
			r.rows[i].IconURL = &iconURL
		}
		if input.SortOrder != nil {
			r.rows[i].SortOrder = *input.SortOrder
		}
		if input.Status != nil {
			r.rows[i].Status = *input.Status
		}
		if input.Level != nil {
			r.rows[i].Level = *input.Level
		}
		r.rows[i].UpdatedBy = operatorID
		r.rows[i].UpdatedAt = time.Now()
		return 1, nil
	}
	return 0, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delete(id), nil
}

func (r *MemoryRepository) delete(id int64) int64 {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return 1
		}
	}
	return 0
}

func (r *MemoryRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var affected int64
	for _, id := range ids {
		affected = r.delete(id)
	}
	return affected, nil
}
