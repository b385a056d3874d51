package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/onsari/catalog-category-service/internal/category"
	"github.com/onsari/catalog-category-service/internal/category/dto"
	"github.com/onsari/catalog-category-service/internal/model"
)

var _ category.Repository = (*PGRepository)(nil)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// baseConditions renders the status/level filter shared by FindAll and
// FindIDsMatching into positional clauses.
func baseConditions(f *dto.CategoryFilters) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if f.Status != "" {
		args = append(args, f.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Level != nil {
		args = append(args, *f.Level)
		conditions = append(conditions, fmt.Sprintf("level = $%d", len(args)))
	}
	return conditions, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	conditions, args := baseConditions(f)
	query := `SELECT * FROM categories` + whereClause(conditions) + ` ORDER BY category_id ASC`

	categories := []model.Category{}
	if err := r.DB.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, errors.Wrap(err, "find all categories")
	}
	return categories, nil
}

func (r *PGRepository) FindIDsMatching(ctx context.Context, f *dto.CategoryFilters) ([]int64, error) {
	conditions, args := baseConditions(f)

	fields := f.SearchFields
	if len(fields) == 0 {
		fields = []string{dto.SearchFieldName}
	}

	likes := []string{}
	for _, field := range fields {
		switch field {
		case dto.SearchFieldName:
			args = append(args, "%"+f.Keyword+"%")
			likes = append(likes, fmt.Sprintf("category_name ILIKE $%d", len(args)))
		case dto.SearchFieldCode:
			args = append(args, "%"+f.Keyword+"%")
			likes = append(likes, fmt.Sprintf("category_code ILIKE $%d", len(args)))
		}
	}
	// None of the requested fields are searchable: nothing matches.
	if len(likes) == 0 {
		return nil, nil
	}
	conditions = append(conditions, "("+strings.Join(likes, " OR ")+")")

	query := `SELECT category_id FROM categories` + whereClause(conditions)

	ids := []int64{}
	if err := r.DB.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, errors.Wrap(err, "find matching category ids")
	}
	return ids, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	query := `SELECT * FROM categories WHERE category_id = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category by id")
	}
	return &c, nil
}

func (r *PGRepository) FindByCode(ctx context.Context, code string) (*model.Category, error) {
	var c model.Category
	query := `SELECT * FROM categories WHERE category_code = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &c, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category by code")
	}
	return &c, nil
}

func (r *PGRepository) FindChildren(ctx context.Context, parentID int64) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT * FROM categories WHERE parent_id = $1 ORDER BY sort_order DESC, category_id ASC`
	if err := r.DB.SelectContext(ctx, &categories, query, parentID); err != nil {
		return nil, errors.Wrap(err, "find category children")
	}
	return categories, nil
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) (int64, error) {
	query := `
        INSERT INTO categories (parent_id, category_name, category_code, description, icon_url, sort_order, status, level, created_by, updated_by, created_at, updated_at)
        VALUES (:parent_id, :category_name, :category_code, :description, :icon_url, :sort_order, :status, :level, :created_by, :updated_by, :created_at, :updated_at)
        RETURNING category_id
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, c)
	if err != nil {
		if isUniqueViolation(err) {
			// The unique constraint on category_code is the authoritative
			// conflict signal; the use-case pre-check is advisory only.
			return 0, category.ErrCodeTaken
		}
		return 0, errors.Wrap(err, "insert category")
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, errors.Wrap(err, "scan inserted category id")
		}
	}
	if err := rows.Err(); err != nil {
		return 0, errors.Wrap(err, "read inserted category id")
	}
	return id, nil
}

func (r *PGRepository) Update(ctx context.Context, id int64, input *dto.UpdateCategoryInput, operatorID int64) (int64, error) {
	sets := []string{}
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		appendSet("category_name", *input.Name)
	}
	if input.Code != nil {
		appendSet("category_code", *input.Code)
	}
	if input.Description != nil {
		appendSet("description", *input.Description)
	}
	if input.IconURL != nil {
		appendSet("icon_url", *input.IconURL)
	}
	if input.SortOrder != nil {
		appendSet("sort_order", *input.SortOrder)
	}
	if input.Status != nil {
		appendSet("status", *input.Status)
	}
	if input.Level != nil {
		appendSet("level", *input.Level)
	}

	// The operator stamp is written even for an otherwise empty update.
	appendSet("updated_by", operatorID)
	appendSet("updated_at", time.Now())

	args = append(args, id)
	query := `UPDATE categories SET ` + strings.Join(sets, ", ") + fmt.Sprintf(` WHERE category_id = $%d`, len(args))

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, category.ErrCodeTaken
		}
		return 0, errors.Wrap(err, "update category")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "update category rows affected")
	}
	return affected, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id)
	if err != nil {
		return 0, errors.Wrap(err, "delete category")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "delete category rows affected")
	}
	return affected, nil
}

// DeleteMany removes the ids in the given order inside one transaction so a
// cascade is all-or-nothing. The returned count is for the final id, which
// callers place last (the subtree root).
func (r *PGRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin delete transaction")
	}

	var affected int64
	for _, id := range ids {
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id)
		if err != nil {
			tx.Rollback()
			return 0, errors.Wrapf(err, "delete category %d", id)
		}
		if affected, err = res.RowsAffected(); err != nil {
			tx.Rollback()
			return 0, errors.Wrap(err, "delete category rows affected")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit delete transaction")
	}
	return affected, nil
}

func isUniqueViolation(err error) bool {
	if pgErr, ok := errors.Cause(err).(pgx.PgError); ok {
		return pgErr.Code == "23505"
	}
	return false
}
