package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onsari/catalog-category-service/internal/category"
	"github.com/onsari/catalog-category-service/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	// "pgx" picks the dollar-placeholder bind type.
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestCreateReturnsGeneratedID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO categories").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), &model.Category{Name: "Electronics", Status: model.StatusActive, Level: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSurfacesRowIterationError(t *testing.T) {
	repo, mock := newMockRepo(t)
	// The connection drops while the RETURNING row is read: Next reports
	// false and the failure only shows up on rows.Err.
	mock.ExpectQuery("INSERT INTO categories").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).
			AddRow(int64(7)).
			RowError(0, errors.New("connection reset")))

	id, err := repo.Create(context.Background(), &model.Category{Name: "Electronics", Status: model.StatusActive, Level: 1})

	require.Error(t, err)
	assert.Zero(t, id)
	assert.Contains(t, err.Error(), "read inserted category id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMapsUniqueViolationToCodeTaken(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO categories").
		WillReturnError(pgx.PgError{Code: "23505", ConstraintName: "categories_category_code_key"})

	code := "EL"
	_, err := repo.Create(context.Background(), &model.Category{Name: "Electronics", Code: &code, Status: model.StatusActive, Level: 1})

	assert.ErrorIs(t, err, category.ErrCodeTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
