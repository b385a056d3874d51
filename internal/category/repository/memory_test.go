package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onsari/catalog-category-service/internal/category/dto"
	"github.com/onsari/catalog-category-service/internal/model"
)

func seedRow(t *testing.T, r *MemoryRepository, parentID int64, name, code string) int64 {
	t.Helper()
	c := &model.Category{ParentID: parentID, Name: name, Status: model.StatusActive, Level: 1}
	if code != "" {
		c.Code = &code
	}
	id, err := r.Create(context.Background(), c)
	require.NoError(t, err)
	return id
}

func TestFindIDsMatchingUnknownFieldsMatchNothing(t *testing.T) {
	r := NewMemoryRepository()
	seedRow(t, r, 0, "Electronics", "EL")

	ids, err := r.FindIDsMatching(context.Background(), &dto.CategoryFilters{
		Keyword:      "Elec",
		SearchFields: []string{"description"},
	})

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFindIDsMatchingDefaultsToName(t *testing.T) {
	r := NewMemoryRepository()
	matching := seedRow(t, r, 0, "Electronics", "EL")
	seedRow(t, r, 0, "Furniture", "ELX") // code matches, name does not

	ids, err := r.FindIDsMatching(context.Background(), &dto.CategoryFilters{Keyword: "elec"})

	require.NoError(t, err)
	assert.Equal(t, []int64{matching}, ids)
}

func TestDeleteManyReportsFinalID(t *testing.T) {
	r := NewMemoryRepository()
	a := seedRow(t, r, 0, "A", "")
	b := seedRow(t, r, a, "B", "")

	// Final id exists: affected reflects it.
	affected, err := r.DeleteMany(context.Background(), []int64{b, a})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Final id already gone: zero, even though earlier ids were real once.
	affected, err = r.DeleteMany(context.Background(), []int64{a})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
