package dto

import "github.com/onsari/catalog-category-service/internal/model"

// SearchField values accepted in CategoryFilters.SearchFields.
const (
	SearchFieldName = "name"
	SearchFieldCode = "code"
)

type CategoryFilters struct {
	Status       string   // empty means any status
	Level        *int     // nil means any level
	ParentID     *int64   // tree root for the response; nil means the root sentinel 0
	Keyword      string   // empty means every base-filtered row counts as matched
	SearchFields []string // subset of {name, code}; defaults to name
	Page         int      // accepted for interface compatibility, the tree is returned whole
	PageSize     int
}

// CategoryTreeNode is a category plus its ordered subtree. Children is nil
// for leaves so the key disappears from the JSON encoding entirely.
type CategoryTreeNode struct {
	model.Category
	Children []CategoryTreeNode `json:"children,omitempty"`
}

type CategoryList struct {
	List []CategoryTreeNode `json:"list"`
}
