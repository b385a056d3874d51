package dto

type CreateCategoryInput struct {
	ParentID    int64 // 0 creates a root category
	Name        string
	Code        string // optional; empty means no code
	Description string
	IconURL     string
	SortOrder   int
	Status      string // defaults to active
	Level       int
}

// UpdateCategoryInput carries a partial update. Nil fields are left untouched.
// ParentID is deliberately absent: parent assignment happens at creation only,
// which is also what keeps the hierarchy acyclic.
type UpdateCategoryInput struct {
	Name        *string
	Code        *string
	Description *string
	IconURL     *string
	SortOrder   *int
	Status      *string
	Level       *int
}
