package model

import "time"

// Category status values. Filter-only, there are no transitions.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// RootParentID is the sentinel parent_id meaning "no parent".
const RootParentID int64 = 0

type Category struct {
	ID          int64     `db:"category_id" json:"category_id"`
	ParentID    int64     `db:"parent_id" json:"parent_id"` // 0 means root
	Name        string    `db:"category_name" json:"category_name"`
	Code        *string   `db:"category_code" json:"category_code,omitempty"` // Nullable, unique when set
	Description *string   `db:"description" json:"description,omitempty"`
	IconURL     *string   `db:"icon_url" json:"icon_url,omitempty"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	Status      string    `db:"status" json:"status"`
	Level       int       `db:"level" json:"level"` // declared depth 1..3, stored as supplied
	CreatedBy   int64     `db:"created_by" json:"created_by"`
	UpdatedBy   int64     `db:"updated_by" json:"updated_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
