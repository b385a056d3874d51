// Package tree holds the pure in-memory algorithms over the flat
// adjacency-list encoding of the category forest: closure resolution for
// keyword search and ordered tree assembly for responses.
package tree

import (
	"sort"

	"github.com/onsari/catalog-category-service/internal/category/dto"
	"github.com/onsari/catalog-category-service/internal/model"
)

// Closure returns the union, over every matched id, of the id itself, all of
// its transitive descendants and all of its transitive ancestors up to (not
// including) the root sentinel. Adjacency maps are built in one pass; the
// result set doubles as the visited set, so a dangling parent_id or even
// cyclic out-of-band data terminates the walk instead of looping.
func Closure(rows []model.Category, matched map[int64]struct{}) map[int64]struct{} {
	children := make(map[int64][]int64, len(rows))
	parents := make(map[int64]int64, len(rows))
	for _, row := range rows {
		children[row.ParentID] = append(children[row.ParentID], row.ID)
		parents[row.ID] = row.ParentID
	}

	result := make(map[int64]struct{}, len(matched))

	var collectDescendants func(id int64)
	collectDescendants = func(id int64) {
		if _, seen := result[id]; seen {
			return
		}
		result[id] = struct{}{}
		for _, childID := range children[id] {
			collectDescendants(childID)
		}
	}

	collectAncestors := func(id int64) {
		for {
			parentID, ok := parents[id]
			if !ok || parentID == model.RootParentID {
				return
			}
			if _, seen := result[parentID]; seen {
				return
			}
			result[parentID] = struct{}{}
			id = parentID
		}
	}

	for id := range matched {
		collectDescendants(id)
		collectAncestors(id)
	}
	return result
}

// Build assembles the ordered forest rooted at rootParentID. Rows are grouped
// by parent once, siblings are sorted by sort_order descending with input
// order as the tie-break, and each child's subtree is built recursively.
// Leaves keep a nil Children slice so the key is omitted when serialized.
//
// A shared visited set turns a malformed cyclic parent chain into a truncated
// branch; well-formed data never hits it because parents are immutable after
// creation.
func Build(rows []model.Category, rootParentID int64) []dto.CategoryTreeNode {
	grouped := make(map[int64][]model.Category, len(rows))
	for _, row := range rows {
		grouped[row.ParentID] = append(grouped[row.ParentID], row)
	}

	visited := make(map[int64]struct{}, len(rows))

	var build func(parentID int64) []dto.CategoryTreeNode
	build = func(parentID int64) []dto.CategoryTreeNode {
		siblings := grouped[parentID]
		if len(siblings) == 0 {
			return nil
		}

		ordered := make([]model.Category, len(siblings))
		copy(ordered, siblings)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].SortOrder > ordered[j].SortOrder
		})

		nodes := make([]dto.CategoryTreeNode, 0, len(ordered))
		for _, row := range ordered {
			if _, seen := visited[row.ID]; seen {
				continue
			}
			visited[row.ID] = struct{}{}
			nodes = append(nodes, dto.CategoryTreeNode{
				Category: row,
				Children: build(row.ID),
			})
		}
		if len(nodes) == 0 {
			return nil
		}
		return nodes
	}

	nodes := build(rootParentID)
	if nodes == nil {
		return []dto.CategoryTreeNode{}
	}
	return nodes
}
