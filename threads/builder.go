// Package threads turns the flat comment rows of one image into the nested
// reply forest the API serves. The forest is derived per request and never
// stored.
package threads

import (
	"sort"

	"github.com/autumn-gallery/api-go/models"
)

// ReplyTree is a comment with its direct replies attached, recursively.
type ReplyTree struct {
	models.Comment
	Replies []*ReplyTree `json:"replies"`
}

// Build assembles the reply forest for a list of comments. Roots and every
// reply list come back ordered by ascending CreatedAt, ties broken by
// ascending ID, so any permutation of the same input yields the same forest.
// Rows deeper than the store's write-time cap are still attached.
func Build(comments []models.Comment) []*ReplyTree {
	nodes := make(map[uint]*ReplyTree, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &ReplyTree{Comment: c, Replies: []*ReplyTree{}}
	}

	roots := []*ReplyTree{}
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
			}
			// A reply whose parent is not in the input has nowhere to
			// hang; the store never produces one.
			continue
		}
		roots = append(roots, node)
	}

	sortForest(roots)
	return roots
}

func sortForest(trees []*ReplyTree) {
	sort.Slice(trees, func(i, j int) bool {
		if !trees[i].CreatedAt.Equal(trees[j].CreatedAt) {
			return trees[i].CreatedAt.Before(trees[j].CreatedAt)
		}
		return trees[i].ID < trees[j].ID
	})
	for _, t := range trees {
		sortForest(t.Replies)
	}
}
