package types

// CreateCommentRequest is the body of POST /images/:id/comments.
type CreateCommentRequest struct {
	Text     string `json:"text" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

// UpdateCommentRequest is the body of PATCH /comments/:id.
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ReactionRequest is the body of POST /images/:id/reactions.
type ReactionRequest struct {
	Type string `json:"type" binding:"required,oneof=LIKE FAVORITE"`
}
