package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/services"
	"github.com/trackflow/trackflow/backend/pkg/response"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByIssue returns an issue's comment thread, oldest first
// GET /api/issues/:id/comments
func (h *CommentHandler) ListByIssue(c *gin.Context) {
	issueID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByIssue(issueID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, comments)
}

// Create adds a comment to an issue
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, comment)
}

// Update rewrites a comment's content
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, comment)
}

// Delete removes a comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(id); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "comment deleted successfully"})
}
