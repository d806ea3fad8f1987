package services

import (
	"fmt"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/store"
)

// CommentService manages issue discussion threads.
type CommentService struct {
	comments store.CommentStore
	issues   store.IssueStore
}

func NewCommentService(comments store.CommentStore, issues store.IssueStore) *CommentService {
	return &CommentService{comments: comments, issues: issues}
}

type CreateCommentRequest struct {
	IssueID uint   `json:"issue_id" binding:"required"`
	UserID  uint   `json:"user_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *CommentService) ListByIssue(issueID uint) ([]models.Comment, error) {
	// Listing comments of a missing issue is NotFound, not an empty thread.
	if _, err := s.issues.GetByID(issueID); err != nil {
		return nil, err
	}
	return s.comments.ListByIssue(issueID)
}

func (s *CommentService) Create(req *CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.issues.GetByID(req.IssueID); err != nil {
		return nil, err
	}
	created, err := s.comments.Create(models.Comment{
		IssueID: req.IssueID,
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}
	LogInfo("comments", "create", fmt.Sprintf("comment #%d added to issue #%d", created.ID, created.IssueID), &created.IssueID, nil)
	return created, nil
}

func (s *CommentService) Update(id uint, req *UpdateCommentRequest) (*models.Comment, error) {
	return s.comments.Update(id, req.Content)
}

func (s *CommentService) Delete(id uint) error {
	return s.comments.Delete(id)
}
