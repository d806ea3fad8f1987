package services

import (
	"fmt"
	"strings"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/query"
	"github.com/trackflow/trackflow/backend/internal/store"
)

// IssueService drives the issue list and detail views. All reads work on
// defensive snapshots from the store; mutations publish an event and an
// activity-log entry on success.
type IssueService struct {
	issues store.IssueStore
}

func NewIssueService(issues store.IssueStore) *IssueService {
	return &IssueService{issues: issues}
}

type IssueListRequest struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type IssueListResponse struct {
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Counts   query.StatusCounts `json:"counts"`
	Items    []models.Issue     `json:"items"`
}

type CreateIssueRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  *uint  `json:"assignee_id"`
	ProjectID   *uint  `json:"project_id"`
	Tags        string `json:"tags"`
}

type UpdateIssueRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssigneeID  *uint   `json:"assignee_id"`
	ProjectID   *uint   `json:"project_id"`
	Tags        *string `json:"tags"`
}

// List returns the composed filter view: status bucket, then live search term,
// then pagination. Counts always cover the whole collection so the filter bar
// stays accurate while a filter is active.
func (s *IssueService) List(req *IssueListRequest) (*IssueListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 50
	}
	activeFilter := req.Status
	if activeFilter == "" {
		activeFilter = query.FilterAll
	}

	snapshot, err := s.issues.GetAll()
	if err != nil {
		return nil, err
	}

	filtered := query.Filter(snapshot, activeFilter, req.Search)

	total := len(filtered)
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	return &IssueListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Counts:   query.CountByStatus(snapshot),
		Items:    filtered[start:end],
	}, nil
}

func (s *IssueService) GetByID(id uint) (*models.Issue, error) {
	return s.issues.GetByID(id)
}

func (s *IssueService) Create(req *CreateIssueRequest) (*models.Issue, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("issue title is required: %w", store.ErrValidation)
	}
	if req.Status != "" && !models.KnownStatus(req.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, store.ErrValidation)
	}
	if req.Priority != "" && !models.KnownPriority(req.Priority) {
		return nil, fmt.Errorf("unknown priority %q: %w", req.Priority, store.ErrValidation)
	}

	created, err := s.issues.Create(models.Issue{
		Title:       title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, err
	}

	LogInfo("issues", "create", fmt.Sprintf("issue #%d created: %s", created.ID, created.Title), &created.ID, nil)
	PublishIssueEvent(EventIssueCreated, created)
	return created, nil
}

func (s *IssueService) Update(id uint, req *UpdateIssueRequest) (*models.Issue, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("issue title is required: %w", store.ErrValidation)
	}
	if req.Status != nil && !models.KnownStatus(*req.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", *req.Status, store.ErrValidation)
	}
	if req.Priority != nil && !models.KnownPriority(*req.Priority) {
		return nil, fmt.Errorf("unknown priority %q: %w", *req.Priority, store.ErrValidation)
	}

	updated, err := s.issues.Update(id, store.IssuePatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, err
	}

	LogInfo("issues", "update", fmt.Sprintf("issue #%d updated", updated.ID), &updated.ID, nil)
	PublishIssueEvent(EventIssueUpdated, updated)
	return updated, nil
}

func (s *IssueService) UpdateStatus(id uint, status string) (*models.Issue, error) {
	if !models.KnownStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, store.ErrValidation)
	}

	updated, err := s.issues.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}

	LogInfo("issues", "status", fmt.Sprintf("issue #%d status set to %s", updated.ID, updated.Status), &updated.ID, nil)
	PublishIssueEvent(EventIssueStatusChanged, updated)
	return updated, nil
}

func (s *IssueService) Delete(id uint) error {
	issue, err := s.issues.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.issues.Delete(id); err != nil {
		return err
	}

	LogInfo("issues", "delete", fmt.Sprintf("issue #%d deleted: %s", issue.ID, issue.Title), &issue.ID, nil)
	PublishIssueEvent(EventIssueDeleted, issue)
	return nil
}

func (s *IssueService) GetByStatus(status string) ([]models.Issue, error) {
	return s.issues.GetByStatus(status)
}

// Search is the ranked global search, distinct from List's live filter.
func (s *IssueService) Search(q string) ([]models.Issue, error) {
	return s.issues.Search(q)
}

func (s *IssueService) Counts() (query.StatusCounts, error) {
	snapshot, err := s.issues.GetAll()
	if err != nil {
		return query.StatusCounts{}, err
	}
	return query.CountByStatus(snapshot), nil
}
