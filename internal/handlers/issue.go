package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/services"
	"github.com/trackflow/trackflow/backend/pkg/response"
)

type IssueHandler struct {
	issueService *services.IssueService
}

func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// List returns the filtered, searched, paginated issue list with counts
// GET /api/issues
func (h *IssueHandler) List(c *gin.Context) {
	var req services.IssueListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.issueService.List(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns an issue by ID
// GET /api/issues/:id
func (h *IssueHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	issue, err := h.issueService.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, issue)
}

// Create creates a new issue
// POST /api/issues
func (h *IssueHandler) Create(c *gin.Context) {
	var req services.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	issue, err := h.issueService.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, issue)
}

// Update applies a partial update to an issue
// PUT /api/issues/:id
func (h *IssueHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	issue, err := h.issueService.Update(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, issue)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an issue to a new status
// PATCH /api/issues/:id/status
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	issue, err := h.issueService.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, issue)
}

// Delete removes an issue
// DELETE /api/issues/:id
func (h *IssueHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.issueService.Delete(id); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "issue deleted successfully"})
}

// Search runs the ranked global search
// GET /api/issues/search?q=...
func (h *IssueHandler) Search(c *gin.Context) {
	issues, err := h.issueService.Search(c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, issues)
}

// Counts returns the status bucket counters
// GET /api/issues/counts
func (h *IssueHandler) Counts(c *gin.Context) {
	counts, err := h.issueService.Counts()
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, counts)
}
