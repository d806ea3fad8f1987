package store

import (
	"time"

	"github.com/trackflow/trackflow/backend/internal/apper"
	"github.com/trackflow/trackflow/backend/internal/models"
)

// Record field conversion for the remote store. Records arrive from JSON, so
// numbers are float64 and timestamps are RFC 3339 strings.

func recStr(r apper.Record, key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func recUint(r apper.Record, key string) uint {
	switch v := r[key].(type) {
	case float64:
		return uint(v)
	case int:
		return uint(v)
	case uint:
		return v
	}
	return 0
}

func recUintPtr(r apper.Record, key string) *uint {
	if r[key] == nil {
		return nil
	}
	v := recUint(r, key)
	if v == 0 {
		return nil
	}
	return &v
}

func recTime(r apper.Record, key string) time.Time {
	if v, ok := r[key].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	if v, ok := r[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func issueFromRecord(r apper.Record) models.Issue {
	return models.Issue{
		ID:              recUint(r, "id"),
		Title:           recStr(r, "title"),
		Description:     recStr(r, "description"),
		Status:          recStr(r, "status"),
		Priority:        recStr(r, "priority"),
		AssigneeID:      recUintPtr(r, "assignee_id"),
		ProjectID:       recUintPtr(r, "project_id"),
		Tags:            recStr(r, "tags"),
		CreatedAt:       recTime(r, "created_at"),
		UpdatedAt:       recTime(r, "updated_at"),
		StatusChangedAt: recTime(r, "status_changed_at"),
	}
}

func issueToRecord(issue models.Issue) apper.Record {
	r := apper.Record{
		"id":                issue.ID,
		"title":             issue.Title,
		"description":       issue.Description,
		"status":            issue.Status,
		"priority":          issue.Priority,
		"tags":              issue.Tags,
		"created_at":        issue.CreatedAt.Format(time.RFC3339),
		"updated_at":        issue.UpdatedAt.Format(time.RFC3339),
		"status_changed_at": issue.StatusChangedAt.Format(time.RFC3339),
	}
	if issue.AssigneeID != nil {
		r["assignee_id"] = *issue.AssigneeID
	}
	if issue.ProjectID != nil {
		r["project_id"] = *issue.ProjectID
	}
	return r
}

func commentFromRecord(r apper.Record) models.Comment {
	return models.Comment{
		ID:        recUint(r, "id"),
		IssueID:   recUint(r, "issue_id"),
		UserID:    recUint(r, "user_id"),
		Content:   recStr(r, "content"),
		CreatedAt: recTime(r, "created_at"),
		UpdatedAt: recTime(r, "updated_at"),
	}
}

func commentToRecord(comment models.Comment) apper.Record {
	return apper.Record{
		"id":         comment.ID,
		"issue_id":   comment.IssueID,
		"user_id":    comment.UserID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt.Format(time.RFC3339),
		"updated_at": comment.UpdatedAt.Format(time.RFC3339),
	}
}

func userFromRecord(r apper.Record) models.User {
	return models.User{
		ID:     recUint(r, "id"),
		Name:   recStr(r, "name"),
		Role:   recStr(r, "role"),
		Avatar: recStr(r, "avatar"),
		Email:  recStr(r, "email"),
	}
}

func projectFromRecord(r apper.Record) models.Project {
	return models.Project{
		ID:          recUint(r, "id"),
		Name:        recStr(r, "name"),
		Description: recStr(r, "description"),
		TeamMembers: recStr(r, "team_members"),
		CreatedAt:   recTime(r, "created_at"),
	}
}
