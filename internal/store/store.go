// Package store owns the canonical issue collection and its access contract.
// Three interchangeable implementations exist: an in-memory store seeded with
// fixture data, a GORM-backed database store, and a store delegating to the
// remote Apper record-store API. The implementation is selected once at
// construction; call sites never branch on the backend.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/trackflow/trackflow/backend/internal/models"
)

// Clock supplies "now" for timestamp stamping. Injected so tests run against a
// fixed time.
type Clock func() time.Time

// IssuePatch is a partial issue update. Nil fields are left untouched; ID and
// CreatedAt can never be overwritten.
type IssuePatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *uint
	ProjectID   *uint
	Tags        *string
}

// IssueStore is the issue repository contract. Every mutating operation is a
// definitive success or failure; absent ids surface ErrNotFound, never a
// silent default.
type IssueStore interface {
	// GetAll returns a defensive copy of the whole collection.
	GetAll() ([]models.Issue, error)
	GetByID(id uint) (*models.Issue, error)
	// Create assigns identity and stamps created/updated/statusChanged to now.
	Create(issue models.Issue) (*models.Issue, error)
	// Update merges the patch. updatedAt refreshes only when something
	// effectively changes; statusChangedAt only when the status value changes.
	Update(id uint, patch IssuePatch) (*models.Issue, error)
	// UpdateStatus is idempotent: setting the current status again returns the
	// record unchanged with no timestamp refresh.
	UpdateStatus(id uint, status string) (*models.Issue, error)
	Delete(id uint) error
	GetByStatus(status string) ([]models.Issue, error)
	// Search returns a relevance-ordered match set; blank queries match nothing.
	Search(q string) ([]models.Issue, error)
}

// CommentStore manages issue discussion threads. The UI only appends, but the
// full CRUD surface is part of the contract.
type CommentStore interface {
	// ListByIssue returns an issue's comments ordered by creation time ascending.
	ListByIssue(issueID uint) ([]models.Comment, error)
	GetByID(id uint) (*models.Comment, error)
	Create(comment models.Comment) (*models.Comment, error)
	Update(id uint, content string) (*models.Comment, error)
	Delete(id uint) error
}

// UserStore is the read-only view of the externally owned user directory.
type UserStore interface {
	GetAll() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
}

// ProjectStore is the read-only view of the externally owned project list.
type ProjectStore interface {
	GetAll() ([]models.Project, error)
	GetByID(id uint) (*models.Project, error)
}

// Store bundles the per-entity stores of one backend.
type Store struct {
	Issues   IssueStore
	Comments CommentStore
	Users    UserStore
	Projects ProjectStore
}

// normalizeComment trims and validates a comment before insertion. All
// implementations share the same rules.
func normalizeComment(c *models.Comment) error {
	if c.IssueID == 0 {
		return fmt.Errorf("issue id is required: %w", ErrValidation)
	}
	if c.UserID == 0 {
		return fmt.Errorf("user id is required: %w", ErrValidation)
	}
	c.Content = strings.TrimSpace(c.Content)
	if c.Content == "" {
		return fmt.Errorf("comment content is required: %w", ErrValidation)
	}
	return nil
}
