package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/query"
	"gorm.io/gorm"
)

// NewDBStore builds the database-backed store bundle. The clock stamps all
// issue and comment timestamps; GORM's automatic time tracking stays disabled
// so the no-op update rules hold.
func NewDBStore(db *gorm.DB, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		Issues:   &DBIssueStore{db: db, clock: clock},
		Comments: &DBCommentStore{db: db, clock: clock},
		Users:    &DBUserStore{db: db},
		Projects: &DBProjectStore{db: db},
	}
}

// DBIssueStore persists issues through GORM. Ids are assigned by the database
// autoincrement, which keeps them strictly monotonic per instance.
type DBIssueStore struct {
	db    *gorm.DB
	clock Clock
}

func wrapDBErr(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return err
}

func (s *DBIssueStore) GetAll() ([]models.Issue, error) {
	var issues []models.Issue
	if err := s.db.Order("updated_at DESC").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *DBIssueStore) GetByID(id uint) (*models.Issue, error) {
	var issue models.Issue
	if err := s.db.First(&issue, id).Error; err != nil {
		return nil, wrapDBErr("issue", id, err)
	}
	return &issue, nil
}

func (s *DBIssueStore) Create(issue models.Issue) (*models.Issue, error) {
	if issue.Status == "" {
		issue.Status = models.StatusOpen
	}
	if issue.Priority == "" {
		issue.Priority = models.PriorityMedium
	}
	issue.ID = 0

	now := s.clock()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	issue.StatusChangedAt = now

	if err := s.db.Create(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *DBIssueStore) Update(id uint, patch IssuePatch) (*models.Issue, error) {
	var issue models.Issue
	if err := s.db.First(&issue, id).Error; err != nil {
		return nil, wrapDBErr("issue", id, err)
	}

	changed, statusChanged := mergePatch(&issue, patch)
	if !changed {
		return &issue, nil
	}

	now := s.clock()
	issue.UpdatedAt = now
	if statusChanged {
		issue.StatusChangedAt = now
	}

	if err := s.db.Save(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *DBIssueStore) UpdateStatus(id uint, status string) (*models.Issue, error) {
	var issue models.Issue
	if err := s.db.First(&issue, id).Error; err != nil {
		return nil, wrapDBErr("issue", id, err)
	}

	if issue.Status == status {
		return &issue, nil
	}

	now := s.clock()
	issue.Status = status
	issue.UpdatedAt = now
	issue.StatusChangedAt = now

	if err := s.db.Save(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *DBIssueStore) Delete(id uint) error {
	result := s.db.Delete(&models.Issue{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("issue %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *DBIssueStore) GetByStatus(status string) ([]models.Issue, error) {
	var issues []models.Issue
	if err := s.db.Where("status = ?", status).Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// Search fetches the collection and ranks in process. Title-match precedence
// and priority-rank ordering don't translate to portable SQL, and the
// collection is dashboard-scale.
func (s *DBIssueStore) Search(q string) ([]models.Issue, error) {
	if strings.TrimSpace(q) == "" {
		return []models.Issue{}, nil
	}
	var issues []models.Issue
	if err := s.db.Order("updated_at DESC").Find(&issues).Error; err != nil {
		return nil, err
	}
	return query.Search(issues, q), nil
}

// DBCommentStore persists comments through GORM.
type DBCommentStore struct {
	db    *gorm.DB
	clock Clock
}

func (s *DBCommentStore) ListByIssue(issueID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("issue_id = ?", issueID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *DBCommentStore) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return nil, wrapDBErr("comment", id, err)
	}
	return &comment, nil
}

func (s *DBCommentStore) Create(comment models.Comment) (*models.Comment, error) {
	if err := normalizeComment(&comment); err != nil {
		return nil, err
	}
	comment.ID = 0

	now := s.clock()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *DBCommentStore) Update(id uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrValidation)
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return nil, wrapDBErr("comment", id, err)
	}

	comment.Content = content
	comment.UpdatedAt = s.clock()

	if err := s.db.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *DBCommentStore) Delete(id uint) error {
	result := s.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return nil
}

// DBUserStore reads the user directory.
type DBUserStore struct {
	db *gorm.DB
}

func (s *DBUserStore) GetAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DBUserStore) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, wrapDBErr("user", id, err)
	}
	return &user, nil
}

// DBProjectStore reads the project list.
type DBProjectStore struct {
	db *gorm.DB
}

func (s *DBProjectStore) GetAll() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *DBProjectStore) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, wrapDBErr("project", id, err)
	}
	return &project, nil
}
