package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/trackflow/trackflow/backend/internal/apper"
	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/query"
)

// Table names on the remote record store.
const (
	issuesTable   = "issues"
	commentsTable = "comments"
	usersTable    = "users"
	projectsTable = "projects"
)

// NewRemoteStore builds the store bundle backed by the Apper record store.
// The timestamp rules are enforced here, not by the backend: mutations read
// the current record first, so a no-op status change never writes.
func NewRemoteStore(client *apper.Client, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		Issues:   &RemoteIssueStore{client: client, clock: clock},
		Comments: &RemoteCommentStore{client: client, clock: clock},
		Users:    &RemoteUserStore{client: client},
		Projects: &RemoteProjectStore{client: client},
	}
}

// RemoteIssueStore maps the issue repository operations onto the generic
// record-store contract.
type RemoteIssueStore struct {
	client *apper.Client
	clock  Clock
}

func backendErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrBackend, err)
}

func (s *RemoteIssueStore) GetAll() ([]models.Issue, error) {
	records, err := s.client.Fetch(issuesTable, apper.Query{
		OrderBy: []apper.OrderBy{{FieldName: "updated_at", SortType: apper.SortDesc}},
	})
	if err != nil {
		return nil, backendErr("fetch issues", err)
	}
	issues := make([]models.Issue, 0, len(records))
	for _, r := range records {
		issues = append(issues, issueFromRecord(r))
	}
	return issues, nil
}

func (s *RemoteIssueStore) GetByID(id uint) (*models.Issue, error) {
	record, err := s.client.GetByID(issuesTable, id)
	if err != nil {
		return nil, backendErr("fetch issue", err)
	}
	if record == nil {
		return nil, fmt.Errorf("issue %d: %w", id, ErrNotFound)
	}
	issue := issueFromRecord(record)
	return &issue, nil
}

func (s *RemoteIssueStore) Create(issue models.Issue) (*models.Issue, error) {
	if issue.Status == "" {
		issue.Status = models.StatusOpen
	}
	if issue.Priority == "" {
		issue.Priority = models.PriorityMedium
	}

	now := s.clock()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	issue.StatusChangedAt = now

	record := issueToRecord(issue)
	delete(record, "id") // the record store assigns identity

	results, err := s.client.Create(issuesTable, []apper.Record{record})
	if err != nil {
		return nil, backendErr("create issue", err)
	}
	if len(results) == 0 || !results[0].Success {
		return nil, backendErr("create issue", fmt.Errorf("%w: %s", apper.ErrRequest, opMessage(results)))
	}
	created := issueFromRecord(results[0].Data)
	return &created, nil
}

func (s *RemoteIssueStore) Update(id uint, patch IssuePatch) (*models.Issue, error) {
	cur, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	changed, statusChanged := mergePatch(cur, patch)
	if !changed {
		return cur, nil
	}

	now := s.clock()
	cur.UpdatedAt = now
	if statusChanged {
		cur.StatusChangedAt = now
	}

	return s.writeIssue(*cur)
}

func (s *RemoteIssueStore) UpdateStatus(id uint, status string) (*models.Issue, error) {
	cur, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if cur.Status == status {
		return cur, nil
	}

	now := s.clock()
	cur.Status = status
	cur.UpdatedAt = now
	cur.StatusChangedAt = now

	return s.writeIssue(*cur)
}

func (s *RemoteIssueStore) writeIssue(issue models.Issue) (*models.Issue, error) {
	results, err := s.client.Update(issuesTable, []apper.Record{issueToRecord(issue)})
	if err != nil {
		return nil, backendErr("update issue", err)
	}
	if len(results) == 0 || !results[0].Success {
		return nil, backendErr("update issue", fmt.Errorf("%w: %s", apper.ErrRequest, opMessage(results)))
	}
	updated := issueFromRecord(results[0].Data)
	return &updated, nil
}

func (s *RemoteIssueStore) Delete(id uint) error {
	// Existence check first so an absent id is NotFound, not a backend error.
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	results, err := s.client.Delete(issuesTable, []uint{id})
	if err != nil {
		return backendErr("delete issue", err)
	}
	if len(results) == 0 || !results[0].Success {
		return backendErr("delete issue", fmt.Errorf("%w: %s", apper.ErrRequest, opMessage(results)))
	}
	return nil
}

func (s *RemoteIssueStore) GetByStatus(status string) ([]models.Issue, error) {
	records, err := s.client.Fetch(issuesTable, apper.Query{
		Where: []apper.Condition{{FieldName: "status", Operator: apper.OpEqualTo, Values: []interface{}{status}}},
	})
	if err != nil {
		return nil, backendErr("fetch issues by status", err)
	}
	issues := make([]models.Issue, 0, len(records))
	for _, r := range records {
		issues = append(issues, issueFromRecord(r))
	}
	return issues, nil
}

// Search ranks in process. The table API's Contains operator cannot express
// the stringified-id match or the title-precedence ordering.
func (s *RemoteIssueStore) Search(q string) ([]models.Issue, error) {
	if strings.TrimSpace(q) == "" {
		return []models.Issue{}, nil
	}
	issues, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	return query.Search(issues, q), nil
}

// RemoteCommentStore maps comment operations onto the record store.
type RemoteCommentStore struct {
	client *apper.Client
	clock  Clock
}

func (s *RemoteCommentStore) ListByIssue(issueID uint) ([]models.Comment, error) {
	records, err := s.client.Fetch(commentsTable, apper.Query{
		Where:   []apper.Condition{{FieldName: "issue_id", Operator: apper.OpEqualTo, Values: []interface{}{issueID}}},
		OrderBy: []apper.OrderBy{{FieldName: "created_at", SortType: apper.SortAsc}},
	})
	if err != nil {
		return nil, backendErr("fetch comments", err)
	}
	comments := make([]models.Comment, 0, len(records))
	for _, r := range records {
		comments = append(comments, commentFromRecord(r))
	}
	return comments, nil
}

func (s *RemoteCommentStore) GetByID(id uint) (*models.Comment, error) {
	record, err := s.client.GetByID(commentsTable, id)
	if err != nil {
		return nil, backendErr("fetch comment", err)
	}
	if record == nil {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	comment := commentFromRecord(record)
	return &comment, nil
}

func (s *RemoteCommentStore) Create(comment models.Comment) (*models.Comment, error) {
	if err := normalizeComment(&comment); err != nil {
		return nil, err
	}

	now := s.clock()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	record := commentToRecord(comment)
	delete(record, "id")

	results, err := s.client.Create(commentsTable, []apper.Record{record})
	if err != nil {
		return nil, backendErr("create comment", err)
	}
	if len(results) == 0 || !results[0].Success {
		return nil, backendErr("create comment", fmt.Errorf("%w: %s", apper.ErrRequest, opMessage(results)))
	}
	created := commentFromRecord(results[0].Data)
	return &created, nil
}

func (s *RemoteCommentStore) Update(id uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrValidation)
	}

	cur, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	cur.Content = content
	cur.UpdatedAt = s.clock()

	results, err := s.client.Update(commentsTable, []apper.Record{commentToRecord(*cur)})
	if err != nil {
		return nil, backendErr("update comment", err)
	}
	if len(results) == 0 || !results[0].Success {
		return nil, backendErr("update comment", fmt.Errorf("%w: %s", apper.ErrRequest, opMessage(results)))
	}
	updated := commentFromRecord(results[0].Data)
	return &updated, nil
}

func (s *RemoteCommentStore) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	results, err := s.client.Delete(commentsTable, []uint{id})
	if err != nil {
		return backendErr("delete comment", err)
	}
	if len(results) == 0 || !results[0].Success {
		return backendErr("delete comment", fmt.Errorf("%w: %s", apper.ErrRequest, opMessage(results)))
	}
	return nil
}

// RemoteUserStore reads the user directory from the record store.
type RemoteUserStore struct {
	client *apper.Client
}

func (s *RemoteUserStore) GetAll() ([]models.User, error) {
	records, err := s.client.Fetch(usersTable, apper.Query{
		OrderBy: []apper.OrderBy{{FieldName: "id", SortType: apper.SortAsc}},
	})
	if err != nil {
		return nil, backendErr("fetch users", err)
	}
	users := make([]models.User, 0, len(records))
	for _, r := range records {
		users = append(users, userFromRecord(r))
	}
	return users, nil
}

func (s *RemoteUserStore) GetByID(id uint) (*models.User, error) {
	record, err := s.client.GetByID(usersTable, id)
	if err != nil {
		return nil, backendErr("fetch user", err)
	}
	if record == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	user := userFromRecord(record)
	return &user, nil
}

// RemoteProjectStore reads the project list from the record store.
type RemoteProjectStore struct {
	client *apper.Client
}

func (s *RemoteProjectStore) GetAll() ([]models.Project, error) {
	records, err := s.client.Fetch(projectsTable, apper.Query{
		OrderBy: []apper.OrderBy{{FieldName: "id", SortType: apper.SortAsc}},
	})
	if err != nil {
		return nil, backendErr("fetch projects", err)
	}
	projects := make([]models.Project, 0, len(records))
	for _, r := range records {
		projects = append(projects, projectFromRecord(r))
	}
	return projects, nil
}

func (s *RemoteProjectStore) GetByID(id uint) (*models.Project, error) {
	record, err := s.client.GetByID(projectsTable, id)
	if err != nil {
		return nil, backendErr("fetch project", err)
	}
	if record == nil {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	project := projectFromRecord(record)
	return &project, nil
}

func opMessage(results []apper.OpResult) string {
	if len(results) == 0 {
		return "empty result set"
	}
	if results[0].Message != "" {
		return results[0].Message
	}
	return "operation rejected"
}
