package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/query"
)

// memoryOptions configures the in-memory stores.
type memoryOptions struct {
	clock   Clock
	latency time.Duration
}

// MemoryOption customizes an in-memory store at construction.
type MemoryOption func(*memoryOptions)

// WithClock injects the time source used for timestamp stamping.
func WithClock(c Clock) MemoryOption {
	return func(o *memoryOptions) { o.clock = c }
}

// WithLatency makes every operation sleep for d before touching the
// collection, modeling a network round-trip. Zero (the default) disables it.
func WithLatency(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.latency = d }
}

func buildOptions(opts []MemoryOption) memoryOptions {
	o := memoryOptions{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewMemoryStore builds the full in-memory store bundle. When seed is true the
// stores start from the fixture data set, otherwise empty.
func NewMemoryStore(seed bool, opts ...MemoryOption) *Store {
	o := buildOptions(opts)
	var (
		issues   []models.Issue
		comments []models.Comment
		users    []models.User
		projects []models.Project
	)
	if seed {
		now := o.clock()
		issues = models.FixtureIssues(now)
		comments = models.FixtureComments(now)
		users = models.FixtureUsers()
		projects = models.FixtureProjects(now)
	}
	return &Store{
		Issues:   NewMemoryIssueStore(issues, opts...),
		Comments: NewMemoryCommentStore(comments, opts...),
		Users:    NewMemoryUserStore(users),
		Projects: NewMemoryProjectStore(projects),
	}
}

// MemoryIssueStore keeps the canonical issue collection in an owned slice.
// A mutex serializes all access; the max-id-plus-one assignment and the
// timestamp rules assume no interleaved mutation.
type MemoryIssueStore struct {
	mu      sync.Mutex
	issues  []models.Issue
	lastID  uint
	clock   Clock
	latency time.Duration
}

func NewMemoryIssueStore(seed []models.Issue, opts ...MemoryOption) *MemoryIssueStore {
	o := buildOptions(opts)
	s := &MemoryIssueStore{
		issues:  make([]models.Issue, len(seed)),
		clock:   o.clock,
		latency: o.latency,
	}
	copy(s.issues, seed)
	for i := range seed {
		if seed[i].ID > s.lastID {
			s.lastID = seed[i].ID
		}
	}
	return s
}

func (s *MemoryIssueStore) wait() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

func (s *MemoryIssueStore) indexOf(id uint) int {
	for i := range s.issues {
		if s.issues[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryIssueStore) snapshot() []models.Issue {
	out := make([]models.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

func (s *MemoryIssueStore) GetAll() ([]models.Issue, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (s *MemoryIssueStore) GetByID(id uint) (*models.Issue, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("issue %d: %w", id, ErrNotFound)
	}
	issue := s.issues[idx]
	return &issue, nil
}

func (s *MemoryIssueStore) Create(issue models.Issue) (*models.Issue, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	if issue.Status == "" {
		issue.Status = models.StatusOpen
	}
	if issue.Priority == "" {
		issue.Priority = models.PriorityMedium
	}

	// Max existing id plus one, with a high-water mark so ids stay strictly
	// increasing even after the highest issue is deleted.
	for i := range s.issues {
		if s.issues[i].ID > s.lastID {
			s.lastID = s.issues[i].ID
		}
	}
	s.lastID++
	issue.ID = s.lastID

	now := s.clock()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	issue.StatusChangedAt = now

	s.issues = append(s.issues, issue)
	return &issue, nil
}

func (s *MemoryIssueStore) Update(id uint, patch IssuePatch) (*models.Issue, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("issue %d: %w", id, ErrNotFound)
	}

	cur := s.issues[idx]
	changed, statusChanged := mergePatch(&cur, patch)
	if !changed {
		return &cur, nil
	}

	now := s.clock()
	cur.UpdatedAt = now
	if statusChanged {
		cur.StatusChangedAt = now
	}

	s.issues[idx] = cur
	out := cur
	return &out, nil
}

func (s *MemoryIssueStore) UpdateStatus(id uint, status string) (*models.Issue, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("issue %d: %w", id, ErrNotFound)
	}

	cur := s.issues[idx]
	if cur.Status == status {
		return &cur, nil
	}

	now := s.clock()
	cur.Status = status
	cur.UpdatedAt = now
	cur.StatusChangedAt = now

	s.issues[idx] = cur
	out := cur
	return &out, nil
}

func (s *MemoryIssueStore) Delete(id uint) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("issue %d: %w", id, ErrNotFound)
	}
	s.issues = append(s.issues[:idx], s.issues[idx+1:]...)
	return nil
}

func (s *MemoryIssueStore) GetByStatus(status string) ([]models.Issue, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Issue, 0)
	for _, issue := range s.issues {
		if issue.Status == status {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (s *MemoryIssueStore) Search(q string) ([]models.Issue, error) {
	s.wait()
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()
	return query.Search(snap, q), nil
}

// mergePatch applies patch onto issue in place and reports whether anything
// effectively changed and whether the status value changed. A patch that sets
// every field to its current value is a no-op and must not refresh timestamps.
func mergePatch(issue *models.Issue, patch IssuePatch) (changed, statusChanged bool) {
	if patch.Title != nil && *patch.Title != issue.Title {
		issue.Title = *patch.Title
		changed = true
	}
	if patch.Description != nil && *patch.Description != issue.Description {
		issue.Description = *patch.Description
		changed = true
	}
	if patch.Status != nil && *patch.Status != issue.Status {
		issue.Status = *patch.Status
		changed = true
		statusChanged = true
	}
	if patch.Priority != nil && *patch.Priority != issue.Priority {
		issue.Priority = *patch.Priority
		changed = true
	}
	if patch.AssigneeID != nil && (issue.AssigneeID == nil || *issue.AssigneeID != *patch.AssigneeID) {
		v := *patch.AssigneeID
		issue.AssigneeID = &v
		changed = true
	}
	if patch.ProjectID != nil && (issue.ProjectID == nil || *issue.ProjectID != *patch.ProjectID) {
		v := *patch.ProjectID
		issue.ProjectID = &v
		changed = true
	}
	if patch.Tags != nil && *patch.Tags != issue.Tags {
		issue.Tags = *patch.Tags
		changed = true
	}
	return changed, statusChanged
}

// MemoryCommentStore keeps comments in an owned slice with a running id
// counter, mirroring the issue store's single-writer model.
type MemoryCommentStore struct {
	mu       sync.Mutex
	comments []models.Comment
	nextID   uint
	clock    Clock
	latency  time.Duration
}

func NewMemoryCommentStore(seed []models.Comment, opts ...MemoryOption) *MemoryCommentStore {
	o := buildOptions(opts)
	s := &MemoryCommentStore{
		comments: make([]models.Comment, len(seed)),
		nextID:   1,
		clock:    o.clock,
		latency:  o.latency,
	}
	copy(s.comments, seed)
	for i := range seed {
		if seed[i].ID >= s.nextID {
			s.nextID = seed[i].ID + 1
		}
	}
	return s
}

func (s *MemoryCommentStore) wait() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

func (s *MemoryCommentStore) indexOf(id uint) int {
	for i := range s.comments {
		if s.comments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryCommentStore) ListByIssue(issueID uint) ([]models.Comment, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.IssueID == issueID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryCommentStore) GetByID(id uint) (*models.Comment, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	c := s.comments[idx]
	return &c, nil
}

func (s *MemoryCommentStore) Create(comment models.Comment) (*models.Comment, error) {
	s.wait()

	if err := normalizeComment(&comment); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.nextID
	s.nextID++
	now := s.clock()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	s.comments = append(s.comments, comment)
	return &comment, nil
}

func (s *MemoryCommentStore) Update(id uint, content string) (*models.Comment, error) {
	s.wait()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	c := s.comments[idx]
	c.Content = content
	c.UpdatedAt = s.clock()
	s.comments[idx] = c
	out := c
	return &out, nil
}

func (s *MemoryCommentStore) Delete(id uint) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	s.comments = append(s.comments[:idx], s.comments[idx+1:]...)
	return nil
}

// MemoryUserStore is a read-only fixture-backed user directory.
type MemoryUserStore struct {
	users []models.User
}

func NewMemoryUserStore(seed []models.User) *MemoryUserStore {
	s := &MemoryUserStore{users: make([]models.User, len(seed))}
	copy(s.users, seed)
	return s
}

func (s *MemoryUserStore) GetAll() ([]models.User, error) {
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryUserStore) GetByID(id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

// MemoryProjectStore is a read-only fixture-backed project list.
type MemoryProjectStore struct {
	projects []models.Project
}

func NewMemoryProjectStore(seed []models.Project) *MemoryProjectStore {
	s := &MemoryProjectStore{projects: make([]models.Project, len(seed))}
	copy(s.projects, seed)
	return s
}

func (s *MemoryProjectStore) GetAll() ([]models.Project, error) {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out, nil
}

func (s *MemoryProjectStore) GetByID(id uint) (*models.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
}
