package services

import (
	"strconv"
	"strings"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/store"
)

// ProjectService exposes the externally owned project list, read-only.
type ProjectService struct {
	projects store.ProjectStore
}

func NewProjectService(projects store.ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// ProjectView is a project with its team roster parsed out of the
// comma-separated storage convention.
type ProjectView struct {
	models.Project
	TeamMemberIDs []uint `json:"team_member_ids"`
}

func (s *ProjectService) List() ([]ProjectView, error) {
	projects, err := s.projects.GetAll()
	if err != nil {
		return nil, err
	}
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, ProjectView{Project: p, TeamMemberIDs: ParseIDList(p.TeamMembers)})
	}
	return views, nil
}

func (s *ProjectService) GetByID(id uint) (*ProjectView, error) {
	project, err := s.projects.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &ProjectView{Project: *project, TeamMemberIDs: ParseIDList(project.TeamMembers)}, nil
}

// ParseIDList parses a comma-separated id list ("1,4,7"). Blank and malformed
// entries are skipped; parsing happens only here at the boundary, never in
// comparisons.
func ParseIDList(s string) []uint {
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(v))
	}
	return ids
}
