package services

import (
	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/store"
)

// UserService exposes the externally owned user directory, read-only.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List() ([]models.User, error) {
	return s.users.GetAll()
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}
