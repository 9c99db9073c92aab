package memory

import (
	"context"

	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// Users is the in-memory users table
type Users struct {
	db *DB
}

// withRole fills the joined role columns; the caller holds the lock
func (s *Users) withRole(u models.User) models.User {
	u.Password = ""
	u.RoleName, u.RoleCode = nil, nil
	if u.RoleID != nil {
		if role, ok := s.db.roles[*u.RoleID]; ok {
			name, code := role.Name, role.Code
			u.RoleName, u.RoleCode = &name, &code
		}
	}
	return u
}

func (s *Users) usernameTaken(username string, except int64) bool {
	for id, u := range s.db.users {
		if id != except && u.Username == username {
			return true
		}
	}
	return false
}

func (s *Users) roleMissing(roleID *int64) bool {
	if roleID == nil {
		return false
	}
	_, ok := s.db.roles[*roleID]
	return !ok
}

func (s *Users) List(_ context.Context) ([]models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users := make([]models.User, 0, len(s.db.users))
	for _, id := range sortedIDs(s.db.users) {
		users = append(users, s.withRole(s.db.users[id]))
	}
	return users, nil
}

func (s *Users) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, notFound("User")
	}
	u = s.withRole(u)
	return &u, nil
}

func (s *Users) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Username == username {
			return &models.User{ID: u.ID, Username: u.Username, Password: u.Password}, nil
		}
	}
	return nil, notFound("User")
}

func (s *Users) GetPasswordHash(_ context.Context, id int64) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return "", notFound("User")
	}
	return u.Password, nil
}

func (s *Users) GetRoleCode(_ context.Context, id int64) (*string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, notFound("User")
	}
	return s.withRole(u).RoleCode, nil
}

func (s *Users) Create(_ context.Context, user *models.User) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.usernameTaken(user.Username, 0) {
		return 0, apperrors.ErrUsernameAlreadyExists
	}
	if s.roleMissing(user.RoleID) {
		return 0, missingReference("User")
	}

	row := *user
	row.ID = s.db.nextID()
	s.db.users[row.ID] = row
	return row.ID, nil
}

func (s *Users) Update(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if s.usernameTaken(user.Username, user.ID) {
		return apperrors.ErrUsernameAlreadyExists
	}
	if s.roleMissing(user.RoleID) {
		return missingReference("User")
	}

	row := *user
	if row.Password == "" {
		row.Password = existing.Password
	}
	s.db.users[row.ID] = row
	return nil
}

func (s *Users) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return notFound("User")
	}
	u.Password = hash
	s.db.users[id] = u
	return nil
}

func (s *Users) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[id]; !ok {
		return notFound("User")
	}
	for _, sec := range s.db.sections {
		if sec.TeacherID == id {
			return missingReference("User")
		}
	}
	for _, e := range s.db.enrollments {
		if e.StudentID == id {
			return missingReference("User")
		}
	}
	delete(s.db.users, id)
	return nil
}
