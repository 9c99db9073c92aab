package memory

import (
	"context"

	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// Roles is the in-memory role table
type Roles struct {
	db *DB
}

func (s *Roles) codeTaken(code string, except int64) bool {
	for id, r := range s.db.roles {
		if id != except && r.Code == code {
			return true
		}
	}
	return false
}

func (s *Roles) List(_ context.Context) ([]models.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	roles := make([]models.Role, 0, len(s.db.roles))
	for _, id := range sortedIDs(s.db.roles) {
		roles = append(roles, s.db.roles[id])
	}
	return roles, nil
}

func (s *Roles) GetByID(_ context.Context, id int64) (*models.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	r, ok := s.db.roles[id]
	if !ok {
		return nil, notFound("Role")
	}
	return &r, nil
}

func (s *Roles) GetByCode(_ context.Context, code string) (*models.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, r := range s.db.roles {
		if r.Code == code {
			r := r
			return &r, nil
		}
	}
	return nil, notFound("Role")
}

func (s *Roles) Create(_ context.Context, role *models.Role) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.codeTaken(role.Code, 0) {
		return 0, apperrors.NewConflictError("Role already exists")
	}
	row := *role
	row.ID = s.db.nextID()
	s.db.roles[row.ID] = row
	return row.ID, nil
}

func (s *Roles) Update(_ context.Context, role *models.Role) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.roles[role.ID]; !ok {
		return notFound("Role")
	}
	if s.codeTaken(role.Code, role.ID) {
		return apperrors.NewConflictError("Role already exists")
	}
	s.db.roles[role.ID] = *role
	return nil
}

func (s *Roles) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.roles[id]; !ok {
		return notFound("Role")
	}
	for _, u := range s.db.users {
		if u.RoleID != nil && *u.RoleID == id {
			return missingReference("Role")
		}
	}
	delete(s.db.roles, id)
	return nil
}

// Courses is the in-memory course table
type Courses struct {
	db *DB
}

func (s *Courses) codeTaken(code string, except int64) bool {
	for id, c := range s.db.courses {
		if id != except && c.Code == code {
			return true
		}
	}
	return false
}

func (s *Courses) List(_ context.Context) ([]models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	courses := make([]models.Course, 0, len(s.db.courses))
	for _, id := range sortedIDs(s.db.courses) {
		courses = append(courses, s.db.courses[id])
	}
	return courses, nil
}

func (s *Courses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.courses[id]
	if !ok {
		return nil, notFound("Course")
	}
	return &c, nil
}

func (s *Courses) Create(_ context.Context, course *models.Course) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.codeTaken(course.Code, 0) {
		return 0, apperrors.NewConflictError("Course already exists")
	}
	row := *course
	row.ID = s.db.nextID()
	s.db.courses[row.ID] = row
	return row.ID, nil
}

func (s *Courses) Update(_ context.Context, course *models.Course) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.courses[course.ID]; !ok {
		return notFound("Course")
	}
	if s.codeTaken(course.Code, course.ID) {
		return apperrors.NewConflictError("Course already exists")
	}
	s.db.courses[course.ID] = *course
	return nil
}

func (s *Courses) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.courses[id]; !ok {
		return notFound("Course")
	}
	for _, sub := range s.db.subjects {
		if sub.CourseID == id {
			return missingReference("Course")
		}
	}
	delete(s.db.courses, id)
	return nil
}

// Subjects is the in-memory subject table
type Subjects struct {
	db *DB
}

func (s *Subjects) List(_ context.Context) ([]models.Subject, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	subjects := make([]models.Subject, 0, len(s.db.subjects))
	for _, id := range sortedIDs(s.db.subjects) {
		subjects = append(subjects, s.db.subjects[id])
	}
	return subjects, nil
}

func (s *Subjects) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sub, ok := s.db.subjects[id]
	if !ok {
		return nil, notFound("Subject")
	}
	return &sub, nil
}

func (s *Subjects) Create(_ context.Context, subject *models.Subject) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.courses[subject.CourseID]; !ok {
		return 0, missingReference("Subject")
	}
	row := *subject
	row.ID = s.db.nextID()
	s.db.subjects[row.ID] = row
	return row.ID, nil
}

func (s *Subjects) Update(_ context.Context, subject *models.Subject) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.subjects[subject.ID]; !ok {
		return notFound("Subject")
	}
	if _, ok := s.db.courses[subject.CourseID]; !ok {
		return missingReference("Subject")
	}
	s.db.subjects[subject.ID] = *subject
	return nil
}

func (s *Subjects) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.subjects[id]; !ok {
		return notFound("Subject")
	}
	for _, sec := range s.db.sections {
		if sec.SubjectID == id {
			return missingReference("Subject")
		}
	}
	delete(s.db.subjects, id)
	return nil
}
