package services

import (
	"context"
	"time"

	"github.com/yigit/enlistment/internal/app/models"
)

// UserStore is the persistence the user service needs
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetPasswordHash(ctx context.Context, id int64) (string, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}

// RoleStore is the persistence the role service needs
type RoleStore interface {
	List(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, id int64) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) (int64, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore is the persistence the course service needs
type CourseStore interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// SubjectStore is the persistence the subject service needs
type SubjectStore interface {
	List(ctx context.Context) ([]models.Subject, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// SectionStore is the persistence the section service needs
type SectionStore interface {
	List(ctx context.Context) ([]models.Section, error)
	ListArchived(ctx context.Context) ([]models.Section, error)
	ListActive(ctx context.Context) ([]models.Section, error)
	GetByID(ctx context.Context, id int64) (*models.Section, error)
	Create(ctx context.Context, section *models.Section) (int64, error)
	Update(ctx context.Context, section *models.Section) error
	Archive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore is the persistence the enrollment service needs
type EnrollmentStore interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	ListBySection(ctx context.Context, sectionID int64) ([]models.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// TokenIssuer creates session tokens
type TokenIssuer interface {
	Issue(userID int64) (string, int64, error)
}

// TokenRevoker records logged out tokens
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}
