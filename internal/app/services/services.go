package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/enlistment/internal/app/repositories"
)

// Services holds every service instance
type Services struct {
	UserService       *UserService
	RoleService       *RoleService
	CourseService     *CourseService
	SubjectService    *SubjectService
	SectionService    *SectionService
	EnrollmentService *EnrollmentService
}

// Stores groups the persistence each service depends on
type Stores struct {
	Users       UserStore
	Roles       RoleStore
	Courses     CourseStore
	Subjects    SubjectStore
	Sections    SectionStore
	Enrollments EnrollmentStore
}

// StoresFromRepositories adapts the PostgreSQL repositories
func StoresFromRepositories(repos *repositories.Repositories) Stores {
	return Stores{
		Users:       repos.UserRepository,
		Roles:       repos.RoleRepository,
		Courses:     repos.CourseRepository,
		Subjects:    repos.SubjectRepository,
		Sections:    repos.SectionRepository,
		Enrollments: repos.EnrollmentRepository,
	}
}

// NewServices wires every service
func NewServices(stores Stores, tokens TokenIssuer, revoker TokenRevoker, logger zerolog.Logger) *Services {
	return &Services{
		UserService:       NewUserService(stores.Users, tokens, revoker, logger),
		RoleService:       NewRoleService(stores.Roles),
		CourseService:     NewCourseService(stores.Courses),
		SubjectService:    NewSubjectService(stores.Subjects),
		SectionService:    NewSectionService(stores.Sections, logger),
		EnrollmentService: NewEnrollmentService(stores.Enrollments, logger),
	}
}
