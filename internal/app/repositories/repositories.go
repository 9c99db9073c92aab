package repositories

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	RoleRepository       *RoleRepository
	CourseRepository     *CourseRepository
	SubjectRepository    *SubjectRepository
	SectionRepository    *SectionRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories on a shared pool
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		RoleRepository:       NewRoleRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		SectionRepository:    NewSectionRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
	}
}
