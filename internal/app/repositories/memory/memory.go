// Package memory is an in-process implementation of the repositories with the
// same error behavior as the PostgreSQL ones. It backs handler and service tests
// only; the server always runs on PostgreSQL.
//
// Every rule the SQL repositories enforce (unique keys, foreign keys, the
// section checks on enrollment create and update) is repeated here, so a rule
// added to one side must be added to the other.
package memory

import (
	"sort"
	"sync"

	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// DB holds every table behind one lock
type DB struct {
	mu          sync.Mutex
	seq         int64
	users       map[int64]models.User
	roles       map[int64]models.Role
	courses     map[int64]models.Course
	subjects    map[int64]models.Subject
	sections    map[int64]models.Section
	enrollments map[int64]models.Enrollment
}

// New creates an empty DB
func New() *DB {
	return &DB{
		users:       make(map[int64]models.User),
		roles:       make(map[int64]models.Role),
		courses:     make(map[int64]models.Course),
		subjects:    make(map[int64]models.Subject),
		sections:    make(map[int64]models.Section),
		enrollments: make(map[int64]models.Enrollment),
	}
}

func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

func notFound(entity string) error {
	return apperrors.NewResourceNotFoundError(entity + " not found")
}

func missingReference(entity string) error {
	return apperrors.NewConflictError(entity + " references a missing record or is still referenced")
}

func sortedIDs[T any](rows map[int64]T) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Users returns the user table
func (db *DB) Users() *Users { return &Users{db: db} }

// Roles returns the role table
func (db *DB) Roles() *Roles { return &Roles{db: db} }

// Courses returns the course table
func (db *DB) Courses() *Courses { return &Courses{db: db} }

// Subjects returns the subject table
func (db *DB) Subjects() *Subjects { return &Subjects{db: db} }

// Sections returns the section table
func (db *DB) Sections() *Sections { return &Sections{db: db} }

// Enrollments returns the enrollment table
func (db *DB) Enrollments() *Enrollments { return &Enrollments{db: db} }
