package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/app/migrations"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// openTestDatabase connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests using it are skipped when the variable is unset.
func openTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool, zerolog.Nop()).MigrateFromDirectory(ctx, "../../../migrations"))
	_, err = pool.Exec(ctx, `TRUNCATE enrollment, section, subject, course, users, role RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestPostgresEnrollmentFlow(t *testing.T) {
	pool := openTestDatabase(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	roleID, err := repos.RoleRepository.Create(ctx, &models.Role{Name: "Student", Code: "STUDENT"})
	require.NoError(t, err)

	teacherID, err := repos.UserRepository.Create(ctx, &models.User{Username: "teacher", Password: "x"})
	require.NoError(t, err)
	studentID, err := repos.UserRepository.Create(ctx, &models.User{RoleID: &roleID, Username: "alice", Password: "x"})
	require.NoError(t, err)
	otherID, err := repos.UserRepository.Create(ctx, &models.User{Username: "bob", Password: "x"})
	require.NoError(t, err)

	_, err = repos.UserRepository.Create(ctx, &models.User{Username: "alice", Password: "y"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)

	code, err := repos.UserRepository.GetRoleCode(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, "STUDENT", *code)

	courseID, err := repos.CourseRepository.Create(ctx, &models.Course{Code: "BSCS", Name: "Computer Science"})
	require.NoError(t, err)
	subjectID, err := repos.SubjectRepository.Create(ctx, &models.Subject{Code: "CS101", Description: "Intro", Units: 3, CourseID: courseID})
	require.NoError(t, err)
	sectionID, err := repos.SectionRepository.Create(ctx, &models.Section{
		Name: "1A", SubjectID: subjectID, TeacherID: teacherID, Room: strPtr("R1"), Capacity: intPtr(1),
	})
	require.NoError(t, err)

	section, err := repos.SectionRepository.GetByID(ctx, sectionID)
	require.NoError(t, err)
	assert.Equal(t, "CS101", section.SubjectCode)
	assert.Equal(t, "teacher", section.TeacherUsername)

	enrollmentID, err := repos.EnrollmentRepository.Create(ctx, &models.Enrollment{
		StudentID: studentID, SectionID: sectionID, Semester: "1st", SchoolYear: "2024-2025",
	})
	require.NoError(t, err)

	enrollment, err := repos.EnrollmentRepository.GetByID(ctx, enrollmentID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	assert.Equal(t, "alice", enrollment.StudentUsername)

	_, err = repos.EnrollmentRepository.Create(ctx, &models.Enrollment{
		StudentID: studentID, SectionID: sectionID, Semester: "1st", SchoolYear: "2024-2025",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	_, err = repos.EnrollmentRepository.Create(ctx, &models.Enrollment{
		StudentID: otherID, SectionID: sectionID, Semester: "1st", SchoolYear: "2024-2025",
	})
	assert.ErrorIs(t, err, apperrors.ErrSectionFull)

	spareID, err := repos.SectionRepository.Create(ctx, &models.Section{Name: "1B", SubjectID: subjectID, TeacherID: teacherID})
	require.NoError(t, err)
	moved := &models.Enrollment{StudentID: otherID, SectionID: spareID, Semester: "1st", SchoolYear: "2024-2025", Status: models.EnrollmentEnrolled}
	moved.ID, err = repos.EnrollmentRepository.Create(ctx, moved)
	require.NoError(t, err)

	moved.SectionID = sectionID
	assert.ErrorIs(t, repos.EnrollmentRepository.Update(ctx, moved), apperrors.ErrSectionFull)

	require.NoError(t, repos.SectionRepository.Archive(ctx, sectionID))
	assert.ErrorIs(t, repos.EnrollmentRepository.Update(ctx, moved), apperrors.ErrSectionArchived)
	archived, err := repos.SectionRepository.ListArchived(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)

	_, err = repos.EnrollmentRepository.Create(ctx, &models.Enrollment{
		StudentID: otherID, SectionID: sectionID, Semester: "2nd", SchoolYear: "2024-2025",
	})
	assert.ErrorIs(t, err, apperrors.ErrSectionArchived)

	err = repos.SectionRepository.Delete(ctx, sectionID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	require.NoError(t, repos.EnrollmentRepository.Delete(ctx, enrollmentID))
	require.NoError(t, repos.SectionRepository.Delete(ctx, sectionID))
	_, err = repos.SectionRepository.GetByID(ctx, sectionID)
	assert.True(t, apperrors.Is(err, apperrors.ErrResourceNotFound))
}
