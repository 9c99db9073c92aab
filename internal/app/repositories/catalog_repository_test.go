package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

func TestCourseRepositoryCRUD(t *testing.T) {
	mock := newMock(t)
	repo := NewCourseRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO course (course_code,course_name) VALUES ($1,$2) RETURNING course_id")).
		WithArgs("BSCS", "Computer Science").
		WillReturnRows(pgxmock.NewRows([]string{"course_id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT course_id, course_code, course_name FROM course WHERE course_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"course_id", "course_code", "course_name"}).AddRow(int64(1), "BSCS", "Computer Science"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE course SET course_code = $1, course_name = $2 WHERE course_id = $3")).
		WithArgs("BSIT", "Information Technology", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM course WHERE course_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	id, err := repo.Create(ctx, &models.Course{Code: "BSCS", Name: "Computer Science"})
	require.NoError(t, err)

	course, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "BSCS", course.Code)

	require.NoError(t, repo.Update(ctx, &models.Course{ID: id, Code: "BSIT", Name: "Information Technology"}))
	require.NoError(t, repo.Delete(ctx, id))
}

func TestCourseRepositoryDuplicateCode(t *testing.T) {
	mock := newMock(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO course")).
		WithArgs("BSCS", "Computer Science").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "course_course_code_key"})

	_, err := repo.Create(context.Background(), &models.Course{Code: "BSCS", Name: "Computer Science"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Course already exists", apperrors.PublicMessage(err, ""))
}

func TestRoleRepositoryGetByCode(t *testing.T) {
	mock := newMock(t)
	repo := NewRoleRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role_id, role_name, role_code FROM role WHERE role_code = $1")).
		WithArgs("ADMIN").
		WillReturnRows(pgxmock.NewRows(roleColumns).AddRow(int64(1), "Administrator", "ADMIN"))

	role, err := repo.GetByCode(context.Background(), "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, int64(1), role.ID)
}

func TestSubjectRepositoryDeleteReferenced(t *testing.T) {
	mock := newMock(t)
	repo := NewSubjectRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subject WHERE subject_id = $1")).
		WithArgs(int64(2)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "section_subject_id_fkey"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 2), apperrors.ErrConflict)
}

func TestSubjectRepositoryList(t *testing.T) {
	mock := newMock(t)
	repo := NewSubjectRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subject ORDER BY subject_id")).
		WillReturnRows(pgxmock.NewRows([]string{"subject_id", "subject_code", "subject_description", "subject_schedule", "subject_units", "course_id"}).
			AddRow(int64(1), "CS101", "Intro to Computing", (*string)(nil), 3, int64(1)))

	subjects, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, 3, subjects[0].Units)
	assert.Nil(t, subjects[0].Schedule)
}
