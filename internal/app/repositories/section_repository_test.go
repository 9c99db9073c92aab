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

var sectionColumns = []string{
	"section_id", "section_name", "room", "capacity", "is_archived",
	"subject_id", "subject_code", "subject_description", "subject_schedule", "subject_units",
	"teacher_id", "username", "first_name", "last_name",
}

func TestSectionRepositoryListArchived(t *testing.T) {
	mock := newMock(t)
	repo := NewSectionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.is_archived = $1 ORDER BY s.section_id")).
		WithArgs(true).
		WillReturnRows(pgxmock.NewRows(sectionColumns).
			AddRow(int64(4), "BSCS-1A", strPtr("R101"), intPtr(40), true,
				int64(2), "CS101", "Intro to Computing", strPtr("MWF 9-10"), 3,
				int64(7), "mreyes", strPtr("Maria"), strPtr("Reyes")))

	sections, err := repo.ListArchived(context.Background())
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.True(t, sections[0].IsArchived)
	assert.Equal(t, "CS101", sections[0].SubjectCode)
	assert.Equal(t, "mreyes", sections[0].TeacherUsername)
	assert.Equal(t, 40, *sections[0].Capacity)
}

func TestSectionRepositoryListActiveEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewSectionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.is_archived = $1")).
		WithArgs(false).
		WillReturnRows(pgxmock.NewRows(sectionColumns))

	sections, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestSectionRepositoryArchive(t *testing.T) {
	mock := newMock(t)
	repo := NewSectionRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE section SET is_archived = $1 WHERE section_id = $2")).
		WithArgs(true, int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE section SET is_archived = $1 WHERE section_id = $2")).
		WithArgs(true, int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.Archive(context.Background(), 4))
	assert.ErrorIs(t, repo.Archive(context.Background(), 99), apperrors.ErrResourceNotFound)
}

func TestSectionRepositoryCreateUnknownSubject(t *testing.T) {
	mock := newMock(t)
	repo := NewSectionRepository(mock)

	section := &models.Section{Name: "BSCS-1A", SubjectID: 99, TeacherID: 7}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO section (section_name,subject_id,teacher_id,room,capacity)")).
		WithArgs("BSCS-1A", int64(99), int64(7), section.Room, section.Capacity).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "section_subject_id_fkey"})

	_, err := repo.Create(context.Background(), section)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
