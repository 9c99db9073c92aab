package memory

import (
	"context"

	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// Enrollments is the in-memory enrollment table
type Enrollments struct {
	db *DB
}

// view fills the joined student and section columns; the caller holds the lock
func (s *Enrollments) view(e models.Enrollment) models.Enrollment {
	if u, ok := s.db.users[e.StudentID]; ok {
		e.StudentUsername = u.Username
		e.StudentFirstName = u.FirstName
		e.StudentLastName = u.LastName
	}
	if sec, ok := s.db.sections[e.SectionID]; ok {
		e.SectionName = sec.Name
		e.Room = sec.Room
		e.Capacity = sec.Capacity
	}
	return e
}

func (s *Enrollments) duplicate(e *models.Enrollment) bool {
	for id, other := range s.db.enrollments {
		if id != e.ID && other.StudentID == e.StudentID && other.SectionID == e.SectionID &&
			other.Semester == e.Semester && other.SchoolYear == e.SchoolYear {
			return true
		}
	}
	return false
}

// claimSeat mirrors the section checks of the SQL repository; the caller holds the lock
func (s *Enrollments) claimSeat(sectionID, exceptID int64, takesSeat bool) error {
	sec, ok := s.db.sections[sectionID]
	if !ok {
		return notFound("Section")
	}
	if sec.IsArchived {
		return apperrors.ErrSectionArchived
	}
	if !takesSeat || sec.Capacity == nil {
		return nil
	}

	taken := 0
	for id, e := range s.db.enrollments {
		if id != exceptID && e.SectionID == sectionID && e.Status != models.EnrollmentDropped {
			taken++
		}
	}
	if taken >= *sec.Capacity {
		return apperrors.ErrSectionFull
	}
	return nil
}

func (s *Enrollments) filter(keep func(models.Enrollment) bool) []models.Enrollment {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	enrollments := make([]models.Enrollment, 0)
	for _, id := range sortedIDs(s.db.enrollments) {
		e := s.db.enrollments[id]
		if keep(e) {
			enrollments = append(enrollments, s.view(e))
		}
	}
	return enrollments
}

func (s *Enrollments) List(_ context.Context) ([]models.Enrollment, error) {
	return s.filter(func(models.Enrollment) bool { return true }), nil
}

func (s *Enrollments) ListByStudent(_ context.Context, studentID int64) ([]models.Enrollment, error) {
	return s.filter(func(e models.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (s *Enrollments) ListBySection(_ context.Context, sectionID int64) ([]models.Enrollment, error) {
	return s.filter(func(e models.Enrollment) bool { return e.SectionID == sectionID }), nil
}

func (s *Enrollments) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	e, ok := s.db.enrollments[id]
	if !ok {
		return nil, notFound("Enrollment")
	}
	e = s.view(e)
	return &e, nil
}

func (s *Enrollments) Create(_ context.Context, enrollment *models.Enrollment) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	status := enrollment.Status
	if status == "" {
		status = models.EnrollmentEnrolled
	}
	if err := s.claimSeat(enrollment.SectionID, 0, status != models.EnrollmentDropped); err != nil {
		return 0, err
	}
	if _, ok := s.db.users[enrollment.StudentID]; !ok {
		return 0, missingReference("Enrollment")
	}
	if s.duplicate(enrollment) {
		return 0, apperrors.ErrDuplicateEnrollment
	}

	row := models.Enrollment{
		ID:         s.db.nextID(),
		StudentID:  enrollment.StudentID,
		SectionID:  enrollment.SectionID,
		Semester:   enrollment.Semester,
		SchoolYear: enrollment.SchoolYear,
		Status:     status,
	}
	s.db.enrollments[row.ID] = row
	return row.ID, nil
}

func (s *Enrollments) Update(_ context.Context, enrollment *models.Enrollment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	current, ok := s.db.enrollments[enrollment.ID]
	if !ok {
		return notFound("Enrollment")
	}
	moved := current.SectionID != enrollment.SectionID
	reinstated := current.Status == models.EnrollmentDropped && enrollment.Status != models.EnrollmentDropped
	if moved || reinstated {
		if err := s.claimSeat(enrollment.SectionID, enrollment.ID, enrollment.Status != models.EnrollmentDropped); err != nil {
			return err
		}
	}
	_, studentOK := s.db.users[enrollment.StudentID]
	_, sectionOK := s.db.sections[enrollment.SectionID]
	if !studentOK || !sectionOK {
		return missingReference("Enrollment")
	}
	if s.duplicate(enrollment) {
		return apperrors.ErrDuplicateEnrollment
	}

	s.db.enrollments[enrollment.ID] = models.Enrollment{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		SectionID:  enrollment.SectionID,
		Semester:   enrollment.Semester,
		SchoolYear: enrollment.SchoolYear,
		Status:     enrollment.Status,
	}
	return nil
}

func (s *Enrollments) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.enrollments[id]; !ok {
		return notFound("Enrollment")
	}
	delete(s.db.enrollments, id)
	return nil
}
