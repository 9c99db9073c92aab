package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// EnrollmentService handles enlistment of students in sections
type EnrollmentService struct {
	enrollments EnrollmentStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments EnrollmentStore, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, logger: logger}
}

func validateTerm(semester, schoolYear string) error {
	if semester == "" {
		return apperrors.NewValidationError("semester is required")
	}
	if schoolYear == "" {
		return apperrors.NewValidationError("school_year is required")
	}
	return nil
}

func parseStatus(raw string) (models.EnrollmentStatus, error) {
	status := models.EnrollmentStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case models.EnrollmentPending, models.EnrollmentEnrolled, models.EnrollmentDropped, models.EnrollmentCompleted:
		return status, nil
	default:
		return "", apperrors.NewValidationError("status must be one of: pending, enrolled, dropped, completed")
	}
}

// List returns every enrollment
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	return s.enrollments.List(ctx)
}

// ListByStudent returns the enrollments of a student
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}

// ListBySection returns the enrollments of a section
func (s *EnrollmentService) ListBySection(ctx context.Context, sectionID int64) ([]models.Enrollment, error) {
	return s.enrollments.ListBySection(ctx, sectionID)
}

// GetByID returns one enrollment
func (s *EnrollmentService) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.enrollments.GetByID(ctx, id)
}

// Create enlists a student in a section with status enrolled
func (s *EnrollmentService) Create(ctx context.Context, req *dto.CreateEnrollmentRequest) (int64, error) {
	enrollment := &models.Enrollment{
		StudentID:  req.StudentID,
		SectionID:  req.SectionID,
		Semester:   strings.TrimSpace(req.Semester),
		SchoolYear: strings.TrimSpace(req.SchoolYear),
		Status:     models.EnrollmentEnrolled,
	}
	if err := validateTerm(enrollment.Semester, enrollment.SchoolYear); err != nil {
		return 0, err
	}

	id, err := s.enrollments.Create(ctx, enrollment)
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("enrollmentID", id).
		Int64("studentID", enrollment.StudentID).
		Int64("sectionID", enrollment.SectionID).
		Msg("Student enlisted")
	return id, nil
}

// Update replaces an enrollment including its status
func (s *EnrollmentService) Update(ctx context.Context, id int64, req *dto.UpdateEnrollmentRequest) error {
	status, err := parseStatus(req.Status)
	if err != nil {
		return err
	}

	enrollment := &models.Enrollment{
		ID:         id,
		StudentID:  req.StudentID,
		SectionID:  req.SectionID,
		Semester:   strings.TrimSpace(req.Semester),
		SchoolYear: strings.TrimSpace(req.SchoolYear),
		Status:     status,
	}
	if err := validateTerm(enrollment.Semester, enrollment.SchoolYear); err != nil {
		return err
	}

	return s.enrollments.Update(ctx, enrollment)
}

// Delete removes an enrollment
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	return s.enrollments.Delete(ctx, id)
}
