package services

import (
	"context"
	"strings"

	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// SubjectService handles subject operations
type SubjectService struct {
	subjects SubjectStore
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjects SubjectStore) *SubjectService {
	return &SubjectService{subjects: subjects}
}

func subjectFromRequest(req *dto.SubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		Code:        strings.TrimSpace(req.SubjectCode),
		Description: strings.TrimSpace(req.SubjectDescription),
		Schedule:    normalizeOptional(req.SubjectSchedule),
		Units:       req.SubjectUnits,
		CourseID:    req.CourseID,
	}
	switch {
	case subject.Code == "":
		return nil, apperrors.NewValidationError("subject_code is required")
	case subject.Description == "":
		return nil, apperrors.NewValidationError("subject_description is required")
	case subject.Units < 0:
		return nil, apperrors.NewValidationError("subject_units cannot be negative")
	case subject.CourseID <= 0:
		return nil, apperrors.NewValidationError("course_id is required")
	}
	return subject, nil
}

// List returns every subject
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.List(ctx)
}

// GetByID returns one subject
func (s *SubjectService) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

// Create adds a subject and returns its ID
func (s *SubjectService) Create(ctx context.Context, req *dto.SubjectRequest) (int64, error) {
	subject, err := subjectFromRequest(req)
	if err != nil {
		return 0, err
	}
	return s.subjects.Create(ctx, subject)
}

// Update replaces a subject
func (s *SubjectService) Update(ctx context.Context, id int64, req *dto.SubjectRequest) error {
	subject, err := subjectFromRequest(req)
	if err != nil {
		return err
	}
	subject.ID = id
	return s.subjects.Update(ctx, subject)
}

// Delete removes a subject
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	return s.subjects.Delete(ctx, id)
}
