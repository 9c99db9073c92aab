package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// SectionService handles section operations
type SectionService struct {
	sections SectionStore
	logger   zerolog.Logger
}

// NewSectionService creates a new SectionService
func NewSectionService(sections SectionStore, logger zerolog.Logger) *SectionService {
	return &SectionService{sections: sections, logger: logger}
}

func sectionFromRequest(req *dto.SectionRequest) (*models.Section, error) {
	section := &models.Section{
		Name:      strings.TrimSpace(req.SectionName),
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		Room:      normalizeOptional(req.Room),
		Capacity:  req.Capacity,
	}
	switch {
	case section.Name == "":
		return nil, apperrors.NewValidationError("section_name is required")
	case section.SubjectID <= 0:
		return nil, apperrors.NewValidationError("subject_id is required")
	case section.TeacherID <= 0:
		return nil, apperrors.NewValidationError("teacher_id is required")
	case section.Capacity != nil && *section.Capacity < 0:
		return nil, apperrors.NewValidationError("capacity cannot be negative")
	}
	return section, nil
}

// List returns every section
func (s *SectionService) List(ctx context.Context) ([]models.Section, error) {
	return s.sections.List(ctx)
}

// ListArchived returns archived sections
func (s *SectionService) ListArchived(ctx context.Context) ([]models.Section, error) {
	return s.sections.ListArchived(ctx)
}

// ListActive returns sections that are not archived
func (s *SectionService) ListActive(ctx context.Context) ([]models.Section, error) {
	return s.sections.ListActive(ctx)
}

// GetByID returns one section
func (s *SectionService) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	return s.sections.GetByID(ctx, id)
}

// Create adds a section and returns its ID
func (s *SectionService) Create(ctx context.Context, req *dto.SectionRequest) (int64, error) {
	section, err := sectionFromRequest(req)
	if err != nil {
		return 0, err
	}
	return s.sections.Create(ctx, section)
}

// Update replaces a section
func (s *SectionService) Update(ctx context.Context, id int64, req *dto.SectionRequest) error {
	section, err := sectionFromRequest(req)
	if err != nil {
		return err
	}
	section.ID = id
	return s.sections.Update(ctx, section)
}

// Archive retires a section; archived sections accept no new enrollments
func (s *SectionService) Archive(ctx context.Context, id int64) error {
	if err := s.sections.Archive(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("sectionID", id).Msg("Section archived")
	return nil
}

// Delete removes a section
func (s *SectionService) Delete(ctx context.Context, id int64) error {
	return s.sections.Delete(ctx, id)
}
