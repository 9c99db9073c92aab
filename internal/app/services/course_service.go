package services

import (
	"context"
	"strings"

	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// CourseService handles course operations
type CourseService struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

func courseFromRequest(req *dto.CourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code: strings.TrimSpace(req.CourseCode),
		Name: strings.TrimSpace(req.CourseName),
	}
	if course.Code == "" {
		return nil, apperrors.NewValidationError("course_code is required")
	}
	if course.Name == "" {
		return nil, apperrors.NewValidationError("course_name is required")
	}
	return course, nil
}

// List returns every course
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

// GetByID returns one course
func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// Create adds a course and returns its ID
func (s *CourseService) Create(ctx context.Context, req *dto.CourseRequest) (int64, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return 0, err
	}
	return s.courses.Create(ctx, course)
}

// Update replaces a course
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.CourseRequest) error {
	course, err := courseFromRequest(req)
	if err != nil {
		return err
	}
	course.ID = id
	return s.courses.Update(ctx, course)
}

// Delete removes a course
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}
