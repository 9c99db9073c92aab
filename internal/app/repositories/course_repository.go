package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/enlistment/internal/app/models"
)

const courseEntity = "Course"

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db DBTX
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

func courseSelect() sq.SelectBuilder {
	return psql.Select("course_id", "course_code", "course_name").From("course")
}

// List retrieves all courses
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query, args, err := toSQL(courseSelect().OrderBy("course_id"), "course.list")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "course.list", courseEntity)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Name); err != nil {
			return nil, translate(err, "course.list", courseEntity)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "course.list", courseEntity)
	}

	return courses, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := toSQL(courseSelect().Where(sq.Eq{"course_id": id}), "course.get")
	if err != nil {
		return nil, err
	}

	var course models.Course
	if err := r.db.QueryRow(ctx, query, args...).Scan(&course.ID, &course.Code, &course.Name); err != nil {
		return nil, translate(err, "course.get", courseEntity)
	}
	return &course, nil
}

// Create inserts a course and returns its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query, args, err := toSQL(psql.Insert("course").
		Columns("course_code", "course_name").
		Values(course.Code, course.Name).
		Suffix("RETURNING course_id"), "course.create")
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translate(err, "course.create", courseEntity)
	}
	return id, nil
}

// Update replaces every column of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	return execAffecting(ctx, r.db, psql.Update("course").
		Set("course_code", course.Code).
		Set("course_name", course.Name).
		Where(sq.Eq{"course_id": course.ID}), "course.update", courseEntity)
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, psql.Delete("course").Where(sq.Eq{"course_id": id}), "course.delete", courseEntity)
}
