package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/enlistment/internal/app/models"
)

const subjectEntity = "Subject"

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db DBTX
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db DBTX) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func subjectSelect() sq.SelectBuilder {
	return psql.Select(
		"subject_id",
		"subject_code",
		"subject_description",
		"subject_schedule",
		"subject_units",
		"course_id",
	).From("subject")
}

func scanSubject(row interface{ Scan(dest ...interface{}) error }, subject *models.Subject) error {
	return row.Scan(
		&subject.ID,
		&subject.Code,
		&subject.Description,
		&subject.Schedule,
		&subject.Units,
		&subject.CourseID,
	)
}

// List retrieves all subjects
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	query, args, err := toSQL(subjectSelect().OrderBy("subject_id"), "subject.list")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "subject.list", subjectEntity)
	}
	defer rows.Close()

	subjects := make([]models.Subject, 0)
	for rows.Next() {
		var subject models.Subject
		if err := scanSubject(rows, &subject); err != nil {
			return nil, translate(err, "subject.list", subjectEntity)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "subject.list", subjectEntity)
	}

	return subjects, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query, args, err := toSQL(subjectSelect().Where(sq.Eq{"subject_id": id}), "subject.get")
	if err != nil {
		return nil, err
	}

	var subject models.Subject
	if err := scanSubject(r.db.QueryRow(ctx, query, args...), &subject); err != nil {
		return nil, translate(err, "subject.get", subjectEntity)
	}
	return &subject, nil
}

// Create inserts a subject and returns its ID
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	query, args, err := toSQL(psql.Insert("subject").
		Columns("subject_code", "subject_description", "subject_schedule", "subject_units", "course_id").
		Values(subject.Code, subject.Description, subject.Schedule, subject.Units, subject.CourseID).
		Suffix("RETURNING subject_id"), "subject.create")
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translate(err, "subject.create", subjectEntity)
	}
	return id, nil
}

// Update replaces every column of a subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	return execAffecting(ctx, r.db, psql.Update("subject").
		SetMap(map[string]interface{}{
			"subject_code":        subject.Code,
			"subject_description": subject.Description,
			"subject_schedule":    subject.Schedule,
			"subject_units":       subject.Units,
			"course_id":           subject.CourseID,
		}).
		Where(sq.Eq{"subject_id": subject.ID}), "subject.update", subjectEntity)
}

// Delete removes a subject
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, psql.Delete("subject").Where(sq.Eq{"subject_id": id}), "subject.delete", subjectEntity)
}
