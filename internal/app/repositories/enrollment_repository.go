package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/db"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/dberrors"
)

const enrollmentEntity = "Enrollment"

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db DBTX
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// enrollmentSelect reads enrollments joined with the student and section
func enrollmentSelect() sq.SelectBuilder {
	return psql.Select(
		"e.enrollment_id",
		"e.student_id",
		"e.section_id",
		"e.semester",
		"e.school_year",
		"e.status",
		"u.username",
		"u.first_name",
		"u.last_name",
		"s.section_name",
		"s.room",
		"s.capacity",
	).
		From("enrollment e").
		Join("users u ON u.user_id = e.student_id").
		Join("section s ON s.section_id = e.section_id")
}

func scanEnrollment(row interface{ Scan(dest ...interface{}) error }, e *models.Enrollment) error {
	return row.Scan(
		&e.ID,
		&e.StudentID,
		&e.SectionID,
		&e.Semester,
		&e.SchoolYear,
		&e.Status,
		&e.StudentUsername,
		&e.StudentFirstName,
		&e.StudentLastName,
		&e.SectionName,
		&e.Room,
		&e.Capacity,
	)
}

func (r *EnrollmentRepository) list(ctx context.Context, where sq.Sqlizer, operation string) ([]models.Enrollment, error) {
	builder := enrollmentSelect().OrderBy("e.enrollment_id")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := toSQL(builder, operation)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, operation, enrollmentEntity)
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		var enrollment models.Enrollment
		if err := scanEnrollment(rows, &enrollment); err != nil {
			return nil, translate(err, operation, enrollmentEntity)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, operation, enrollmentEntity)
	}

	return enrollments, nil
}

// List retrieves all enrollments
func (r *EnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	return r.list(ctx, nil, "enrollment.list")
}

// ListByStudent retrieves the enrollments of one student
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	return r.list(ctx, sq.Eq{"e.student_id": studentID}, "enrollment.list_by_student")
}

// ListBySection retrieves the enrollments of one section
func (r *EnrollmentRepository) ListBySection(ctx context.Context, sectionID int64) ([]models.Enrollment, error) {
	return r.list(ctx, sq.Eq{"e.section_id": sectionID}, "enrollment.list_by_section")
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query, args, err := toSQL(enrollmentSelect().Where(sq.Eq{"e.enrollment_id": id}), "enrollment.get")
	if err != nil {
		return nil, err
	}

	var enrollment models.Enrollment
	if err := scanEnrollment(r.db.QueryRow(ctx, query, args...), &enrollment); err != nil {
		return nil, translate(err, "enrollment.get", enrollmentEntity)
	}
	return &enrollment, nil
}

// claimSeat locks the section row and rejects archived sections. When takesSeat
// is set it also rejects full sections; rows with status dropped and the row
// identified by exceptID (0 for none) do not count against capacity.
func claimSeat(ctx context.Context, tx pgx.Tx, sectionID, exceptID int64, takesSeat bool) error {
	query, args, err := toSQL(psql.Select("capacity", "is_archived").
		From("section").
		Where(sq.Eq{"section_id": sectionID}).
		Suffix("FOR UPDATE"), "enrollment.lock_section")
	if err != nil {
		return err
	}

	var capacity *int
	var archived bool
	if err := tx.QueryRow(ctx, query, args...).Scan(&capacity, &archived); err != nil {
		return translate(err, "enrollment.lock_section", sectionEntity)
	}
	if archived {
		return apperrors.ErrSectionArchived
	}
	if !takesSeat || capacity == nil {
		return nil
	}

	count := psql.Select("COUNT(*)").
		From("enrollment").
		Where(sq.Eq{"section_id": sectionID}).
		Where(sq.NotEq{"status": string(models.EnrollmentDropped)})
	if exceptID != 0 {
		count = count.Where(sq.NotEq{"enrollment_id": exceptID})
	}
	query, args, err = toSQL(count, "enrollment.count_section")
	if err != nil {
		return err
	}

	var taken int
	if err := tx.QueryRow(ctx, query, args...).Scan(&taken); err != nil {
		return translate(err, "enrollment.count_section", enrollmentEntity)
	}
	if taken >= *capacity {
		return apperrors.ErrSectionFull
	}
	return nil
}

// Create enlists a student. The section row is locked for the duration of the
// transaction so concurrent enlistments cannot exceed its capacity. Dropped
// enrollments do not count against capacity.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	status := enrollment.Status
	if status == "" {
		status = models.EnrollmentEnrolled
	}

	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := claimSeat(ctx, tx, enrollment.SectionID, 0, status != models.EnrollmentDropped); err != nil {
			return err
		}

		query, args, err := toSQL(psql.Insert("enrollment").
			Columns("student_id", "section_id", "semester", "school_year", "status").
			Values(enrollment.StudentID, enrollment.SectionID, enrollment.Semester, enrollment.SchoolYear, string(status)).
			Suffix("RETURNING enrollment_id"), "enrollment.create")
		if err != nil {
			return err
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateEnrollment
			}
			return translate(err, "enrollment.create", enrollmentEntity)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update replaces every column of an enrollment. Moving to another section, or
// reinstating a dropped enrollment, goes through the same archived and capacity
// checks as Create.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query, args, err := toSQL(psql.Select("section_id", "status").
			From("enrollment").
			Where(sq.Eq{"enrollment_id": enrollment.ID}).
			Suffix("FOR UPDATE"), "enrollment.lock")
		if err != nil {
			return err
		}

		var currentSection int64
		var currentStatus string
		if err := tx.QueryRow(ctx, query, args...).Scan(&currentSection, &currentStatus); err != nil {
			return translate(err, "enrollment.lock", enrollmentEntity)
		}

		moved := currentSection != enrollment.SectionID
		reinstated := currentStatus == string(models.EnrollmentDropped) && enrollment.Status != models.EnrollmentDropped
		if moved || reinstated {
			if err := claimSeat(ctx, tx, enrollment.SectionID, enrollment.ID, enrollment.Status != models.EnrollmentDropped); err != nil {
				return err
			}
		}

		query, args, err = toSQL(psql.Update("enrollment").
			SetMap(map[string]interface{}{
				"student_id":  enrollment.StudentID,
				"section_id":  enrollment.SectionID,
				"semester":    enrollment.Semester,
				"school_year": enrollment.SchoolYear,
				"status":      string(enrollment.Status),
			}).
			Where(sq.Eq{"enrollment_id": enrollment.ID}), "enrollment.update")
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateEnrollment
			}
			return translate(err, "enrollment.update", enrollmentEntity)
		}
		return nil
	})
}

// Delete removes an enrollment
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, psql.Delete("enrollment").Where(sq.Eq{"enrollment_id": id}), "enrollment.delete", enrollmentEntity)
}
