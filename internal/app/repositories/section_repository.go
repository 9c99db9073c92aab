package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/enlistment/internal/app/models"
)

const sectionEntity = "Section"

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db DBTX
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db DBTX) *SectionRepository {
	return &SectionRepository{db: db}
}

// sectionSelect reads sections joined with their subject and teacher
func sectionSelect() sq.SelectBuilder {
	return psql.Select(
		"s.section_id",
		"s.section_name",
		"s.room",
		"s.capacity",
		"s.is_archived",
		"s.subject_id",
		"sub.subject_code",
		"sub.subject_description",
		"sub.subject_schedule",
		"sub.subject_units",
		"s.teacher_id",
		"t.username",
		"t.first_name",
		"t.last_name",
	).
		From("section s").
		Join("subject sub ON sub.subject_id = s.subject_id").
		Join("users t ON t.user_id = s.teacher_id")
}

func scanSection(row interface{ Scan(dest ...interface{}) error }, section *models.Section) error {
	return row.Scan(
		&section.ID,
		&section.Name,
		&section.Room,
		&section.Capacity,
		&section.IsArchived,
		&section.SubjectID,
		&section.SubjectCode,
		&section.SubjectDescription,
		&section.SubjectSchedule,
		&section.SubjectUnits,
		&section.TeacherID,
		&section.TeacherUsername,
		&section.TeacherFirstName,
		&section.TeacherLastName,
	)
}

func (r *SectionRepository) list(ctx context.Context, where sq.Sqlizer, operation string) ([]models.Section, error) {
	builder := sectionSelect().OrderBy("s.section_id")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := toSQL(builder, operation)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, operation, sectionEntity)
	}
	defer rows.Close()

	sections := make([]models.Section, 0)
	for rows.Next() {
		var section models.Section
		if err := scanSection(rows, &section); err != nil {
			return nil, translate(err, operation, sectionEntity)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, operation, sectionEntity)
	}

	return sections, nil
}

// List retrieves all sections
func (r *SectionRepository) List(ctx context.Context) ([]models.Section, error) {
	return r.list(ctx, nil, "section.list")
}

// ListArchived retrieves archived sections
func (r *SectionRepository) ListArchived(ctx context.Context) ([]models.Section, error) {
	return r.list(ctx, sq.Eq{"s.is_archived": true}, "section.list_archived")
}

// ListActive retrieves sections that are not archived
func (r *SectionRepository) ListActive(ctx context.Context) ([]models.Section, error) {
	return r.list(ctx, sq.Eq{"s.is_archived": false}, "section.list_active")
}

// GetByID retrieves a section by ID
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	query, args, err := toSQL(sectionSelect().Where(sq.Eq{"s.section_id": id}), "section.get")
	if err != nil {
		return nil, err
	}

	var section models.Section
	if err := scanSection(r.db.QueryRow(ctx, query, args...), &section); err != nil {
		return nil, translate(err, "section.get", sectionEntity)
	}
	return &section, nil
}

// Create inserts a section and returns its ID. New sections are never archived.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) (int64, error) {
	query, args, err := toSQL(psql.Insert("section").
		Columns("section_name", "subject_id", "teacher_id", "room", "capacity").
		Values(section.Name, section.SubjectID, section.TeacherID, section.Room, section.Capacity).
		Suffix("RETURNING section_id"), "section.create")
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translate(err, "section.create", sectionEntity)
	}
	return id, nil
}

// Update replaces the editable columns of a section; the archive flag is untouched
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	return execAffecting(ctx, r.db, psql.Update("section").
		SetMap(map[string]interface{}{
			"section_name": section.Name,
			"subject_id":   section.SubjectID,
			"teacher_id":   section.TeacherID,
			"room":         section.Room,
			"capacity":     section.Capacity,
		}).
		Where(sq.Eq{"section_id": section.ID}), "section.update", sectionEntity)
}

// Archive marks a section as archived. There is no inverse operation.
func (r *SectionRepository) Archive(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, psql.Update("section").
		Set("is_archived", true).
		Where(sq.Eq{"section_id": id}), "section.archive", sectionEntity)
}

// Delete removes a section
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, psql.Delete("section").Where(sq.Eq{"section_id": id}), "section.delete", sectionEntity)
}
