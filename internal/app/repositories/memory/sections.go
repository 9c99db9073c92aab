package memory

import (
	"context"

	"github.com/yigit/enlistment/internal/app/models"
)

// Sections is the in-memory section table
type Sections struct {
	db *DB
}

// view fills the joined subject and teacher columns; the caller holds the lock
func (s *Sections) view(sec models.Section) models.Section {
	if sub, ok := s.db.subjects[sec.SubjectID]; ok {
		sec.SubjectCode = sub.Code
		sec.SubjectDescription = sub.Description
		sec.SubjectSchedule = sub.Schedule
		sec.SubjectUnits = sub.Units
	}
	if t, ok := s.db.users[sec.TeacherID]; ok {
		sec.TeacherUsername = t.Username
		sec.TeacherFirstName = t.FirstName
		sec.TeacherLastName = t.LastName
	}
	return sec
}

func (s *Sections) referencesMissing(sec *models.Section) bool {
	_, subjectOK := s.db.subjects[sec.SubjectID]
	_, teacherOK := s.db.users[sec.TeacherID]
	return !subjectOK || !teacherOK
}

func (s *Sections) filter(keep func(models.Section) bool) []models.Section {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sections := make([]models.Section, 0)
	for _, id := range sortedIDs(s.db.sections) {
		sec := s.db.sections[id]
		if keep(sec) {
			sections = append(sections, s.view(sec))
		}
	}
	return sections
}

func (s *Sections) List(_ context.Context) ([]models.Section, error) {
	return s.filter(func(models.Section) bool { return true }), nil
}

func (s *Sections) ListArchived(_ context.Context) ([]models.Section, error) {
	return s.filter(func(sec models.Section) bool { return sec.IsArchived }), nil
}

func (s *Sections) ListActive(_ context.Context) ([]models.Section, error) {
	return s.filter(func(sec models.Section) bool { return !sec.IsArchived }), nil
}

func (s *Sections) GetByID(_ context.Context, id int64) (*models.Section, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sec, ok := s.db.sections[id]
	if !ok {
		return nil, notFound("Section")
	}
	sec = s.view(sec)
	return &sec, nil
}

func (s *Sections) Create(_ context.Context, section *models.Section) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.referencesMissing(section) {
		return 0, missingReference("Section")
	}
	row := models.Section{
		ID:        s.db.nextID(),
		Name:      section.Name,
		Room:      section.Room,
		Capacity:  section.Capacity,
		SubjectID: section.SubjectID,
		TeacherID: section.TeacherID,
	}
	s.db.sections[row.ID] = row
	return row.ID, nil
}

func (s *Sections) Update(_ context.Context, section *models.Section) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.sections[section.ID]
	if !ok {
		return notFound("Section")
	}
	if s.referencesMissing(section) {
		return missingReference("Section")
	}
	existing.Name = section.Name
	existing.Room = section.Room
	existing.Capacity = section.Capacity
	existing.SubjectID = section.SubjectID
	existing.TeacherID = section.TeacherID
	s.db.sections[section.ID] = existing
	return nil
}

func (s *Sections) Archive(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sec, ok := s.db.sections[id]
	if !ok {
		return notFound("Section")
	}
	sec.IsArchived = true
	s.db.sections[id] = sec
	return nil
}

func (s *Sections) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.sections[id]; !ok {
		return notFound("Section")
	}
	for _, e := range s.db.enrollments {
		if e.SectionID == id {
			return missingReference("Section")
		}
	}
	delete(s.db.sections, id)
	return nil
}
