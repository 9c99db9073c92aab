package models

// Section is a class of a subject handled by a teacher.
// Subject and teacher fields are only populated on reads.
type Section struct {
	ID         int64   `json:"section_id" db:"section_id"`
	Name       string  `json:"section_name" db:"section_name"`
	Room       *string `json:"room" db:"room"`
	Capacity   *int    `json:"capacity" db:"capacity"`
	IsArchived bool    `json:"is_archived" db:"is_archived"`

	SubjectID          int64   `json:"subject_id" db:"subject_id"`
	SubjectCode        string  `json:"subject_code,omitempty" db:"subject_code"`
	SubjectDescription string  `json:"subject_description,omitempty" db:"subject_description"`
	SubjectSchedule    *string `json:"subject_schedule,omitempty" db:"subject_schedule"`
	SubjectUnits       int     `json:"subject_units,omitempty" db:"subject_units"`

	TeacherID        int64   `json:"teacher_id" db:"teacher_id"`
	TeacherUsername  string  `json:"teacher_username,omitempty" db:"teacher_username"`
	TeacherFirstName *string `json:"teacher_first_name,omitempty" db:"teacher_first_name"`
	TeacherLastName  *string `json:"teacher_last_name,omitempty" db:"teacher_last_name"`
}
