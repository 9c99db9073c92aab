package models

// Enrollment registers a student to a section for a semester and school year.
// Student and section details are only populated on reads.
type Enrollment struct {
	ID         int64            `json:"enrollment_id" db:"enrollment_id"`
	StudentID  int64            `json:"student_id" db:"student_id"`
	SectionID  int64            `json:"section_id" db:"section_id"`
	Semester   string           `json:"semester" db:"semester"`
	SchoolYear string           `json:"school_year" db:"school_year"`
	Status     EnrollmentStatus `json:"status" db:"status"`

	StudentUsername  string  `json:"student_username,omitempty" db:"student_username"`
	StudentFirstName *string `json:"student_first_name,omitempty" db:"student_first_name"`
	StudentLastName  *string `json:"student_last_name,omitempty" db:"student_last_name"`
	SectionName      string  `json:"section_name,omitempty" db:"section_name"`
	Room             *string `json:"room,omitempty" db:"room"`
	Capacity         *int    `json:"capacity,omitempty" db:"capacity"`
}
