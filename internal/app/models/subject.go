package models

// Subject is a unit of study belonging to a course
type Subject struct {
	ID          int64   `json:"subject_id" db:"subject_id"`
	Code        string  `json:"subject_code" db:"subject_code"`
	Description string  `json:"subject_description" db:"subject_description"`
	Schedule    *string `json:"subject_schedule" db:"subject_schedule"`
	Units       int     `json:"subject_units" db:"subject_units"`
	CourseID    int64   `json:"course_id" db:"course_id"`
}
