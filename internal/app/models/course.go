package models

// Course represents a degree program offered by the college
type Course struct {
	ID   int64  `json:"course_id" db:"course_id"`
	Code string `json:"course_code" db:"course_code"`
	Name string `json:"course_name" db:"course_name"`
}
