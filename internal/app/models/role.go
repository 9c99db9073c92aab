package models

// Role represents a user role such as ADMIN or STUDENT
type Role struct {
	ID   int64  `json:"role_id" db:"role_id"`
	Name string `json:"role_name" db:"role_name"`
	Code string `json:"role_code" db:"role_code"`
}
