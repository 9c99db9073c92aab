package models

// User is a row of the users table joined with its role
type User struct {
	ID        int64   `json:"user_id" db:"user_id" example:"1"`
	RoleID    *int64  `json:"role_id" db:"role_id" example:"3"`
	RoleName  *string `json:"role_name" db:"role_name" example:"Student"`
	RoleCode  *string `json:"role_code" db:"role_code" example:"STUDENT"`
	Username  string  `json:"username" db:"username" example:"alice"`
	Password  string  `json:"-" db:"password"` // bcrypt hash, never serialized
	Email     *string `json:"email" db:"email" example:"alice@school.edu"`
	FirstName *string `json:"first_name" db:"first_name" example:"Alice"`
	LastName  *string `json:"last_name" db:"last_name" example:"Reyes"`
}
