package dto

// CreateUserRequest represents user registration data
type CreateUserRequest struct {
	RoleID    *int64  `json:"role_id" binding:"omitempty,gt=0"`
	Username  string  `json:"username" binding:"required,notblank,max=50"`
	Password  string  `json:"password" binding:"required,min=6,max=72"`
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" binding:"omitempty,notblank,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,notblank,max=100"`
}

// UpdateUserRequest replaces every profile field of a user.
// Password is optional; when present it is re-hashed.
type UpdateUserRequest struct {
	RoleID    *int64  `json:"role_id" binding:"omitempty,gt=0"`
	Username  string  `json:"username" binding:"required,notblank,max=50"`
	Password  *string `json:"password" binding:"omitempty,min=6,max=72"`
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" binding:"omitempty,notblank,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,notblank,max=100"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}
