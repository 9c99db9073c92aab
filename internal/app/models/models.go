package models

// RoleCode is the code column of a role, used for capability lookups
type RoleCode string

const (
	RoleAdmin   RoleCode = "ADMIN"
	RoleTeacher RoleCode = "TEACHER"
	RoleStudent RoleCode = "STUDENT"
)

// EnrollmentStatus represents the lifecycle of an enrollment
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentCompleted EnrollmentStatus = "completed"
)
