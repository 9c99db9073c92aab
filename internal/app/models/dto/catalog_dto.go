package dto

// RoleRequest is the body of role create and update
type RoleRequest struct {
	RoleName string `json:"role_name" binding:"required,notblank,max=100"`
	RoleCode string `json:"role_code" binding:"required,notblank,max=20"`
}

// CourseRequest is the body of course create and update
type CourseRequest struct {
	CourseCode string `json:"course_code" binding:"required,notblank,max=20"`
	CourseName string `json:"course_name" binding:"required,notblank,max=255"`
}

// SubjectRequest is the body of subject create and update
type SubjectRequest struct {
	SubjectCode        string  `json:"subject_code" binding:"required,notblank,max=20"`
	SubjectDescription string  `json:"subject_description" binding:"required,notblank,max=255"`
	SubjectSchedule    *string `json:"subject_schedule" binding:"omitempty,max=100"`
	SubjectUnits       int     `json:"subject_units" binding:"gte=0,lte=30"`
	CourseID           int64   `json:"course_id" binding:"required,gt=0"`
}

// SectionRequest is the body of section create and update
type SectionRequest struct {
	SectionName string  `json:"section_name" binding:"required,notblank,max=50"`
	SubjectID   int64   `json:"subject_id" binding:"required,gt=0"`
	TeacherID   int64   `json:"teacher_id" binding:"required,gt=0"`
	Room        *string `json:"room" binding:"omitempty,max=50"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gte=0"`
}
