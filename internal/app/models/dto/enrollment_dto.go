package dto

// CreateEnrollmentRequest enlists a student in a section
type CreateEnrollmentRequest struct {
	StudentID  int64  `json:"student_id" binding:"required,gt=0"`
	SectionID  int64  `json:"section_id" binding:"required,gt=0"`
	Semester   string `json:"semester" binding:"required,notblank,max=20" example:"1st"`
	SchoolYear string `json:"school_year" binding:"required,notblank,max=20" example:"2024-2025"`
}

// UpdateEnrollmentRequest replaces an enrollment including its status
type UpdateEnrollmentRequest struct {
	StudentID  int64  `json:"student_id" binding:"required,gt=0"`
	SectionID  int64  `json:"section_id" binding:"required,gt=0"`
	Semester   string `json:"semester" binding:"required,notblank,max=20"`
	SchoolYear string `json:"school_year" binding:"required,notblank,max=20"`
	Status     string `json:"status" binding:"required,oneof=pending enrolled dropped completed"`
}
