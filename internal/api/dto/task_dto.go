package dto

// TaskCreateRequest payload for new tasks.
type TaskCreateRequest struct {
	CourseID    int    `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GradeRequest payload for posting a grade.
type GradeRequest struct {
	TaskID    int    `json:"task_id"`
	StudentID int    `json:"student_id"`
	Grade     string `json:"grade"`
}
