package dto

// CourseCreateRequest payload for new courses.
type CourseCreateRequest struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TeacherID   int    `json:"teacher_id"`
	Credits     int    `json:"credits"`
}

// EnrollRequest payload for enrollments.
type EnrollRequest struct {
	CourseID  int `json:"course_id"`
	StudentID int `json:"student_id,omitempty"`
}

// MaterialCreateRequest payload for course materials.
type MaterialCreateRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
