package domain

import "time"

// Course is a taught unit owned by one teacher.
type Course struct {
	ID          int
	Code        string
	Title       string
	Description string
	TeacherID   int
	Credits     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Enrollment links one student to one course.
type Enrollment struct {
	ID         int
	CourseID   int
	StudentID  int
	EnrolledAt time.Time
}

// Material is a per-course resource reference (syllabus, slides, reading).
type Material struct {
	ID        int
	CourseID  int
	Title     string
	URL       string
	CreatedAt time.Time
}
