package domain

import "time"

// Task is an assignment attached to a course.
type Task struct {
	ID          int
	CourseID    int
	Title       string
	Description string
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StudentTask is one student's copy of a task, graded or not.
type StudentTask struct {
	ID         int
	TaskID     int
	StudentID  int
	Grade      *string
	GradedAt   *time.Time
	AssignedAt time.Time
}
