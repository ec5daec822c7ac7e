package domain

import "time"

// Announcement is an admin-authored notice addressed to one subject.
type Announcement struct {
	ID              int
	Title           string
	Body            string
	TargetSubjectID int
	CreatedBy       int
	CreatedAt       time.Time
}

// ActivityLog records a privileged action for the admin dashboard.
type ActivityLog struct {
	ID        int
	Activity  string
	ActorID   *int
	CreatedAt time.Time
}
