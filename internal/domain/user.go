package domain

import "time"

// UserStatus represents lifecycle states for a portal account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// StudentProfile carries fields that only exist for students.
type StudentProfile struct {
	Major string
	Year  int
}

// TeacherProfile carries fields that only exist for teachers.
type TeacherProfile struct {
	Department string
	Title      string
}

// User is the domain model for portal accounts. The profile variant
// matching Role is populated; the others stay nil (admins carry neither).
type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	Phone        *string
	Address      *string
	Student      *StudentProfile
	Teacher      *TeacherProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
