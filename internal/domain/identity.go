package domain

// Role classifies portal subjects.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Identity is the verified caller derived from an access token.
// It is immutable once built and never persisted.
type Identity struct {
	SubjectID int
	Role      Role
}
