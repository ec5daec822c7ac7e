package notify

import (
	"encoding/json"
	"time"
)

// Notification kinds published by the portal.
const (
	KindGradePosted   = "grade_posted"
	KindTaskAssigned  = "task_assigned"
	KindPaymentPosted = "payment_posted"
	KindAnnouncement  = "announcement"
)

// Event is one decoded broker message destined for one subject. It is
// transient: it lives from decode until it has been handed to zero or
// more connections.
type Event struct {
	ID              string          `json:"id"`
	TargetSubjectID int             `json:"target_subject_id"`
	Kind            string          `json:"kind"`
	Payload         json.RawMessage `json:"payload"`
	ProducedAt      time.Time       `json:"produced_at"`
}

// GradePostedPayload accompanies KindGradePosted.
type GradePostedPayload struct {
	Course string `json:"course"`
	Task   string `json:"task"`
	Grade  string `json:"grade"`
}

// TaskAssignedPayload accompanies KindTaskAssigned.
type TaskAssignedPayload struct {
	Course string     `json:"course"`
	Task   string     `json:"task"`
	DueAt  *time.Time `json:"due_at,omitempty"`
}

// PaymentPostedPayload accompanies KindPaymentPosted.
type PaymentPostedPayload struct {
	AmountCents  int64  `json:"amount_cents"`
	BalanceCents int64  `json:"balance_cents"`
	Reference    string `json:"reference"`
}

// AnnouncementPayload accompanies KindAnnouncement.
type AnnouncementPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
