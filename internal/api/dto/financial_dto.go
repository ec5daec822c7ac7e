package dto

// ChargeRequest payload for tuition or fee entries.
type ChargeRequest struct {
	StudentID   int    `json:"student_id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Reference   string `json:"reference"`
}

// PaymentRequest payload for posting a payment.
type PaymentRequest struct {
	StudentID   int    `json:"student_id"`
	AmountCents int64  `json:"amount_cents"`
	Reference   string `json:"reference"`
}

// AnnouncementRequest payload for admin announcements.
type AnnouncementRequest struct {
	TargetSubjectID int    `json:"target_subject_id"`
	Title           string `json:"title"`
	Body            string `json:"body"`
}
