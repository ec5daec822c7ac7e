package domain

import "time"

// FinancialKind classifies a ledger entry.
type FinancialKind string

const (
	FinancialKindTuition FinancialKind = "TUITION"
	FinancialKindFee     FinancialKind = "FEE"
	FinancialKindPayment FinancialKind = "PAYMENT"
)

// FinancialRecord is one entry on a student's ledger. AmountCents is
// positive for charges and negative for payments; BalanceCents is the
// running balance after this entry.
type FinancialRecord struct {
	ID           int
	StudentID    int
	Kind         FinancialKind
	Description  string
	AmountCents  int64
	BalanceCents int64
	Reference    string
	PostedAt     time.Time
}
