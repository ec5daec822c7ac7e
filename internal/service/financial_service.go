package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/notify"
	"github.com/spec-kit/student-portal/internal/repository"
)

// FinancialService manages student ledgers and payment notifications.
type FinancialService struct {
	records   repository.FinancialRepository
	users     repository.UserRepository
	publisher *notify.Publisher
	logger    *zap.Logger
}

// NewFinancialService constructs the service.
func NewFinancialService(records repository.FinancialRepository, users repository.UserRepository, publisher *notify.Publisher, logger *zap.Logger) *FinancialService {
	return &FinancialService{records: records, users: users, publisher: publisher, logger: logger}
}

// Ledger returns the student's records plus current balance.
func (s *FinancialService) Ledger(ctx context.Context, studentID int) ([]domain.FinancialRecord, int64, error) {
	records, err := s.records.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, 0, err
	}
	balance, err := s.records.Balance(ctx, studentID)
	if err != nil {
		return nil, 0, err
	}
	return records, balance, nil
}

// ChargeInput describes a tuition or fee entry.
type ChargeInput struct {
	StudentID   int
	Kind        domain.FinancialKind
	Description string
	AmountCents int64
	Reference   string
}

// PostCharge adds a charge to a student's ledger.
func (s *FinancialService) PostCharge(ctx context.Context, in ChargeInput) (*domain.FinancialRecord, error) {
	if in.AmountCents <= 0 {
		return nil, errors.New("charge amount must be positive")
	}
	if in.Kind != domain.FinancialKindTuition && in.Kind != domain.FinancialKindFee {
		return nil, errors.New("invalid charge kind")
	}
	return s.append(ctx, in.StudentID, in.Kind, in.Description, in.AmountCents, in.Reference)
}

// PostPayment records a payment and notifies the student's live connections.
func (s *FinancialService) PostPayment(ctx context.Context, studentID int, amountCents int64, reference string) (*domain.FinancialRecord, error) {
	if amountCents <= 0 {
		return nil, errors.New("payment amount must be positive")
	}
	record, err := s.append(ctx, studentID, domain.FinancialKindPayment, "payment received", -amountCents, reference)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, studentID, notify.KindPaymentPosted, notify.PaymentPostedPayload{
			AmountCents:  amountCents,
			BalanceCents: record.BalanceCents,
			Reference:    reference,
		})
		if err != nil {
			s.logger.Warn("failed to publish payment notification",
				zap.Int("subject_id", studentID),
				zap.Error(err))
		}
	}
	return record, nil
}

func (s *FinancialService) append(ctx context.Context, studentID int, kind domain.FinancialKind, description string, amountCents int64, reference string) (*domain.FinancialRecord, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("student not found")
		}
		return nil, err
	}
	if student.Role != domain.RoleStudent {
		return nil, errors.New("ledger entries apply to students only")
	}

	balance, err := s.records.Balance(ctx, studentID)
	if err != nil {
		return nil, err
	}

	record := &domain.FinancialRecord{
		StudentID:    studentID,
		Kind:         kind,
		Description:  description,
		AmountCents:  amountCents,
		BalanceCents: balance + amountCents,
		Reference:    reference,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
