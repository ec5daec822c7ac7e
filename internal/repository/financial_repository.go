package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-portal/internal/domain"
)

// FinancialRepository manages student ledgers.
type FinancialRepository interface {
	Create(ctx context.Context, record *domain.FinancialRecord) error
	ListByStudent(ctx context.Context, studentID int) ([]domain.FinancialRecord, error)
	Balance(ctx context.Context, studentID int) (int64, error)
}

type financialRepository struct {
	pool *pgxpool.Pool
}

// NewFinancialRepository builds the repository.
func NewFinancialRepository(pool *pgxpool.Pool) FinancialRepository {
	return &financialRepository{pool: pool}
}

func (r *financialRepository) Create(ctx context.Context, record *domain.FinancialRecord) error {
	const query = `
        INSERT INTO financial_records (student_id, kind, description, amount_cents, balance_cents, reference)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, posted_at`
	return r.pool.QueryRow(ctx, query,
		record.StudentID,
		record.Kind,
		record.Description,
		record.AmountCents,
		record.BalanceCents,
		record.Reference,
	).Scan(&record.ID, &record.PostedAt)
}

func (r *financialRepository) ListByStudent(ctx context.Context, studentID int) ([]domain.FinancialRecord, error) {
	const query = `
        SELECT id, student_id, kind, description, amount_cents, balance_cents, reference, posted_at
        FROM financial_records WHERE student_id=$1 ORDER BY posted_at`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FinancialRecord
	for rows.Next() {
		var record domain.FinancialRecord
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.Kind,
			&record.Description,
			&record.AmountCents,
			&record.BalanceCents,
			&record.Reference,
			&record.PostedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *financialRepository) Balance(ctx context.Context, studentID int) (int64, error) {
	const query = `SELECT COALESCE(SUM(amount_cents), 0) FROM financial_records WHERE student_id=$1`
	var balance int64
	if err := r.pool.QueryRow(ctx, query, studentID).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}
