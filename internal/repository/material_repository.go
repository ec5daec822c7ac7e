package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-portal/internal/domain"
)

// MaterialRepository manages per-course material metadata.
type MaterialRepository interface {
	Create(ctx context.Context, material *domain.Material) error
	ListByCourse(ctx context.Context, courseID int) ([]domain.Material, error)
}

type materialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository builds the repository.
func NewMaterialRepository(pool *pgxpool.Pool) MaterialRepository {
	return &materialRepository{pool: pool}
}

func (r *materialRepository) Create(ctx context.Context, material *domain.Material) error {
	const query = `
        INSERT INTO materials (course_id, title, url)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		material.CourseID,
		material.Title,
		material.URL,
	).Scan(&material.ID, &material.CreatedAt)
}

func (r *materialRepository) ListByCourse(ctx context.Context, courseID int) ([]domain.Material, error) {
	const query = `
        SELECT id, course_id, title, url, created_at
        FROM materials WHERE course_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Material
	for rows.Next() {
		var material domain.Material
		if err := rows.Scan(
			&material.ID,
			&material.CourseID,
			&material.Title,
			&material.URL,
			&material.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, material)
	}
	return result, rows.Err()
}
