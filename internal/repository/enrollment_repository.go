package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-portal/internal/domain"
)

// EnrollmentRepository manages student-course links.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	Exists(ctx context.Context, courseID, studentID int) (bool, error)
	ListByStudent(ctx context.Context, studentID int) ([]domain.Enrollment, error)
	ListStudentIDs(ctx context.Context, courseID int) ([]int, error)
}

type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository builds the repository.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	const query = `
        INSERT INTO enrollments (course_id, student_id)
        VALUES ($1,$2)
        RETURNING id, enrolled_at`
	return r.pool.QueryRow(ctx, query,
		enrollment.CourseID,
		enrollment.StudentID,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt)
}

func (r *enrollmentRepository) Exists(ctx context.Context, courseID, studentID int) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id=$1 AND student_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, courseID, studentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]domain.Enrollment, error) {
	const query = `
        SELECT id, course_id, student_id, enrolled_at
        FROM enrollments WHERE student_id=$1 ORDER BY enrolled_at`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Enrollment
	for rows.Next() {
		var enrollment domain.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.CourseID,
			&enrollment.StudentID,
			&enrollment.EnrolledAt,
		); err != nil {
			return nil, err
		}
		result = append(result, enrollment)
	}
	return result, rows.Err()
}

func (r *enrollmentRepository) ListStudentIDs(ctx context.Context, courseID int) ([]int, error) {
	const query = `SELECT student_id FROM enrollments WHERE course_id=$1 ORDER BY student_id`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, rows.Err()
}
