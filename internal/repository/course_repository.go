package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-portal/internal/domain"
)

// CourseRepository manages course persistence.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	Update(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id int) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]domain.Course, error)
	Count(ctx context.Context) (int, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository builds the repository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (code, title, description, teacher_id, credits)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		course.Code,
		course.Title,
		course.Description,
		course.TeacherID,
		course.Credits,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	const query = `
        UPDATE courses SET code=$1, title=$2, description=$3, teacher_id=$4, credits=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		course.Code,
		course.Title,
		course.Description,
		course.TeacherID,
		course.Credits,
		course.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id int) (*domain.Course, error) {
	const query = `
        SELECT id, code, title, description, teacher_id, credits, created_at, updated_at
        FROM courses WHERE id=$1`
	var course domain.Course
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Title,
		&course.Description,
		&course.TeacherID,
		&course.Credits,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `
        SELECT id, code, title, description, teacher_id, credits, created_at, updated_at
        FROM courses ORDER BY code`
	return r.queryCourses(ctx, query)
}

func (r *courseRepository) ListByTeacher(ctx context.Context, teacherID int) ([]domain.Course, error) {
	const query = `
        SELECT id, code, title, description, teacher_id, credits, created_at, updated_at
        FROM courses WHERE teacher_id=$1 ORDER BY code`
	return r.queryCourses(ctx, query, teacherID)
}

func (r *courseRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *courseRepository) queryCourses(ctx context.Context, query string, args ...any) ([]domain.Course, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Title,
			&course.Description,
			&course.TeacherID,
			&course.Credits,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, course)
	}
	return result, rows.Err()
}
