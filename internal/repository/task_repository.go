package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-portal/internal/domain"
)

// TaskRepository manages tasks and per-student assignments.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int) (*domain.Task, error)
	ListByCourse(ctx context.Context, courseID int) ([]domain.Task, error)
	Count(ctx context.Context) (int, error)

	Assign(ctx context.Context, assignment *domain.StudentTask) error
	GetAssignment(ctx context.Context, taskID, studentID int) (*domain.StudentTask, error)
	ListByStudent(ctx context.Context, studentID int) ([]domain.StudentTask, error)
	SetGrade(ctx context.Context, taskID, studentID int, grade string) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository builds the repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (course_id, title, description, due_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.CourseID,
		task.Title,
		task.Description,
		task.DueAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) GetByID(ctx context.Context, id int) (*domain.Task, error) {
	const query = `
        SELECT id, course_id, title, description, due_at, created_at, updated_at
        FROM tasks WHERE id=$1`
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.CourseID,
		&task.Title,
		&task.Description,
		&task.DueAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByCourse(ctx context.Context, courseID int) ([]domain.Task, error) {
	const query = `
        SELECT id, course_id, title, description, due_at, created_at, updated_at
        FROM tasks WHERE course_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.CourseID,
			&task.Title,
			&task.Description,
			&task.DueAt,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func (r *taskRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *taskRepository) Assign(ctx context.Context, assignment *domain.StudentTask) error {
	const query = `
        INSERT INTO student_tasks (task_id, student_id)
        VALUES ($1,$2)
        ON CONFLICT (task_id, student_id) DO NOTHING
        RETURNING id, assigned_at`
	err := r.pool.QueryRow(ctx, query,
		assignment.TaskID,
		assignment.StudentID,
	).Scan(&assignment.ID, &assignment.AssignedAt)
	if err == pgx.ErrNoRows {
		// already assigned
		return nil
	}
	return err
}

func (r *taskRepository) GetAssignment(ctx context.Context, taskID, studentID int) (*domain.StudentTask, error) {
	const query = `
        SELECT id, task_id, student_id, grade, graded_at, assigned_at
        FROM student_tasks WHERE task_id=$1 AND student_id=$2`
	var assignment domain.StudentTask
	if err := r.pool.QueryRow(ctx, query, taskID, studentID).Scan(
		&assignment.ID,
		&assignment.TaskID,
		&assignment.StudentID,
		&assignment.Grade,
		&assignment.GradedAt,
		&assignment.AssignedAt,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *taskRepository) ListByStudent(ctx context.Context, studentID int) ([]domain.StudentTask, error) {
	const query = `
        SELECT id, task_id, student_id, grade, graded_at, assigned_at
        FROM student_tasks WHERE student_id=$1 ORDER BY assigned_at`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StudentTask
	for rows.Next() {
		var assignment domain.StudentTask
		if err := rows.Scan(
			&assignment.ID,
			&assignment.TaskID,
			&assignment.StudentID,
			&assignment.Grade,
			&assignment.GradedAt,
			&assignment.AssignedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}

func (r *taskRepository) SetGrade(ctx context.Context, taskID, studentID int, grade string) error {
	const query = `
        UPDATE student_tasks SET grade=$1, graded_at=NOW()
        WHERE task_id=$2 AND student_id=$3`
	cmd, err := r.pool.Exec(ctx, query, grade, taskID, studentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
