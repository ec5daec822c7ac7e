package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-portal/internal/domain"
)

// UserRepository defines persistence access for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, status, phone, address, major, year, department, title, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, role, status, phone, address, major, year, department, title)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`

	major, year, department, title := profileColumns(user)
	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Phone,
		user.Address,
		major,
		year,
		department,
		title,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, password_hash=$3, status=$4, phone=$5, address=$6,
            major=$7, year=$8, department=$9, title=$10, updated_at=NOW()
        WHERE id=$11`

	major, year, department, title := profileColumns(user)
	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Status,
		user.Phone,
		user.Address,
		major,
		year,
		department,
		title,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE role=$1`
	var count int
	if err := r.pool.QueryRow(ctx, query, role).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser maps the flat row onto the role-tagged profile variant.
func (r *userRepository) scanUser(row rowScanner) (*domain.User, error) {
	var (
		user       domain.User
		major      *string
		year       *int
		department *string
		title      *string
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.Phone,
		&user.Address,
		&major,
		&year,
		&department,
		&title,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	switch user.Role {
	case domain.RoleStudent:
		profile := &domain.StudentProfile{}
		if major != nil {
			profile.Major = *major
		}
		if year != nil {
			profile.Year = *year
		}
		user.Student = profile
	case domain.RoleTeacher:
		profile := &domain.TeacherProfile{}
		if department != nil {
			profile.Department = *department
		}
		if title != nil {
			profile.Title = *title
		}
		user.Teacher = profile
	}
	return &user, nil
}

func profileColumns(user *domain.User) (major *string, year *int, department, title *string) {
	if user.Student != nil {
		major = &user.Student.Major
		year = &user.Student.Year
	}
	if user.Teacher != nil {
		department = &user.Teacher.Department
		title = &user.Teacher.Title
	}
	return major, year, department, title
}
