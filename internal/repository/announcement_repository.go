package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-portal/internal/domain"
)

// AnnouncementRepository manages announcements and the admin activity log.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	ListBySubject(ctx context.Context, subjectID int) ([]domain.Announcement, error)
	Count(ctx context.Context) (int, error)

	LogActivity(ctx context.Context, activity string, actorID *int) error
	RecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository builds the repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (title, body, target_subject_id, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		announcement.Title,
		announcement.Body,
		announcement.TargetSubjectID,
		announcement.CreatedBy,
	).Scan(&announcement.ID, &announcement.CreatedAt)
}

func (r *announcementRepository) ListBySubject(ctx context.Context, subjectID int) ([]domain.Announcement, error) {
	const query = `
        SELECT id, title, body, target_subject_id, created_by, created_at
        FROM announcements WHERE target_subject_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var announcement domain.Announcement
		if err := rows.Scan(
			&announcement.ID,
			&announcement.Title,
			&announcement.Body,
			&announcement.TargetSubjectID,
			&announcement.CreatedBy,
			&announcement.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, announcement)
	}
	return result, rows.Err()
}

func (r *announcementRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM announcements`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *announcementRepository) LogActivity(ctx context.Context, activity string, actorID *int) error {
	const query = `INSERT INTO activity_logs (activity, actor_id) VALUES ($1,$2)`
	_, err := r.pool.Exec(ctx, query, activity, actorID)
	return err
}

func (r *announcementRepository) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT id, activity, actor_id, created_at
        FROM activity_logs ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityLog
	for rows.Next() {
		var entry domain.ActivityLog
		if err := rows.Scan(&entry.ID, &entry.Activity, &entry.ActorID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
