package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/notify"
	"github.com/spec-kit/student-portal/internal/repository"
)

// AdminService serves dashboard stats, user listings and announcements.
type AdminService struct {
	users         repository.UserRepository
	courses       repository.CourseRepository
	tasks         repository.TaskRepository
	announcements repository.AnnouncementRepository
	publisher     *notify.Publisher
	logger        *zap.Logger
}

// AdminDependencies bundles repositories for admin service.
type AdminDependencies struct {
	UserRepo         repository.UserRepository
	CourseRepo       repository.CourseRepository
	TaskRepo         repository.TaskRepository
	AnnouncementRepo repository.AnnouncementRepository
	Publisher        *notify.Publisher
	Logger           *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		users:         deps.UserRepo,
		courses:       deps.CourseRepo,
		tasks:         deps.TaskRepo,
		announcements: deps.AnnouncementRepo,
		publisher:     deps.Publisher,
		logger:        deps.Logger,
	}
}

// DashboardStats aggregates portal counts.
type DashboardStats struct {
	Students      int `json:"students"`
	Teachers      int `json:"teachers"`
	Courses       int `json:"courses"`
	Tasks         int `json:"tasks"`
	Announcements int `json:"announcements"`
}

// Stats computes the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	students, err := s.users.CountByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	teachers, err := s.users.CountByRole(ctx, domain.RoleTeacher)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.Count(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, err
	}
	announcements, err := s.announcements.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Students:      students,
		Teachers:      teachers,
		Courses:       courses,
		Tasks:         tasks,
		Announcements: announcements,
	}, nil
}

// ListUsers returns every account.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// RecentActivity returns the latest privileged actions.
func (s *AdminService) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	return s.announcements.RecentActivity(ctx, limit)
}

// LogActivity records one privileged action, best-effort.
func (s *AdminService) LogActivity(ctx context.Context, activity string, actorID int) {
	if err := s.announcements.LogActivity(ctx, activity, &actorID); err != nil {
		s.logger.Warn("failed to log activity", zap.Error(err))
	}
}

// Announce stores an announcement and pushes it to the target's live
// connections.
func (s *AdminService) Announce(ctx context.Context, adminID, targetSubjectID int, title, body string) (*domain.Announcement, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title required")
	}

	announcement := &domain.Announcement{
		Title:           title,
		Body:            body,
		TargetSubjectID: targetSubjectID,
		CreatedBy:       adminID,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, targetSubjectID, notify.KindAnnouncement, notify.AnnouncementPayload{
			Title: title,
			Body:  body,
		})
		if err != nil {
			s.logger.Warn("failed to publish announcement",
				zap.Int("subject_id", targetSubjectID),
				zap.Error(err))
		}
	}
	return announcement, nil
}
