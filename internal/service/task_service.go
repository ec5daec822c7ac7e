package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/notify"
	"github.com/spec-kit/student-portal/internal/repository"
)

// TaskService coordinates assignment and grading workflows.
type TaskService struct {
	tasks       repository.TaskRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	publisher   *notify.Publisher
	logger      *zap.Logger
}

// TaskDependencies bundles repositories for task service.
type TaskDependencies struct {
	TaskRepo       repository.TaskRepository
	CourseRepo     repository.CourseRepository
	EnrollmentRepo repository.EnrollmentRepository
	Publisher      *notify.Publisher
	Logger         *zap.Logger
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:       deps.TaskRepo,
		courses:     deps.CourseRepo,
		enrollments: deps.EnrollmentRepo,
		publisher:   deps.Publisher,
		logger:      deps.Logger,
	}
}

// Create adds a task to a course owned by the caller and assigns it to
// every enrolled student, notifying each best-effort.
func (s *TaskService) Create(ctx context.Context, courseID, teacherID int, title, description string) (*domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title required")
	}
	course, err := s.ownedCourse(ctx, courseID, teacherID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{CourseID: courseID, Title: title, Description: description}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	studentIDs, err := s.enrollments.ListStudentIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for _, studentID := range studentIDs {
		assignment := &domain.StudentTask{TaskID: task.ID, StudentID: studentID}
		if err := s.tasks.Assign(ctx, assignment); err != nil {
			return nil, err
		}
		s.publish(ctx, studentID, notify.KindTaskAssigned, notify.TaskAssignedPayload{
			Course: course.Title,
			Task:   task.Title,
			DueAt:  task.DueAt,
		})
	}
	return task, nil
}

// ListByCourse returns a course's tasks.
func (s *TaskService) ListByCourse(ctx context.Context, courseID int) ([]domain.Task, error) {
	return s.tasks.ListByCourse(ctx, courseID)
}

// StudentTaskView joins one assignment with its task for listing.
type StudentTaskView struct {
	Task       domain.Task
	Assignment domain.StudentTask
}

// ListForStudent returns the student's assignments with task details.
func (s *TaskService) ListForStudent(ctx context.Context, studentID int) ([]StudentTaskView, error) {
	assignments, err := s.tasks.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	result := make([]StudentTaskView, 0, len(assignments))
	for _, assignment := range assignments {
		task, err := s.tasks.GetByID(ctx, assignment.TaskID)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, err
		}
		result = append(result, StudentTaskView{Task: *task, Assignment: assignment})
	}
	return result, nil
}

// PostGrade records a grade and notifies the student's live connections.
func (s *TaskService) PostGrade(ctx context.Context, taskID, studentID, teacherID int, grade string) error {
	if strings.TrimSpace(grade) == "" {
		return errors.New("grade required")
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return errors.New("task not found")
		}
		return err
	}
	course, err := s.ownedCourse(ctx, task.CourseID, teacherID)
	if err != nil {
		return err
	}
	if _, err := s.tasks.GetAssignment(ctx, taskID, studentID); err != nil {
		if err == pgx.ErrNoRows {
			return errors.New("student not assigned this task")
		}
		return err
	}

	if err := s.tasks.SetGrade(ctx, taskID, studentID, grade); err != nil {
		return err
	}

	s.publish(ctx, studentID, notify.KindGradePosted, notify.GradePostedPayload{
		Course: course.Title,
		Task:   task.Title,
		Grade:  grade,
	})
	return nil
}

func (s *TaskService) ownedCourse(ctx context.Context, courseID, teacherID int) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("course not found")
		}
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, errors.New("course owned by another teacher")
	}
	return course, nil
}

// publish is best-effort: a broker error is logged, never surfaced to the
// grading flow.
func (s *TaskService) publish(ctx context.Context, subjectID int, kind string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subjectID, kind, payload); err != nil {
		s.logger.Warn("failed to publish notification",
			zap.Int("subject_id", subjectID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}
