package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/student-portal/internal/api/http"
	"github.com/spec-kit/student-portal/internal/api/http/handlers"
	"github.com/spec-kit/student-portal/internal/auth"
	"github.com/spec-kit/student-portal/internal/config"
	"github.com/spec-kit/student-portal/internal/notify"
	"github.com/spec-kit/student-portal/internal/observability"
	"github.com/spec-kit/student-portal/internal/persistence"
	"github.com/spec-kit/student-portal/internal/repository"
	"github.com/spec-kit/student-portal/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	financialRepo := repository.NewFinancialRepository(pool)
	announceRepo := repository.NewAnnouncementRepository(pool)

	publisher := notify.NewPublisher(redis.Client, cfg.Notify.Channel)
	registry := notify.NewRegistry()
	dispatcher := notify.NewDispatcher(registry, metrics, logger)
	bridge := notify.NewBridge(redis.Client, cfg.Notify.Channel, dispatcher, logger, cfg.Notify.MaxBackoff())
	go bridge.Run(ctx)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	gate := auth.NewAccessGate(authService.TokenCodec())

	profileService := service.NewProfileService(userRepo)
	courseService := service.NewCourseService(service.CourseDependencies{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		MaterialRepo:   materialRepo,
		UserRepo:       userRepo,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:       taskRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		Publisher:      publisher,
		Logger:         logger,
	})
	financialService := service.NewFinancialService(financialRepo, userRepo, publisher, logger)
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:         userRepo,
		CourseRepo:       courseRepo,
		TaskRepo:         taskRepo,
		AnnouncementRepo: announceRepo,
		Publisher:        publisher,
		Logger:           logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Profile:       handlers.NewProfileHandler(profileService),
		Courses:       handlers.NewCoursesHandler(courseService),
		Tasks:         handlers.NewTasksHandler(taskService),
		Financial:     handlers.NewFinancialHandler(financialService),
		Admin:         handlers.NewAdminHandler(adminService),
		Notifications: handlers.NewNotificationsHandler(gate, registry, metrics, cfg.Notify, logger),
		Gate:          gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	registry.CloseAll()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
