package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/config"
	"github.com/studyshare/studyshare/internal/db"
	"github.com/studyshare/studyshare/internal/repository"
	"github.com/studyshare/studyshare/internal/service"
	"github.com/studyshare/studyshare/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	ProfileService      *service.ProfileService
	AttachmentService   *service.AttachmentService
	CategoryService     *service.CategoryService
	NoteService         *service.NoteService
	AnnouncementService *service.AnnouncementService
	CommentService      *service.CommentService
	AssignmentService   *service.AssignmentService
	SubmissionService   *service.SubmissionService
	FeedbackService     *service.FeedbackService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	noteRepository := repository.NewNoteRepository(database)
	announcementRepository := repository.NewAnnouncementRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	assignmentRepository := repository.NewAssignmentRepository(database)
	submissionRepository := repository.NewSubmissionRepository(database)
	feedbackRepository := repository.NewFeedbackRepository(database)

	// Storage
	objectStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	attachmentService := service.NewAttachmentService(objectStorage)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository, attachmentService)
	profileService := service.NewProfileService(profileRepository, attachmentService)
	categoryService := service.NewCategoryService(categoryRepository)
	noteService := service.NewNoteService(noteRepository, categoryRepository, attachmentService)
	announcementService := service.NewAnnouncementService(announcementRepository, categoryRepository, attachmentService)
	commentService := service.NewCommentService(commentRepository, announcementRepository)
	assignmentService := service.NewAssignmentService(assignmentRepository)
	submissionService := service.NewSubmissionService(submissionRepository, assignmentRepository, attachmentService)
	feedbackService := service.NewFeedbackService(feedbackRepository)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		ProfileService:      profileService,
		AttachmentService:   attachmentService,
		CategoryService:     categoryService,
		NoteService:         noteService,
		AnnouncementService: announcementService,
		CommentService:      commentService,
		AssignmentService:   assignmentService,
		SubmissionService:   submissionService,
		FeedbackService:     feedbackService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
