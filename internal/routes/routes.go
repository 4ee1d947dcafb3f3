package routes

import (
	"net/http"

	"github.com/studyshare/studyshare/internal/app"
	"github.com/studyshare/studyshare/internal/handler"
	"github.com/studyshare/studyshare/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg.JWTExpiry)
	account := handler.NewAccountHandler(app.AuthService, app.UserService)
	profile := handler.NewProfileHandler(app.ProfileService)
	category := handler.NewCategoryHandler(app.CategoryService)
	note := handler.NewNoteHandler(app.NoteService, app.AttachmentService)
	announcement := handler.NewAnnouncementHandler(app.AnnouncementService, app.CommentService, app.AttachmentService)
	comment := handler.NewCommentHandler(app.CommentService)
	assignment := handler.NewAssignmentHandler(app.AssignmentService, app.SubmissionService, app.AttachmentService)
	submission := handler.NewSubmissionHandler(app.SubmissionService)
	feedback := handler.NewFeedbackHandler(app.FeedbackService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /auth/signup", rateLimiter(auth.SignUp))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// Account
	mux.HandleFunc("PUT /account/password", middleware.RequireAuth(account.ChangePassword))
	mux.HandleFunc("DELETE /account", middleware.RequireAuth(account.DeleteAccount))

	// Profile
	mux.HandleFunc("GET /profile", middleware.RequireAuth(profile.Show))
	mux.HandleFunc("PUT /profile", middleware.RequireAuth(profile.UpdateNames))
	mux.HandleFunc("PUT /profile/avatar", middleware.RequireAuth(profile.UploadAvatar))

	// Categories
	mux.HandleFunc("GET /categories", middleware.RequireAuth(category.List))

	// Notes
	mux.HandleFunc("POST /notes", middleware.RequireAuth(note.Create))
	mux.HandleFunc("GET /notes", middleware.RequireAuth(note.List))
	mux.HandleFunc("GET /notes/{id}", middleware.RequireAuth(note.Show))
	mux.HandleFunc("PUT /notes/{id}", middleware.RequireAuth(note.Update))
	mux.HandleFunc("DELETE /notes/{id}", middleware.RequireAuth(note.Delete))
	mux.HandleFunc("GET /notes/{id}/attachment", middleware.RequireAuth(note.Attachment))

	// Announcements + comments
	mux.HandleFunc("POST /announcements", middleware.RequireAuth(announcement.Create))
	mux.HandleFunc("GET /announcements", middleware.RequireAuth(announcement.List))
	mux.HandleFunc("GET /announcements/{id}", middleware.RequireAuth(announcement.Show))
	mux.HandleFunc("PUT /announcements/{id}", middleware.RequireAuth(announcement.Update))
	mux.HandleFunc("DELETE /announcements/{id}", middleware.RequireAuth(announcement.Delete))
	mux.HandleFunc("GET /announcements/{id}/attachment", middleware.RequireAuth(announcement.Attachment))
	mux.HandleFunc("GET /announcements/{id}/comments", middleware.RequireAuth(announcement.ListComments))
	mux.HandleFunc("POST /announcements/{id}/comments", middleware.RequireAuth(announcement.CreateComment))
	mux.HandleFunc("PUT /comments/{id}", middleware.RequireAuth(comment.Update))
	mux.HandleFunc("DELETE /comments/{id}", middleware.RequireAuth(comment.Delete))

	// Assignments + submissions
	mux.HandleFunc("GET /assignments", middleware.RequireAuth(assignment.List))
	mux.HandleFunc("GET /assignments/{id}", middleware.RequireAuth(assignment.Show))
	mux.HandleFunc("PUT /assignments/{id}/submission", middleware.RequireAuth(assignment.UpsertDraft))
	mux.HandleFunc("GET /assignments/{id}/submission", middleware.RequireAuth(assignment.ShowSubmission))
	mux.HandleFunc("GET /assignments/{id}/submission/attachment", middleware.RequireAuth(assignment.SubmissionAttachment))
	mux.HandleFunc("GET /submissions", middleware.RequireAuth(submission.List))
	mux.HandleFunc("POST /submissions/{id}/submit", middleware.RequireAuth(submission.Submit))
	mux.HandleFunc("DELETE /submissions/{id}", middleware.RequireAuth(submission.Delete))

	// Feedback
	mux.HandleFunc("POST /feedback", middleware.RequireAuth(feedback.Create))
	mux.HandleFunc("GET /feedback", middleware.RequireAuth(feedback.List))
	mux.HandleFunc("PUT /feedback/{id}", middleware.RequireAuth(feedback.Update))
	mux.HandleFunc("DELETE /feedback/{id}", middleware.RequireAuth(feedback.Delete))

	// Global middleware
	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
		middleware.Config(app.Cfg),
	)
}
