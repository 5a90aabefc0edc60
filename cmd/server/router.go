package main

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hanlearn/hanlearn-api/internal/api"
	apiMiddleware "github.com/hanlearn/hanlearn-api/internal/api/middleware"
)

// setupRouter configures the application router. Three access tiers apply:
// public routes, authenticated routes, and admin-or-read-only routes where
// anyone may read but only staff may write.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	r.Use(authMiddleware.Authenticate)

	authHandler := api.NewAuthHandler(
		app.userStore, app.jwtService, app.passwordHasher, app.passwordHasher, app.logger)
	profileHandler := api.NewProfileHandler(app.profileStore, app.logger)
	chapterHandler := api.NewChapterHandler(app.chapterStore, app.logger)
	lessonHandler := api.NewLessonHandler(app.lessonStore, app.logger)
	postHandler := api.NewPostHandler(app.postStore, app.logger)
	commentHandler := api.NewCommentHandler(app.commentStore, app.logger)
	progressHandler := api.NewProgressHandler(app.progressStore, app.logger)
	threadHandler := api.NewThreadHandler(app.threadStore, app.logger)
	pictureGuessHandler := api.NewPictureGuessHandler(app.pictureGuessStore, app.logger)
	matchingHandler := api.NewMatchingHandler(app.matchingStore, app.logger)
	puzzleHandler := api.NewPuzzleHandler(app.puzzleStore, app.logger)
	aboutHandler := api.NewAboutHandler(app.aboutStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Learning content, mini-games and the about page are
		// world-readable; mutations require a staff account.
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.AdminOrReadOnly)

			r.Get("/chapters", chapterHandler.List)
			r.Post("/chapters", chapterHandler.Create)
			r.Get("/chapters/{id}", chapterHandler.Get)
			r.Put("/chapters/{id}", chapterHandler.Update)
			r.Delete("/chapters/{id}", chapterHandler.Delete)

			r.Get("/lessons", lessonHandler.List)
			r.Post("/lessons", lessonHandler.Create)
			r.Get("/lessons/{id}", lessonHandler.Get)
			r.Put("/lessons/{id}", lessonHandler.Update)
			r.Delete("/lessons/{id}", lessonHandler.Delete)
			r.Post("/lessons/{id}/flashcards", lessonHandler.CreateFlashcard)
			r.Post("/lessons/{id}/quizzes", lessonHandler.CreateQuiz)

			r.Get("/games/picture-guess", pictureGuessHandler.List)
			r.Post("/games/picture-guess", pictureGuessHandler.Create)
			r.Get("/games/picture-guess/{id}", pictureGuessHandler.Get)
			r.Put("/games/picture-guess/{id}", pictureGuessHandler.Update)
			r.Delete("/games/picture-guess/{id}", pictureGuessHandler.Delete)
			r.Post("/games/picture-guess/{id}/options", pictureGuessHandler.CreateOption)
			r.Put("/games/picture-guess/{id}/options/{optionID}", pictureGuessHandler.UpdateOption)
			r.Delete("/games/picture-guess/{id}/options/{optionID}", pictureGuessHandler.DeleteOption)

			r.Get("/games/matching", matchingHandler.List)
			r.Post("/games/matching", matchingHandler.Create)
			r.Get("/games/matching/{id}", matchingHandler.Get)
			r.Put("/games/matching/{id}", matchingHandler.Update)
			r.Delete("/games/matching/{id}", matchingHandler.Delete)

			r.Get("/games/puzzles", puzzleHandler.List)
			r.Post("/games/puzzles", puzzleHandler.Create)
			r.Get("/games/puzzles/{id}", puzzleHandler.Get)
			r.Put("/games/puzzles/{id}", puzzleHandler.Update)
			r.Delete("/games/puzzles/{id}", puzzleHandler.Delete)

			r.Get("/about", aboutHandler.Get)
			r.Put("/about", aboutHandler.Update)
		})

		// Per-user resources require authentication.
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireAuth)

			r.Get("/auth/me", authHandler.Me)

			// The social feed is members-only for every verb.
			r.Get("/posts", postHandler.List)
			r.Post("/posts", postHandler.Create)
			r.Get("/posts/{id}", postHandler.Get)
			r.Put("/posts/{id}", postHandler.Update)
			r.Delete("/posts/{id}", postHandler.Delete)

			r.Get("/comments", commentHandler.List)
			r.Post("/comments", commentHandler.Create)
			r.Get("/comments/{id}", commentHandler.Get)
			r.Put("/comments/{id}", commentHandler.Update)
			r.Delete("/comments/{id}", commentHandler.Delete)

			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)

			r.Get("/progress", progressHandler.List)
			r.Post("/progress", progressHandler.Create)
			r.Get("/progress/{id}", progressHandler.Get)
			r.Put("/progress/{id}", progressHandler.Update)
			r.Delete("/progress/{id}", progressHandler.Delete)

			r.Get("/threads", threadHandler.List)
			r.Post("/threads", threadHandler.Create)
			r.Get("/threads/{id}", threadHandler.Get)
			r.Get("/threads/{id}/messages", threadHandler.ListMessages)
			r.Post("/threads/{id}/messages", threadHandler.CreateMessage)
		})
	})

	// Static media (avatars, lesson photos, question images).
	mediaDir := filepath.Clean(app.config.Server.MediaDir)
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir)))
	r.Get("/media/*", fileServer.ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
