package delivery

import (
	"time"

	"voicecrm-backend/internal/auth"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hAuth *AuthHandler,
	hContact *ContactHandler,
	hRecording *RecordingHandler,
	hEmail *EmailHandler,
	authSvc auth.Service,
) {
	// --- auth (public) ---
	r.With(httputil.RecoverMiddleware).Post("/auth/signup", hAuth.SignUp)
	r.With(httputil.RecoverMiddleware).Post("/auth/login", hAuth.Login)
	r.With(httputil.RecoverMiddleware).Post("/auth/refresh", hAuth.Refresh)

	// --- protected ---
	r.Route("/", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			AuthMiddleware(authSvc),
		)

		pr.Post("/auth/logout", hAuth.Logout)
		pr.Get("/auth/me", hAuth.Me)

		// --- contacts ---
		pr.Get("/contacts", hContact.List)
		pr.Post("/contacts", hContact.Create)
		pr.Get("/contacts/{contact_id}", hContact.Get)
		pr.Patch("/contacts/{contact_id}", hContact.Update)
		pr.Delete("/contacts/{contact_id}", hContact.Delete)
		pr.Post("/contacts/{contact_id}/favorite", hContact.SetFavorite)
		pr.Delete("/contacts/{contact_id}/favorite", hContact.UnsetFavorite)
		pr.Get("/favorites", hContact.ListFavorites)

		// --- recordings ---
		pr.Post("/audio/upload", hRecording.Upload)
		pr.Get("/audio/recordings", hRecording.List)
		pr.Delete("/audio/recordings/{recording_id}", hRecording.Delete)

		// --- email generation (expensive: Gemini call per request) ---
		pr.With(httprate.LimitByIP(10, time.Minute)).
			Post("/audio/generate-dual-email", hEmail.GenerateDualEmail)

		// --- approved emails ---
		pr.Post("/emails/approve", hEmail.Approve)
		pr.Get("/emails", hEmail.List)
	})
}
