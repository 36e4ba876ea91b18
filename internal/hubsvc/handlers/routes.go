package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// user routes, bearer token is optional and forwarded to the hub API
		r.Group(func(r chi.Router) {
			r.Use(session.Middleware)

			r.Get("/dashboard", h.DashboardHandler)
			r.Get("/matches/{id}", h.MatchHandler)
			r.Get("/predictions", h.PredictionsHandler)
			r.Post("/predictions", h.SubmitPredictionHandler)
			r.Get("/standings", h.StandingsHandler)
			r.Get("/ranking/{period}", h.RankingHandler)
			r.Get("/metrics", h.MetricsHandler)
		})

		// service routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)
		})
	})
}

// InitAuth sets up the service token used by the health route and
// returns a token valid for a week.
func (h *Handler) InitAuth() string {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"service_id": 8003022,
		"exp":        expirationTime,
	})
	if err != nil {
		log.Errorf("Error [Handler.InitAuth] %s", err)
		return ""
	}

	log.Debugf("service token: %s", tokenString)
	return tokenString
}
