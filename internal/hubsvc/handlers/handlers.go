package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/service"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

// Services are the views the handlers serve.
type Services struct {
	Dashboard   *service.DashboardService
	Matches     *service.MatchService
	Predictions *service.PredictionService
	League      *service.LeagueService
	Metrics     *service.MetricsService
}

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	svc       Services
}

func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

// PredictionInput is the body of POST /v1/predictions.
type PredictionInput struct {
	MatchID   models.FlexID `json:"match_id"`
	HomeGoals *int          `json:"home_goals"`
	AwayGoals *int          `json:"away_goals"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) ok(w http.ResponseWriter, data interface{}) {
	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: data})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Errorf("Error %s", err)
	}
	h.CreateResponse(w, Response{
		Message: http.StatusText(code),
		Code:    code,
		Error:   err.Error(),
	})
}

func statusFor(err error) int {
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidGoals), errors.Is(err, service.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPredictionClosed):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "hub service is running at port " + os.Getenv("HUB_SERVICE_PORT"),
		Code:    http.StatusOK,
		Data:    nil,
	})
}

func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.ok(w, h.svc.Dashboard.Dashboard(r.Context(), sess))
}

func (h *Handler) MatchHandler(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Matches.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, detail)
}

func (h *Handler) PredictionsHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.ok(w, h.svc.Predictions.History(r.Context(), sess))
}

func (h *Handler) SubmitPredictionHandler(w http.ResponseWriter, r *http.Request) {
	var in PredictionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.CreateResponse(w, Response{Message: "invalid body", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}
	if in.MatchID == "" || in.HomeGoals == nil || in.AwayGoals == nil {
		h.CreateResponse(w, Response{
			Message: "invalid body",
			Code:    http.StatusBadRequest,
			Error:   "match_id, home_goals and away_goals are required",
		})
		return
	}

	sess := session.FromContext(r.Context())
	list, err := h.svc.Predictions.Submit(r.Context(), sess, in.MatchID.String(), *in.HomeGoals, *in.AwayGoals)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.CreateResponse(w, Response{Message: "prediction saved", Code: http.StatusCreated, Data: list})
}

func (h *Handler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	h.ok(w, h.svc.League.Standings(r.Context()))
}

func (h *Handler) RankingHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	ranking, err := h.svc.League.Ranking(r.Context(), sess, chi.URLParam(r, "period"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, ranking)
}

func (h *Handler) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.ok(w, h.svc.Metrics.UserMetrics(r.Context(), sess))
}
