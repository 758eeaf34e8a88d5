package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"pulsepoll/internal/model"
	"pulsepoll/internal/service"
	"pulsepoll/internal/transport/rest/middleware"
)

// AnalyticsHandler exposes the analytics engine over HTTP
type AnalyticsHandler struct {
	insightSvc   *service.InsightService
	forecastSvc  *service.ForecastService
	attentionSvc *service.AttentionService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(insightSvc *service.InsightService, forecastSvc *service.ForecastService, attentionSvc *service.AttentionService) *AnalyticsHandler {
	return &AnalyticsHandler{
		insightSvc:   insightSvc,
		forecastSvc:  forecastSvc,
		attentionSvc: attentionSvc,
	}
}

// Dashboard handles GET /v1/surveys/{surveyId}/analytics
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	summary, err := h.insightSvc.DashboardSummary(r.Context(), surveyID, optionsFromQuery(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Patterns handles GET /v1/surveys/{surveyId}/patterns
func (h *AnalyticsHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	patterns, err := h.insightSvc.Patterns(r.Context(), surveyID, optionsFromQuery(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"patterns": patterns})
}

// Forecast handles GET /v1/surveys/{surveyId}/forecast
func (h *AnalyticsHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 90 {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 90")
			return
		}
		days = parsed
	}

	forecast, err := h.forecastSvc.ForecastResponses(r.Context(), surveyID, days, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

// Attention handles GET /v1/surveys/{surveyId}/attention
func (h *AnalyticsHandler) Attention(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	report, err := h.insightSvc.Attention(r.Context(), surveyID, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// AttentionList handles GET /v1/attention
func (h *AnalyticsHandler) AttentionList(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	threshold := 40
	if v := r.URL.Query().Get("threshold"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "threshold must be between 0 and 100")
			return
		}
		threshold = parsed
	}

	reports, err := h.attentionSvc.SurveysNeedingAttention(r.Context(), ownerID, threshold, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": reports})
}

// Insights handles GET /v1/surveys/{surveyId}/insights
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	bundle, err := h.insightSvc.BuildInsights(r.Context(), surveyID, optionsFromQuery(r), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func optionsFromQuery(r *http.Request) service.InsightOptions {
	q := r.URL.Query()
	opts := service.InsightOptions{}

	if v := q.Get("from"); v != "" {
		if t, err := parseDate(v); err == nil {
			opts.From = t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := parseDate(v); err == nil {
			opts.To = t
		}
	}
	switch model.Granularity(q.Get("granularity")) {
	case model.GranularityHour:
		opts.Granularity = model.GranularityHour
	case model.GranularityWeek:
		opts.Granularity = model.GranularityWeek
	case model.GranularityMonth:
		opts.Granularity = model.GranularityMonth
	default:
		opts.Granularity = model.GranularityDay
	}
	if v := q.Get("quality"); v != "" {
		opts.Quality = model.QualityStatus(v)
	}
	if v := q.Get("days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			opts.ForecastDays = days
		}
	}
	return opts
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	return t.UTC(), err
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSurveyNotFound) {
		writeError(w, http.StatusNotFound, "survey not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
