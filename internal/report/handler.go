package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/2beens/weeklyreport/internal/activities"
	"github.com/2beens/weeklyreport/internal/middleware"
	"github.com/2beens/weeklyreport/internal/telemetry/metrics"
	"github.com/2beens/weeklyreport/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedPerMin int,
) {
	reportRouter := mainRouter.PathPrefix("/report/weekly").Subrouter()
	reportRouter.HandleFunc("", h.HandleReport).Methods("GET", "OPTIONS").Name("weekly-report")
	reportRouter.HandleFunc("/summary", h.HandleSummary).Methods("GET", "OPTIONS").Name("weekly-summary")
	reportRouter.HandleFunc("/rollup", h.HandleRollup).Methods("GET", "OPTIONS").Name("weekly-rollup")
	reportRouter.HandleFunc("/week/{week}", h.HandleWeek).Methods("GET", "OPTIONS").Name("weekly-week")

	reportRouter.Use(middleware.RateLimit(rateLimiter, "report", allowedPerMin, metricsManager))
}

// HandleReport returns the full report: activities, summary table, chart series and rollup.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, report.Summary, http.StatusOK)
}

func (h *Handler) HandleRollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := h.service.RecentRollup(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	pkg.WriteJSON(w, rollup, http.StatusOK)
}

func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	week := mux.Vars(r)["week"]
	row, err := h.service.WeekRow(r.Context(), week)
	if err != nil {
		writeError(w, err)
		return
	}
	pkg.WriteJSON(w, row, http.StatusOK)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) (*activities.Report, bool) {
	from, to, err := parseRange(r)
	if err != nil {
		log.Debugf("weekly report: bad request: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	report, err := h.service.Report(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return report, true
}

// parseRange reads the optional start and end query params; missing ones stay zero.
func parseRange(r *http.Request) (from, to time.Time, err error) {
	query := r.URL.Query()
	if startParam := query.Get("start"); startParam != "" {
		if from, err = pkg.ParseDate(startParam); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endParam := query.Get("end"); endParam != "" {
		if to, err = pkg.ParseDate(endParam); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

func writeError(w http.ResponseWriter, err error) {
	var sourceErr *activities.SourceUnavailableError
	var missingErr *activities.MissingRollupRowError
	switch {
	case errors.Is(err, ErrInvalidRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &missingErr):
		http.Error(w, missingErr.Error(), http.StatusNotFound)
	case errors.As(err, &sourceErr):
		http.Error(w, "activity source unavailable, try again later", http.StatusServiceUnavailable)
	default:
		log.Errorf("weekly report: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
