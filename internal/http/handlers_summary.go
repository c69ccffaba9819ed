package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/zayLatt25/receipt-app/internal/core"
	applog "github.com/zayLatt25/receipt-app/internal/log"
	"github.com/zayLatt25/receipt-app/internal/stats"
)

func (s *Server) handleDaySummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing date parameter")
		return
	}

	if summary, found := s.dayCache.Get(date); found {
		writeJSON(w, http.StatusOK, summary)
		return
	}

	summary, err := s.summaries.DaySummary(r.Context(), date)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		s.logger.ErrorContext(r.Context(), "Day summary error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err, applog.FieldDate, date)
		writeError(w, http.StatusInternalServerError, "failed to build day summary")
		return
	}

	s.dayCache.Set(date, summary)
	writeJSON(w, http.StatusOK, summary)
}

type weeklySummaryResponse struct {
	stats.WeeklySummary
	Message string `json:"message"`
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	ref := time.Now()
	if v := r.URL.Query().Get("ref"); v != "" {
		parsed, err := time.Parse(core.DateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid ref date, expected YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	summary := s.summaries.WeeklySummary(r.Context(), ref)
	writeJSON(w, http.StatusOK, weeklySummaryResponse{
		WeeklySummary: summary,
		Message:       stats.SummaryMessage(summary),
	})
}

func (s *Server) handleCalendarMarkers(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		writeError(w, http.StatusBadRequest, "missing month parameter")
		return
	}
	selected := r.URL.Query().Get("selected")
	refresh := r.URL.Query().Get("refresh") == "true"

	markers, err := s.summaries.MarkedDates(r.Context(), monthKey, selected, refresh)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		s.logger.ErrorContext(r.Context(), "Calendar markers error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err, applog.FieldMonthKey, monthKey)
		writeError(w, http.StatusInternalServerError, "failed to load calendar markers")
		return
	}

	writeJSON(w, http.StatusOK, markers)
}

type yearlyStatsResponse struct {
	Year          int            `json:"year"`
	MonthlyTotals [12]core.Money `json:"monthly_totals"`
}

func (s *Server) handleYearlyStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1970 || parsed > 9999 {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}

	totals, err := s.summaries.YearlyTotals(r.Context(), year)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Yearly stats error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err, "year", year)
		writeError(w, http.StatusInternalServerError, "failed to build yearly stats")
		return
	}

	writeJSON(w, http.StatusOK, yearlyStatsResponse{Year: year, MonthlyTotals: totals})
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		writeError(w, http.StatusBadRequest, "missing month parameter")
		return
	}

	categories, err := s.taxonomy.Categories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category list error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	totals, err := s.summaries.MonthCategoryTotals(r.Context(), monthKey, categories)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		s.logger.ErrorContext(r.Context(), "Category stats error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err, applog.FieldMonthKey, monthKey)
		writeError(w, http.StatusInternalServerError, "failed to build category stats")
		return
	}

	writeJSON(w, http.StatusOK, totals)
}
