package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zayLatt25/receipt-app/internal/core"
	applog "github.com/zayLatt25/receipt-app/internal/log"
	"github.com/zayLatt25/receipt-app/internal/store"
)

type createExpenseRequest struct {
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

// parseAmount applies the strict creation-time gate. String amounts come
// from the entry form and go through ParseDecimalToCents; bare numbers take
// Money's tolerant path and get caught by Validate if non-positive.
func parseAmount(raw json.RawMessage) (core.Money, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return core.Money{}, core.ErrInvalidAmount
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return core.Money{}, core.ErrInvalidAmount
		}
		cents, err := core.ParseDecimalToCents(s)
		if err != nil {
			return core.Money{}, err
		}
		return core.Money{Cents: cents}, nil
	}
	var m core.Money
	if err := m.UnmarshalJSON(trimmed); err != nil {
		return core.Money{}, core.ErrInvalidAmount
	}
	return m, nil
}

type createExpenseResponse struct {
	ID string `json:"id"`
}

type deleteExpenseRequest struct {
	ID string `json:"id"`
}

type deleteExpenseResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	case http.MethodDelete:
		s.handleDeleteExpense(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse create body error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err, applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	rec := core.ExpenseRecord{
		Description: sanitizeInput(req.Description),
		Amount:      amount,
		Category:    sanitizeInput(req.Category),
		Date:        req.Date,
	}

	id, err := s.expenses.Create(r.Context(), rec)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "Create expense error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err,
			applog.FieldOperation, applog.OpCreate,
			applog.FieldDate, rec.Date)
		writeError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}

	s.dayCache.Delete(rec.Date)
	writeJSON(w, http.StatusCreated, createExpenseResponse{ID: id})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		var req deleteExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			id = req.ID
		}
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense id")
		return
	}

	removed, err := s.expenses.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		s.logger.ErrorContext(r.Context(), "Delete expense error",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldRecordID, id)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	s.dayCache.Delete(removed.Date)
	writeJSON(w, http.StatusOK, deleteExpenseResponse{ID: id, Date: removed.Date})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrDescriptionTooLong)
}
