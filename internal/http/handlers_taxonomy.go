package http

import (
	"encoding/json"
	"net/http"

	"github.com/zayLatt25/receipt-app/internal/core"
	applog "github.com/zayLatt25/receipt-app/internal/log"
)

type addCategoryRequest struct {
	Name string `json:"name"`
}

type addCategoryResponse struct {
	Name string `json:"name"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := s.taxonomy.Categories(r.Context())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Category list error",
				applog.FieldRequestID, requestIDFromContext(r.Context()),
				applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to load categories")
			return
		}
		writeJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var req addCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// The store resolves casing and duplicates; canonical is what the
		// caller should display from now on.
		canonical, err := s.taxonomy.AddCategory(r.Context(), sanitizeInput(req.Name))
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Add category error",
				applog.FieldRequestID, requestIDFromContext(r.Context()),
				applog.FieldError, err, applog.FieldCategory, req.Name)
			writeError(w, http.StatusInternalServerError, "failed to add category")
			return
		}
		writeJSON(w, http.StatusCreated, addCategoryResponse{Name: canonical})

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type groceryListResponse struct {
	Items []core.GroceryItem `json:"items"`
	Total core.Money         `json:"total"`
}

func (s *Server) handleGrocery(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.grocery.LoadGroceryList(r.Context())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Grocery load error",
				applog.FieldRequestID, requestIDFromContext(r.Context()),
				applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to load grocery list")
			return
		}
		writeJSON(w, http.StatusOK, groceryListResponse{
			Items: items,
			Total: core.GroceryTotal(items),
		})

	case http.MethodPut:
		var items []core.GroceryItem
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Rows without a name are dropped rather than rejected; the list is
		// collaborative scratch space, not validated input.
		kept := items[:0]
		for _, it := range items {
			it.Name = sanitizeInput(it.Name)
			if it.Name == "" {
				continue
			}
			kept = append(kept, it)
		}
		items = kept

		// A save replaces the whole list, document style.
		if err := s.grocery.SaveGroceryList(r.Context(), items); err != nil {
			s.logger.ErrorContext(r.Context(), "Grocery save error",
				applog.FieldRequestID, requestIDFromContext(r.Context()),
				applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to save grocery list")
			return
		}
		writeJSON(w, http.StatusOK, groceryListResponse{
			Items: items,
			Total: core.GroceryTotal(items),
		})

	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
