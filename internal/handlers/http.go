package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"jobprep/internal/models"
	"jobprep/internal/policy"
	"jobprep/internal/repositories"
	"jobprep/internal/utils"

	"github.com/go-chi/chi/v5"
)

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// parsePage reads limit/offset with a default page size.
func parsePage(r *http.Request, defaultLimit int) (limit, offset int, err error) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

// paginated builds the list envelope with next/previous cursors relative
// to the request URL.
func paginated(r *http.Request, limit, offset int, count int64, results any) models.PaginatedResponse {
	resp := models.PaginatedResponse{Count: count, Results: results}
	if int64(offset+limit) < count {
		resp.Next = pageLink(r, limit, offset+limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		resp.Previous = pageLink(r, limit, prev)
	}
	return resp
}

func pageLink(r *http.Request, limit, offset int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()
	link := u.RequestURI()
	return &link
}

// deny writes the HTTP form of a policy denial.
func deny(w http.ResponseWriter, d policy.Decision) {
	if d.Effect == policy.DenyUnauthenticated {
		utils.Error(w, http.StatusUnauthorized, "unauthenticated", "Authentication credentials were not provided")
		return
	}
	utils.Error(w, http.StatusForbidden, "forbidden", "You do not have permission to perform this action")
}

// storeError maps repository sentinels onto HTTP responses.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
	case errors.Is(err, repositories.ErrConflict):
		utils.Error(w, http.StatusConflict, "conflict", "Constraint violation")
	case errors.Is(err, repositories.ErrUnavailable):
		utils.Error(w, http.StatusServiceUnavailable, "store_unavailable", "Store temporarily unavailable")
	default:
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Unexpected error")
	}
}
