package handlers

import (
	"encoding/json"
	"net/http"

	"jobprep/internal/middleware"
	"jobprep/internal/models"
	"jobprep/internal/policy"
	"jobprep/internal/repositories"
	"jobprep/internal/utils"
)

// StatusHandler serves the per-user reading-status rows. Every action
// requires an authenticated actor; non-staff actors only ever see their
// own rows, so someone else's row answers 404.
type StatusHandler struct {
	Repo     StatusRepository
	PageSize int
}

type statusPayload struct {
	Problem *uint   `json:"problem"`
	Status  *string `json:"status"`
}

// ownerScope converts a policy decision into the repository scope.
func ownerScope(d policy.Decision, actor *models.User) *uint {
	if d.OwnRowsOnly {
		return &actor.ID
	}
	return nil
}

func (h *StatusHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	d := policy.Decide(actor, policy.ResourceStatus, policy.ActionList, 0)
	if !d.Allowed() {
		deny(w, d)
		return
	}

	limit, offset, err := parsePage(r, h.PageSize)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_pagination", err.Error())
		return
	}

	statuses, total, err := h.Repo.List(repositories.StatusFilter{
		OwnerID: ownerScope(d, actor),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, paginated(r, limit, offset, total, statuses))
}

// CreateHandler inserts a status row. The owning user is always the
// authenticated actor; a user field in the body is ignored even for staff.
func (h *StatusHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceStatus, policy.ActionCreate, 0); !d.Allowed() {
		deny(w, d)
		return
	}

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	fields := map[string]string{}
	if payload.Problem == nil || *payload.Problem == 0 {
		fields["problem"] = "This field is required"
	}
	value := models.StatusUnread
	if payload.Status != nil {
		value = models.StatusValue(*payload.Status)
		if !value.Valid() {
			fields["status"] = "Not a valid choice"
		}
	}
	if len(fields) > 0 {
		utils.ValidationError(w, fields)
		return
	}

	status := &models.Status{
		UserID:    actor.ID,
		ProblemID: *payload.Problem,
		Value:     value,
	}
	if err := h.Repo.Create(status); err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, status)
}

func (h *StatusHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	d := policy.Decide(actor, policy.ResourceStatus, policy.ActionRetrieve, 0)
	if !d.Allowed() {
		deny(w, d)
		return
	}
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	status, err := h.Repo.GetByID(id, ownerScope(d, actor))
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, status)
}

func (h *StatusHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	d := policy.Decide(actor, policy.ResourceStatus, policy.ActionUpdate, 0)
	if !d.Allowed() {
		deny(w, d)
		return
	}
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if payload.Status == nil {
		utils.ValidationError(w, map[string]string{"status": "This field is required"})
		return
	}
	value := models.StatusValue(*payload.Status)
	if !value.Valid() {
		utils.ValidationError(w, map[string]string{"status": "Not a valid choice"})
		return
	}

	status, err := h.Repo.Update(id, ownerScope(d, actor), value)
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, status)
}

func (h *StatusHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	d := policy.Decide(actor, policy.ResourceStatus, policy.ActionDelete, 0)
	if !d.Allowed() {
		deny(w, d)
		return
	}
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	if err := h.Repo.Delete(id, ownerScope(d, actor)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
