package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"jobprep/internal/middleware"
	"jobprep/internal/models"
	"jobprep/internal/policy"
	"jobprep/internal/repositories"
	"jobprep/internal/utils"
)

// Tag and Company are the same shape with the same lifecycle rules, so the
// two handlers below mirror each other.

type namePayload struct {
	Name *string `json:"name"`
}

func (p *namePayload) validate() map[string]string {
	if p.Name == nil {
		return map[string]string{"name": "This field is required"}
	}
	if strings.TrimSpace(*p.Name) == "" {
		return map[string]string{"name": "Must not be blank"}
	}
	return nil
}

type TagHandler struct {
	Repo     TagRepository
	PageSize int
}

func (h *TagHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r, h.PageSize)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_pagination", err.Error())
		return
	}
	tags, total, err := h.Repo.List(repositories.NameFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, paginated(r, limit, offset, total, tags))
}

func (h *TagHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	tag, err := h.Repo.GetByID(id)
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tag)
}

func (h *TagHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceTag, policy.ActionCreate, 0); !d.Allowed() {
		deny(w, d)
		return
	}
	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(); fields != nil {
		utils.ValidationError(w, fields)
		return
	}
	tag := &models.Tag{Name: *payload.Name}
	if err := h.Repo.Create(tag); err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceTag, policy.ActionUpdate, 0); !d.Allowed() {
		deny(w, d)
		return
	}
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(); fields != nil {
		utils.ValidationError(w, fields)
		return
	}
	tag, err := h.Repo.Update(id, *payload.Name)
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tag)
}

func (h *TagHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceTag, policy.ActionDelete, 0); !d.Allowed() {
		deny(w, d)
		return
	}
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type CompanyHandler struct {
	Repo     CompanyRepository
	PageSize int
}

func (h *CompanyHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r, h.PageSize)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_pagination", err.Error())
		return
	}
	companies, total, err := h.Repo.List(repositories.NameFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, paginated(r, limit, offset, total, companies))
}

func (h *CompanyHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	company, err := h.Repo.GetByID(id)
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceCompany, policy.ActionCreate, 0); !d.Allowed() {
		deny(w, d)
		return
	}
	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(); fields != nil {
		utils.ValidationError(w, fields)
		return
	}
	company := &models.Company{Name: *payload.Name}
	if err := h.Repo.Create(company); err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceCompany, policy.ActionUpdate, 0); !d.Allowed() {
		deny(w, d)
		return
	}
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(); fields != nil {
		utils.ValidationError(w, fields)
		return
	}
	company, err := h.Repo.Update(id, *payload.Name)
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceCompany, policy.ActionDelete, 0); !d.Allowed() {
		deny(w, d)
		return
	}
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
