package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobprep/internal/middleware"
	"jobprep/internal/models"
	"jobprep/internal/policy"
	"jobprep/internal/repositories"
	"jobprep/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserHandler serves registration and user account CRUD. Registration is
// public; everything else is self-or-staff.
type UserHandler struct {
	Repo     UserRepository
	PageSize int
}

type userPayload struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsActive    *bool   `json:"is_active"`
}

func (p *userPayload) hasRoleFlags() bool {
	return p.IsStaff != nil || p.IsSuperuser != nil || p.IsActive != nil
}

func (p *userPayload) validate(required bool) map[string]string {
	fields := map[string]string{}
	if required {
		if p.Username == nil {
			fields["username"] = "This field is required"
		}
		if p.Email == nil {
			fields["email"] = "This field is required"
		}
		if p.Password == nil {
			fields["password"] = "This field is required"
		}
	}
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		fields["username"] = "Must not be blank"
	}
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		fields["email"] = "Enter a valid email address"
	}
	if p.Password != nil && !utils.IsPasswordValid(*p.Password) {
		fields["password"] = "Must be at least 8 characters and not entirely numeric"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CreateHandler registers a user. Role flags are only honoured when the
// acting user is staff; self-registration cannot grant itself anything.
func (h *UserHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceUser, policy.ActionCreate, 0); !d.Allowed() {
		deny(w, d)
		return
	}

	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(true); fields != nil {
		utils.ValidationError(w, fields)
		return
	}
	if payload.hasRoleFlags() && (actor == nil || !actor.IsStaff) {
		utils.Error(w, http.StatusForbidden, "forbidden", "Role flags may only be set by staff")
		return
	}

	if existing, _ := h.Repo.GetUserByUsername(*payload.Username); existing != nil {
		utils.Error(w, http.StatusConflict, "conflict", "Username taken")
		return
	}
	if existing, _ := h.Repo.GetUserByEmail(*payload.Email); existing != nil {
		utils.Error(w, http.StatusConflict, "conflict", "Email taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to hash password")
		return
	}

	user := &models.User{
		Username:     *payload.Username,
		Email:        *payload.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if payload.IsStaff != nil {
		user.IsStaff = *payload.IsStaff
	}
	if payload.IsSuperuser != nil {
		user.IsSuperuser = *payload.IsSuperuser
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := h.Repo.CreateUser(user); err != nil {
		storeError(w, err)
		return
	}
	user.ConfidentProblems = []uint{}
	user.SolvedProblems = []uint{}
	user.TriedProblems = []uint{}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceUser, policy.ActionList, 0); !d.Allowed() {
		deny(w, d)
		return
	}

	filter := repositories.UserFilter{Search: r.URL.Query().Get("search")}
	for _, flag := range []struct {
		key  string
		dest **bool
	}{
		{"is_staff", &filter.IsStaff},
		{"is_active", &filter.IsActive},
	} {
		if raw := r.URL.Query().Get(flag.key); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				utils.ValidationError(w, map[string]string{flag.key: "Must be a boolean"})
				return
			}
			*flag.dest = &parsed
		}
	}

	limit, offset, err := parsePage(r, h.PageSize)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_pagination", err.Error())
		return
	}
	filter.Limit, filter.Offset = limit, offset

	users, total, err := h.Repo.List(filter)
	if err != nil {
		storeError(w, err)
		return
	}
	for i := range users {
		if err := h.withProgress(&users[i]); err != nil {
			storeError(w, err)
			return
		}
	}
	utils.JSON(w, http.StatusOK, paginated(r, limit, offset, total, users))
}

func (h *UserHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	if d := policy.Decide(actor, policy.ResourceUser, policy.ActionRetrieve, id); !d.Allowed() {
		deny(w, d)
		return
	}
	user, err := h.Repo.GetUserByID(id)
	if err != nil {
		storeError(w, err)
		return
	}
	if err := h.withProgress(user); err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	if d := policy.Decide(actor, policy.ResourceUser, policy.ActionUpdate, id); !d.Allowed() {
		deny(w, d)
		return
	}

	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(false); fields != nil {
		utils.ValidationError(w, fields)
		return
	}
	if payload.hasRoleFlags() && !actor.IsStaff {
		utils.Error(w, http.StatusForbidden, "forbidden", "Role flags may only be set by staff")
		return
	}

	updates := map[string]any{}
	if payload.Username != nil {
		updates["username"] = *payload.Username
	}
	if payload.Email != nil {
		updates["email"] = *payload.Email
	}
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to hash password")
			return
		}
		updates["password_hash"] = string(hash)
	}
	if payload.IsStaff != nil {
		updates["is_staff"] = *payload.IsStaff
	}
	if payload.IsSuperuser != nil {
		updates["is_superuser"] = *payload.IsSuperuser
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	user, err := h.Repo.UpdateUser(id, updates)
	if err != nil {
		storeError(w, err)
		return
	}
	if err := h.withProgress(user); err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	if d := policy.Decide(actor, policy.ResourceUser, policy.ActionDelete, id); !d.Allowed() {
		deny(w, d)
		return
	}
	if err := h.Repo.DeleteUser(id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withProgress fills the derived progress collections on the user record.
func (h *UserHandler) withProgress(user *models.User) error {
	confident, solved, tried, err := h.Repo.ProgressSets(user.ID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	user.ConfidentProblems = confident
	user.SolvedProblems = solved
	user.TriedProblems = tried
	return nil
}
