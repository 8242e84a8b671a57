package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"jobprep/internal/events"
	"jobprep/internal/middleware"
	"jobprep/internal/models"
	"jobprep/internal/policy"
	"jobprep/internal/progress"
	"jobprep/internal/repositories"
	"jobprep/internal/utils"
)

// ProblemHandler serves the problem catalog plus the per-user progress
// mark actions.
type ProblemHandler struct {
	Repo      ProblemRepository
	Users     UserRepository
	Publisher ProgressPublisher
	PageSize  int
}

type problemPayload struct {
	Name         *string   `json:"name"`
	Acceptance   *float64  `json:"acceptance"`
	Difficulty   *string   `json:"difficulty"`
	QuestionHTML *string   `json:"question_html"`
	SolutionHTML *string   `json:"solution_html"`
	Tags         *[]string `json:"tags"`
	Companies    *[]string `json:"companies"`
}

// validate checks the supplied fields; required names all fields that a
// create must carry, a partial update passes nil.
func (p *problemPayload) validate(required bool) map[string]string {
	fields := map[string]string{}
	if required {
		if p.Name == nil {
			fields["name"] = "This field is required"
		}
		if p.Acceptance == nil {
			fields["acceptance"] = "This field is required"
		}
		if p.Difficulty == nil {
			fields["difficulty"] = "This field is required"
		}
		if p.QuestionHTML == nil {
			fields["question_html"] = "This field is required"
		}
		if p.SolutionHTML == nil {
			fields["solution_html"] = "This field is required"
		}
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		fields["name"] = "Must not be blank"
	}
	if p.Acceptance != nil && (*p.Acceptance < 0 || *p.Acceptance > 1) {
		fields["acceptance"] = "Must be between 0 and 1"
	}
	if p.Difficulty != nil && !models.Difficulty(*p.Difficulty).Valid() {
		fields["difficulty"] = "Must be one of: easy, medium, hard"
	}
	if p.QuestionHTML != nil && *p.QuestionHTML == "" {
		fields["question_html"] = "Must not be blank"
	}
	if p.SolutionHTML != nil && *p.SolutionHTML == "" {
		fields["solution_html"] = "Must not be blank"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *ProblemHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProblemFilter{
		Search:    r.URL.Query().Get("search"),
		Tags:      multiValue(r, "tags"),
		Companies: multiValue(r, "companies"),
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		if !models.Difficulty(raw).Valid() {
			utils.ValidationError(w, map[string]string{"difficulty": "Must be one of: easy, medium, hard"})
			return
		}
		filter.Difficulty = models.Difficulty(raw)
	}

	limit, offset, err := parsePage(r, h.PageSize)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_pagination", err.Error())
		return
	}
	filter.Limit, filter.Offset = limit, offset

	problems, total, err := h.Repo.List(filter)
	if err != nil {
		storeError(w, err)
		return
	}

	if actor := middleware.ActorFromContext(r.Context()); actor != nil {
		if err := h.annotate(actor.ID, problems); err != nil {
			storeError(w, err)
			return
		}
	}

	utils.JSON(w, http.StatusOK, paginated(r, limit, offset, total, problems))
}

// annotate fills the computed status field for the requesting user.
func (h *ProblemHandler) annotate(userID uint, problems []models.Problem) error {
	ids := make([]uint, len(problems))
	for i, p := range problems {
		ids[i] = p.ID
	}
	labels, err := h.Users.ProgressLabels(userID, ids)
	if err != nil {
		return err
	}
	for i := range problems {
		label := progress.Display(labels[problems[i].ID])
		problems[i].Status = &label
	}
	return nil
}

func (h *ProblemHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}
	problem, err := h.Repo.GetByID(id)
	if err != nil {
		storeError(w, err)
		return
	}
	if actor := middleware.ActorFromContext(r.Context()); actor != nil {
		one := []models.Problem{*problem}
		if err := h.annotate(actor.ID, one); err != nil {
			storeError(w, err)
			return
		}
		problem = &one[0]
	}
	utils.JSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceProblem, policy.ActionCreate, 0); !d.Allowed() {
		deny(w, d)
		return
	}

	var payload problemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(true); fields != nil {
		utils.ValidationError(w, fields)
		return
	}

	problem := &models.Problem{
		Name:         *payload.Name,
		Acceptance:   *payload.Acceptance,
		Difficulty:   models.Difficulty(*payload.Difficulty),
		QuestionHTML: *payload.QuestionHTML,
		SolutionHTML: *payload.SolutionHTML,
	}
	if err := h.Repo.Create(problem, sliceOrEmpty(payload.Tags), sliceOrEmpty(payload.Companies)); err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, problem)
}

func (h *ProblemHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceProblem, policy.ActionUpdate, 0); !d.Allowed() {
		deny(w, d)
		return
	}

	id, err := urlID(r)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "not_found", "Not found")
		return
	}

	var payload problemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if fields := payload.validate(false); fields != nil {
		utils.ValidationError(w, fields)
		return
	}

	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Acceptance != nil {
		updates["acceptance"] = *payload.Acceptance
	}
	if payload.Difficulty != nil {
		updates["difficulty"] = *payload.Difficulty
	}
	if payload.QuestionHTML != nil {
		updates["question_html"] = *payload.QuestionHTML
	}
	if payload.SolutionHTML != nil {
		updates["solution_html"] = *payload.SolutionHTML
	}

	problem, err := h.Repo.Update(id, updates, payload.Tags, payload.Companies)
	if err != nil {
		storeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if d := policy.Decide(actor, policy.ResourceProblem, policy.ActionDelete, 0); !d.Allowed() {
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

// MarkHandler records the acting user's progress label for a problem.
// The mark is written before the catalog lookup: a label on an id missing
// from the catalog is accepted and kept, and only the response is a 404.
func (h *ProblemHandler) MarkHandler(label models.ProgressLabel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.ActorFromContext(r.Context())
		if actor == nil {
			deny(w, policy.Decision{Effect: policy.DenyUnauthenticated})
			return
		}
		id, err := urlID(r)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "not_found", "Not found")
			return
		}

		if err := h.Users.SetProgress(actor.ID, id, label); err != nil {
			storeError(w, err)
			return
		}
		if h.Publisher != nil {
			_ = h.Publisher.PublishProgress(r.Context(), events.ProgressEvent{
				UserID:    actor.ID,
				ProblemID: id,
				Label:     string(label),
				MarkedAt:  time.Now().UTC(),
			})
		}

		problem, err := h.Repo.GetByID(id)
		if err != nil {
			storeError(w, err)
			return
		}
		status := progress.Display(label)
		problem.Status = &status
		utils.JSON(w, http.StatusOK, problem)
	}
}

func multiValue(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func sliceOrEmpty(s *[]string) []string {
	if s == nil {
		return nil
	}
	return *s
}
