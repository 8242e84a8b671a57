package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobprep/internal/middleware"
	"jobprep/internal/models"
	"jobprep/internal/repositories"
	"jobprep/internal/testhelpers"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// env bundles repositories over a shared in-memory database for handler
// tests.
type env struct {
	db        *gorm.DB
	problems  *repositories.ProblemRepository
	tags      *repositories.TagRepository
	companies *repositories.CompanyRepository
	statuses  *repositories.StatusRepository
	users     *repositories.UserRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	return &env{
		db:        db,
		problems:  &repositories.ProblemRepository{DB: db},
		tags:      &repositories.TagRepository{DB: db},
		companies: &repositories.CompanyRepository{DB: db},
		statuses:  &repositories.StatusRepository{DB: db},
		users:     &repositories.UserRepository{DB: db},
	}
}

func (e *env) seedUser(t *testing.T, username string, staff bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsStaff:      staff,
		IsActive:     true,
	}
	if err := e.users.CreateUser(user); err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return user
}

func (e *env) seedProblem(t *testing.T, name string, acceptance float64) *models.Problem {
	t.Helper()
	problem := &models.Problem{
		Name:         name,
		Acceptance:   acceptance,
		Difficulty:   models.DifficultyEasy,
		QuestionHTML: "<p>" + name + "</p>",
		SolutionHTML: "<p>solution</p>",
	}
	if err := e.problems.Create(problem, nil, nil); err != nil {
		t.Fatalf("failed to seed problem %q: %v", name, err)
	}
	return problem
}

// newRequest builds a request carrying the given actor, nil for anonymous.
func newRequest(method, target string, actor *models.User, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), actor))
	}
	return req
}

// withRouteID attaches the {id} chi route parameter.
func withRouteID(req *http.Request, id any) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", fmt.Sprint(id))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
