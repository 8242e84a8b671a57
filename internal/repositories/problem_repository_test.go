package repositories

import (
	"errors"
	"testing"

	"jobprep/internal/models"
	"jobprep/internal/testhelpers"
)

func seedProblems(t *testing.T) *ProblemRepository {
	t.Helper()
	repo := &ProblemRepository{DB: testhelpers.SetupTestDB(t)}

	fixtures := []struct {
		name       string
		acceptance float64
		difficulty models.Difficulty
		question   string
		tags       []string
		companies  []string
	}{
		{"Two Sum", 0.48, models.DifficultyEasy, "<p>Find two numbers adding to target</p>", []string{"array", "hash-table"}, []string{"Google"}},
		{"LRU Cache", 0.35, models.DifficultyMedium, "<p>Design an LRU cache</p>", []string{"design"}, []string{"Amazon", "Google"}},
		{"Median of Two Sorted Arrays", 0.31, models.DifficultyHard, "<p>Median in logarithmic time</p>", []string{"array", "binary-search"}, nil},
	}
	for _, f := range fixtures {
		p := &models.Problem{
			Name:         f.name,
			Acceptance:   f.acceptance,
			Difficulty:   f.difficulty,
			QuestionHTML: f.question,
			SolutionHTML: "<p>solution</p>",
		}
		if err := repo.Create(p, f.tags, f.companies); err != nil {
			t.Fatalf("failed to seed problem %q: %v", f.name, err)
		}
	}
	return repo
}

func TestProblemRepository_List(t *testing.T) {
	t.Run("default ordering by acceptance desc", func(t *testing.T) {
		repo := seedProblems(t)
		problems, total, err := repo.List(ProblemFilter{Limit: 100})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 3 || len(problems) != 3 {
			t.Fatalf("expected 3 problems, got total=%d len=%d", total, len(problems))
		}
		if problems[0].Name != "Two Sum" || problems[2].Name != "Median of Two Sorted Arrays" {
			t.Fatalf("unexpected order: %q .. %q", problems[0].Name, problems[2].Name)
		}
	})

	t.Run("pagination returns page and full count", func(t *testing.T) {
		repo := seedProblems(t)
		problems, total, err := repo.List(ProblemFilter{Limit: 2})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(problems) != 2 {
			t.Fatalf("expected 2 items, got %d", len(problems))
		}
		if total != 3 {
			t.Fatalf("expected count 3, got %d", total)
		}
	})

	t.Run("difficulty exact match", func(t *testing.T) {
		repo := seedProblems(t)
		problems, _, err := repo.List(ProblemFilter{Difficulty: models.DifficultyHard, Limit: 100})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(problems) != 1 || problems[0].Difficulty != models.DifficultyHard {
			t.Fatalf("expected the single hard problem, got %d", len(problems))
		}
	})

	t.Run("tag set overlap", func(t *testing.T) {
		repo := seedProblems(t)
		problems, total, err := repo.List(ProblemFilter{Tags: []string{"array", "design"}, Limit: 100})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 3 || len(problems) != 3 {
			t.Fatalf("expected all 3 problems to intersect, got %d", len(problems))
		}
	})

	t.Run("company set overlap", func(t *testing.T) {
		repo := seedProblems(t)
		problems, _, err := repo.List(ProblemFilter{Companies: []string{"Amazon"}, Limit: 100})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(problems) != 1 || problems[0].Name != "LRU Cache" {
			t.Fatalf("expected only LRU Cache, got %d", len(problems))
		}
	})

	t.Run("search matches name or question text", func(t *testing.T) {
		repo := seedProblems(t)
		problems, _, err := repo.List(ProblemFilter{Search: "median", Limit: 100})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(problems) != 1 {
			t.Fatalf("expected 1 match on name, got %d", len(problems))
		}
		problems, _, err = repo.List(ProblemFilter{Search: "LRU CACHE", Limit: 100})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(problems) != 1 {
			t.Fatalf("expected case-insensitive match, got %d", len(problems))
		}
	})
}

func TestProblemRepository_Create(t *testing.T) {
	repo := seedProblems(t)

	t.Run("reuses existing tags by name", func(t *testing.T) {
		p := &models.Problem{Name: "Valid Anagram", Acceptance: 0.6, Difficulty: models.DifficultyEasy, QuestionHTML: "q", SolutionHTML: "s"}
		if err := repo.Create(p, []string{"array", "string"}, nil); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		var tagCount int64
		if err := repo.DB.Model(&models.Tag{}).Where("name = ?", "array").Count(&tagCount).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if tagCount != 1 {
			t.Fatalf("expected tag %q to exist once, got %d", "array", tagCount)
		}
	})
}

func TestProblemRepository_Update(t *testing.T) {
	repo := seedProblems(t)
	problems, _, _ := repo.List(ProblemFilter{Limit: 1})
	id := problems[0].ID

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := repo.Update(id, map[string]any{"name": "Two Sum II"}, nil, nil)
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.Name != "Two Sum II" {
			t.Fatalf("expected updated name, got %q", updated.Name)
		}
		if updated.Difficulty != models.DifficultyEasy || len(updated.Tags) != 2 {
			t.Fatalf("unsupplied fields changed: %+v", updated)
		}
	})

	t.Run("replaces tags when supplied", func(t *testing.T) {
		tags := []string{"two-pointers"}
		updated, err := repo.Update(id, nil, &tags, nil)
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if len(updated.Tags) != 1 || updated.Tags[0].Name != "two-pointers" {
			t.Fatalf("expected replaced tags, got %+v", updated.Tags)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, err := repo.Update(9999, map[string]any{"name": "x"}, nil, nil); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestProblemRepository_Delete(t *testing.T) {
	repo := seedProblems(t)
	problems, _, _ := repo.List(ProblemFilter{Limit: 100})
	id := problems[0].ID

	user := &models.User{Username: "u", Email: "u@example.com", PasswordHash: "hash", IsActive: true}
	if err := repo.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	status := &models.Status{UserID: user.ID, ProblemID: id, Value: models.StatusRead}
	if err := repo.DB.Create(status).Error; err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}

	t.Run("cascades to status rows", func(t *testing.T) {
		if err := repo.Delete(id); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := repo.GetByID(id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected problem gone, got %v", err)
		}
		var statusCount int64
		repo.DB.Model(&models.Status{}).Where("problem_id = ?", id).Count(&statusCount)
		if statusCount != 0 {
			t.Fatalf("expected dependent statuses deleted, got %d", statusCount)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if err := repo.Delete(9999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
