package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		limit   int
		offset  int
		wantErr bool
	}{
		{name: "defaults", query: "", limit: 100, offset: 0},
		{name: "explicit", query: "?limit=10&offset=30", limit: 10, offset: 30},
		{name: "zero limit", query: "?limit=0", wantErr: true},
		{name: "negative offset", query: "?offset=-1", wantErr: true},
		{name: "garbage limit", query: "?limit=ten", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/problems"+tc.query, nil)
			limit, offset, err := parsePage(req, 100)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tc.limit || offset != tc.offset {
				t.Fatalf("got limit=%d offset=%d, want %d/%d", limit, offset, tc.limit, tc.offset)
			}
		})
	}
}

func TestPaginated(t *testing.T) {
	t.Run("middle page has both cursors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/problems?difficulty=easy&limit=10&offset=10", nil)
		resp := paginated(req, 10, 10, 35, nil)

		if resp.Count != 35 {
			t.Fatalf("expected count 35, got %d", resp.Count)
		}
		if resp.Next == nil || !strings.Contains(*resp.Next, "offset=20") {
			t.Fatalf("unexpected next cursor: %v", resp.Next)
		}
		if resp.Previous == nil || !strings.Contains(*resp.Previous, "offset=0") {
			t.Fatalf("unexpected previous cursor: %v", resp.Previous)
		}
		if !strings.Contains(*resp.Next, "difficulty=easy") {
			t.Fatalf("filters should carry through cursors, got %v", *resp.Next)
		}
	})

	t.Run("first page has no previous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
		resp := paginated(req, 10, 0, 35, nil)
		if resp.Previous != nil {
			t.Fatalf("expected no previous cursor, got %v", *resp.Previous)
		}
	})

	t.Run("last page has no next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/problems?offset=30", nil)
		resp := paginated(req, 10, 30, 35, nil)
		if resp.Next != nil {
			t.Fatalf("expected no next cursor, got %v", *resp.Next)
		}
	})

	t.Run("exact page boundary", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
		resp := paginated(req, 10, 0, 10, nil)
		if resp.Next != nil {
			t.Fatalf("expected no next cursor at the boundary, got %v", *resp.Next)
		}
	})
}

func TestURLID(t *testing.T) {
	for _, raw := range []string{"", "0", "abc", "-3"} {
		req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/problems/x", nil), raw)
		if _, err := urlID(req); err == nil {
			t.Errorf("id %q: expected an error", raw)
		}
	}

	req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/problems/7", nil), "7")
	id, err := urlID(req)
	if err != nil || id != 7 {
		t.Fatalf("expected 7, got %d (%v)", id, err)
	}
}
