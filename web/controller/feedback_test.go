package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/feedbackboard/feedbackboard/web/service"
)

func TestFeedbackOwnershipFromStoredRow(t *testing.T) {
	r := newTestRouter()
	var feedbacks service.FeedbackService

	register(t, r, "owner1", "password123", "owner1@x.com")
	intruderCookies := register(t, r, "intruder1", "password123", "intruder1@x.com")

	entry, err := feedbacks.Create("Private", "Notes", "owner1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The intruder knows a valid id; ownership is resolved from the
	// stored row, so every mutation is rejected.
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, fmt.Sprintf("/feedback/%d/update", entry.Id)},
		{http.MethodPost, fmt.Sprintf("/feedback/%d/update", entry.Id)},
		{http.MethodPost, fmt.Sprintf("/feedback/%d/delete", entry.Id)},
	}
	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var w = doGet(t, r, tt.path, intruderCookies)
			if tt.method == http.MethodPost {
				w = doPost(t, r, tt.path, url.Values{
					"title":   {"Stolen"},
					"content": {"Gotcha"},
				}, intruderCookies)
			}
			if w.Code != http.StatusFound {
				t.Fatalf("status = %d, expected 302", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != "/login" {
				t.Errorf("redirect = %q, expected /login", loc)
			}
		})
	}

	got, err := feedbacks.Get(entry.Id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Private" || got.Content != "Notes" || got.Username != "owner1" {
		t.Errorf("feedback mutated by non-owner: %+v", got)
	}
}

func TestFeedbackEditRoundTrip(t *testing.T) {
	r := newTestRouter()
	var feedbacks service.FeedbackService

	cookies := register(t, r, "editor1", "password123", "editor1@x.com")

	entry, err := feedbacks.Create("T", "C", "editor1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The edit form is pre-filled with the stored values.
	w := doGet(t, r, fmt.Sprintf("/feedback/%d/update", entry.Id), cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("edit form status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `value="T"`) {
		t.Error("edit form is not pre-filled with the title")
	}

	w = doPost(t, r, fmt.Sprintf("/feedback/%d/update", entry.Id), url.Values{
		"title":   {"T2"},
		"content": {"C"},
	}, cookies)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/users/editor1" {
		t.Fatalf("edit: status = %d, redirect = %q", w.Code, w.Header().Get("Location"))
	}

	got, err := feedbacks.Get(entry.Id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "T2" || got.Content != "C" || got.Username != "editor1" {
		t.Errorf("after edit: %+v", got)
	}

	// Delete through the HTTP surface.
	w = doPost(t, r, fmt.Sprintf("/feedback/%d/delete", entry.Id), url.Values{}, cookies)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/users/editor1" {
		t.Fatalf("delete: status = %d, redirect = %q", w.Code, w.Header().Get("Location"))
	}
	if _, err := feedbacks.Get(entry.Id); err == nil {
		t.Error("feedback still present after delete")
	}
}

func TestFeedbackNotFound(t *testing.T) {
	r := newTestRouter()
	cookies := register(t, r, "seeker1", "password123", "seeker1@x.com")

	for _, path := range []string{
		"/feedback/999999/update",
		"/feedback/notanumber/update",
	} {
		w := doGet(t, r, path, cookies)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, expected 404", path, w.Code)
		}
	}
}

func TestAddFeedbackValidation(t *testing.T) {
	r := newTestRouter()
	var feedbacks service.FeedbackService

	cookies := register(t, r, "writer1", "password123", "writer1@x.com")

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing title", url.Values{"content": {"body"}}},
		{"missing content", url.Values{"title": {"head"}}},
		{"long title", url.Values{"title": {strings.Repeat("x", 101)}, "content": {"body"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doPost(t, r, "/users/writer1/feedback/add", tt.form, cookies)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, expected 200 re-render", w.Code)
			}
		})
	}

	owned, err := feedbacks.GetByUser("writer1")
	if err != nil {
		t.Fatalf("GetByUser() error = %v", err)
	}
	if len(owned) != 0 {
		t.Errorf("rejected submissions created %d entries", len(owned))
	}
}
