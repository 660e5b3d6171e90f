// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/classpulse/handlers"
	"github.com/danielhkuo/classpulse/hub"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/poll"
	"github.com/danielhkuo/classpulse/router"
	"github.com/danielhkuo/classpulse/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *poll.Manager, *testutil.RecordingBroadcaster, *testutil.ManualScheduler) {
	t.Helper()
	mgr, bcast, sched := testutil.NewTestManager(t)
	return router.NewRouter(mgr, hub.New()), mgr, bcast, sched
}

func tokenHeader(token string) map[string]string {
	return map[string]string{handlers.TokenHeader: token}
}

func joinTeacherHTTP(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/teacher", nil, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.JoinTeacherResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("expected a teacher token")
	}
	return resp.Token
}

func joinStudentHTTP(t *testing.T, mux *http.ServeMux, name string) (token, id string) {
	t.Helper()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/students", models.JoinStudentRequest{Name: name}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.JoinStudentResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Token == "" || resp.StudentID == "" {
		t.Fatal("expected a student token and id")
	}
	return resp.Token, resp.StudentID
}

func TestJoinTeacherEndpoint(t *testing.T) {
	mux, _, _, _ := newTestRouter(t)

	token := joinTeacherHTTP(t, mux)

	// Rejoining with the issued token succeeds and returns it unchanged
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/teacher", nil, tokenHeader(token)))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.JoinTeacherResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Token != token {
		t.Errorf("rejoin should echo the same token")
	}

	// A second distinct teacher conflicts
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/teacher", nil, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestLeaveTeacherEndpoint(t *testing.T) {
	mux, _, _, _ := newTestRouter(t)
	token := joinTeacherHTTP(t, mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/session/teacher", nil, tokenHeader(token)))
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.CommandResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "applied" {
		t.Errorf("expected applied, got %q", resp.Status)
	}

	// Stale leave is 200 with status ignored, never an error
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/session/teacher", nil, tokenHeader(token)))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "ignored" {
		t.Errorf("expected ignored, got %q", resp.Status)
	}
}

func TestJoinStudentEndpoint(t *testing.T) {
	mux, mgr, _, _ := newTestRouter(t)

	joinStudentHTTP(t, mux, "Alice")

	// Duplicate name
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/students", models.JoinStudentRequest{Name: "Alice"}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Missing name
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/students", models.JoinStudentRequest{}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Malformed body
	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/session/students", nil)
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	if got := mgr.PublicState().StudentCount; got != 1 {
		t.Errorf("expected 1 student after rejections, got %d", got)
	}
}

func TestLeaveStudentEndpoint(t *testing.T) {
	mux, mgr, _, _ := newTestRouter(t)
	token, _ := joinStudentHTTP(t, mux, "Alice")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/session/students/me", nil, tokenHeader(token)))
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.CommandResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "applied" {
		t.Errorf("expected applied, got %q", resp.Status)
	}
	if got := mgr.PublicState().StudentCount; got != 0 {
		t.Errorf("expected 0 students, got %d", got)
	}

	// Duplicate leave: ignored
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/session/students/me", nil, tokenHeader(token)))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "ignored" {
		t.Errorf("expected ignored, got %q", resp.Status)
	}
}

func TestRemoveStudentEndpoint(t *testing.T) {
	mux, mgr, _, _ := newTestRouter(t)
	teacher := joinTeacherHTTP(t, mux)
	_, aliceID := joinStudentHTTP(t, mux, "Alice")

	// Only the teacher may remove
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/session/students/"+aliceID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Unknown roster id
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/session/students/unknown-id", nil, tokenHeader(teacher)))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/session/students/"+aliceID, nil, tokenHeader(teacher)))
	testutil.AssertStatus(t, w, http.StatusOK)
	if got := mgr.PublicState().StudentCount; got != 0 {
		t.Errorf("expected 0 students after removal, got %d", got)
	}
}

func TestResetEndpoint(t *testing.T) {
	mux, mgr, _, _ := newTestRouter(t)
	teacher := joinTeacherHTTP(t, mux)
	joinStudentHTTP(t, mux, "Alice")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/reset", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/session/reset", nil, tokenHeader(teacher)))
	testutil.AssertStatus(t, w, http.StatusOK)

	state := mgr.PublicState()
	if state.StudentCount != 0 || state.HasQuestion || len(state.History) != 0 {
		t.Errorf("reset should empty the session, got %+v", state)
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux, _, _, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}
