package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/agua-vida/internal/models"
	"github.com/adanyl0v/agua-vida/internal/services"
	"github.com/adanyl0v/agua-vida/internal/store"
)

const (
	testCookieName  = "agua-vida-session"
	testFrontendURL = "http://localhost:3000"
)

// MockIdentityService implements services.IdentityService for testing
type MockIdentityService struct {
	ExchangeFunc func(ctx context.Context, code string) (*models.User, error)
}

func (m *MockIdentityService) AuthCodeURL(state string) string {
	return "https://accounts.example.com/consent?state=" + url.QueryEscape(state)
}

func (m *MockIdentityService) Exchange(ctx context.Context, code string) (*models.User, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return nil, errors.New("exchange not configured")
}

type testServer struct {
	router   *gin.Engine
	store    *store.Memory
	sessions services.SessionService
	identity *MockIdentityService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()
	mem := store.NewMemory()
	ts := &testServer{
		router:   gin.New(),
		store:    mem,
		sessions: services.NewSessionService(logger, "agua-vida", []byte("test-key"), time.Hour),
		identity: &MockIdentityService{},
	}

	h := New(
		logger,
		testFrontendURL,
		CookieConfig{Name: testCookieName},
		services.NewUserService(logger, mem),
		services.NewTaskListService(logger, mem),
		ts.sessions,
		ts.identity,
	)
	RegisterRoutes(ts.router, h)
	return ts
}

// login stores the user and returns a valid session cookie for it.
func (ts *testServer) login(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	ts.store.FindOrCreateUser(user)
	session, err := ts.sessions.Issue(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: testCookieName, Value: session.Token}
}

func (ts *testServer) do(method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
	return v
}

var alice = models.User{ID: "g-1", Name: "Alice", Email: "alice@example.com", AvatarURL: "https://example.com/a.png"}

func TestTaskListRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasklists"},
		{http.MethodPost, "/api/tasklists"},
		{http.MethodPatch, "/api/tasklists/tl1"},
		{http.MethodPatch, "/api/tasklists/tl1/tasks/t1-1"},
		{http.MethodPost, "/api/tasklists/tl1/tasks"},
	}

	bogus := &http.Cookie{Name: testCookieName, Value: "not-a-token"}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := ts.do(tt.method, tt.path, map[string]string{"title": "x", "text": "x"})
			if w.Code != http.StatusUnauthorized {
				t.Errorf("no cookie: status = %d, want 401", w.Code)
			}
			body := decode[map[string]string](t, w)
			if body["error"] != "You must be logged in!" {
				t.Errorf("error = %q", body["error"])
			}

			w = ts.do(tt.method, tt.path, map[string]string{"title": "x", "text": "x"}, bogus)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("bogus cookie: status = %d, want 401", w.Code)
			}
		})
	}
}

func TestSessionForUnknownUserIsRejected(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, alice)
	ts.store.Reset()

	w := ts.do(http.MethodGet, "/api/tasklists", nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGetTaskLists(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, alice)

	w := ts.do(http.MethodGet, "/api/tasklists", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	lists := decode[[]models.TaskList](t, w)
	if len(lists) != 4 || lists[0].ID != "tl1" {
		t.Errorf("unexpected lists: %+v", lists)
	}
}

func TestCreateTaskList(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, alice)

	w := ts.do(http.MethodPost, "/api/tasklists", map[string]any{"stack": "Work"}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing title: status = %d, want 400", w.Code)
	}
	if body := decode[map[string]string](t, w); body["error"] != "Title is required" {
		t.Errorf("error = %q", body["error"])
	}

	w = ts.do(http.MethodPost, "/api/tasklists", map[string]any{
		"title":       "Trip",
		"stack":       "Personal",
		"hasTimer":    true,
		"isFinancial": true,
		"timerMode":   "rest",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	list := decode[models.TaskList](t, w)
	if list.ID == "" || list.Title != "Trip" || !list.HasTimer || !list.IsFinancial {
		t.Errorf("unexpected list: %+v", list)
	}
	if list.TimerMode != models.TimerModeNone || list.RestInterval != 5 {
		t.Errorf("creation must use timer defaults, got %q %d", list.TimerMode, list.RestInterval)
	}
	if got := len(ts.store.ListTaskLists(alice.ID)); got != 5 {
		t.Errorf("stored %d lists, want 5", got)
	}
}

func TestUpdateTaskList(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, alice)

	tests := []struct {
		name     string
		body     any
		wantMode models.TimerMode
		wantRest int
	}{
		{"invalid mode", map[string]any{"timerMode": "invalid"}, models.TimerModeNone, 5},
		{"negative interval", map[string]any{"restInterval": -5}, models.TimerModeNone, 5},
		{"string interval", map[string]any{"restInterval": "10"}, models.TimerModeNone, 5},
		{"ignored fields", map[string]any{"title": "Hacked", "isFinancial": true}, models.TimerModeNone, 5},
		{"empty body", nil, models.TimerModeNone, 5},
		{"valid interval", map[string]any{"restInterval": 10}, models.TimerModeNone, 10},
		{"valid mode", map[string]any{"timerMode": "rest"}, models.TimerModeRest, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPatch, "/api/tasklists/tl1", tt.body, cookie)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body)
			}
			list := decode[models.TaskList](t, w)
			if list.TimerMode != tt.wantMode || list.RestInterval != tt.wantRest {
				t.Errorf("got %q/%d, want %q/%d", list.TimerMode, list.RestInterval, tt.wantMode, tt.wantRest)
			}
			if list.Title != "Q3 Project Launch" || list.IsFinancial {
				t.Errorf("non allow-listed field changed: %+v", list)
			}
		})
	}

	w := ts.do(http.MethodPatch, "/api/tasklists/missing", map[string]any{"timerMode": "rest"}, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown list: status = %d, want 404", w.Code)
	}
}

func TestToggleTask(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, alice)

	w := ts.do(http.MethodPatch, "/api/tasklists/tl1/tasks/t1-3", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	list := decode[models.TaskList](t, w)
	task, _ := list.Task("t1-3")
	if !task.Completed {
		t.Error("task not completed")
	}

	for _, path := range []string{"/api/tasklists/missing/tasks/t1-3", "/api/tasklists/tl1/tasks/missing"} {
		w = ts.do(http.MethodPatch, path, nil, cookie)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, w.Code)
		}
		if body := decode[map[string]string](t, w); body["error"] != "List or task not found" {
			t.Errorf("error = %q", body["error"])
		}
	}
}

func TestCreateTask(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, alice)

	w := ts.do(http.MethodPost, "/api/tasklists/tl3/tasks", map[string]any{"value": 5}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing text: status = %d, want 400", w.Code)
	}

	w = ts.do(http.MethodPost, "/api/tasklists/missing/tasks", map[string]any{"text": "x"}, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown list: status = %d, want 404", w.Code)
	}

	w = ts.do(http.MethodPost, "/api/tasklists/tl3/tasks", map[string]any{"text": "x", "value": 5}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if strings.Contains(w.Body.String(), `"value"`) {
		t.Errorf("non-financial list returned a value: %s", w.Body)
	}

	w = ts.do(http.MethodPost, "/api/tasklists/tl2/tasks", map[string]any{"text": "Tiles", "value": 42.5}, cookie)
	list := decode[models.TaskList](t, w)
	added := list.Tasks[len(list.Tasks)-1]
	if added.Value == nil || *added.Value != 42.5 {
		t.Errorf("financial value = %v, want 42.5", added.Value)
	}

	w = ts.do(http.MethodPost, "/api/tasklists/tl2/tasks", map[string]any{"text": "Grout", "value": "cheap"}, cookie)
	list = decode[models.TaskList](t, w)
	if list.Tasks[len(list.Tasks)-1].Value != nil {
		t.Error("non-numeric value was stored")
	}
}

func TestCurrentUser(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/current_user", nil)
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Errorf("anonymous: status = %d, body = %q", w.Code, w.Body)
	}

	cookie := ts.login(t, alice)
	w = ts.do(http.MethodGet, "/api/current_user", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode[models.User](t, w); got != alice {
		t.Errorf("current user = %+v, want %+v", got, alice)
	}
}

func TestGoogleLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.identity.ExchangeFunc = func(_ context.Context, code string) (*models.User, error) {
		if code != "good-code" {
			return nil, services.ErrIdentityExchange
		}
		return &alice, nil
	}

	w := ts.do(http.MethodGet, "/auth/google", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	var state *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == oauthStateCookie {
			state = c
		}
	}
	if state == nil || state.Value == "" || !state.HttpOnly {
		t.Fatalf("state cookie not set correctly: %+v", state)
	}
	if loc := w.Header().Get("Location"); !strings.Contains(loc, url.QueryEscape(state.Value)) {
		t.Errorf("redirect %q does not carry the state", loc)
	}

	w = ts.do(http.MethodGet, "/auth/google/callback?state=wrong&code=good-code", nil, state)
	if w.Code != http.StatusBadRequest {
		t.Errorf("state mismatch: status = %d, want 400", w.Code)
	}

	w = ts.do(http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(state.Value)+"&code=bad-code", nil, state)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("failed exchange: status = %d, want 401", w.Code)
	}

	w = ts.do(http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(state.Value)+"&code=good-code", nil, state)
	if w.Code != http.StatusFound || w.Header().Get("Location") != testFrontendURL {
		t.Fatalf("status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("session cookie not set")
	}
	if got := len(ts.store.ListTaskLists(alice.ID)); got != 4 {
		t.Errorf("new user seeded with %d lists, want 4", got)
	}

	w = ts.do(http.MethodGet, "/api/tasklists", nil, session)
	if w.Code != http.StatusOK {
		t.Errorf("session from callback rejected: %d", w.Code)
	}
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, alice)

	w := ts.do(http.MethodGet, "/api/logout", nil, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != testFrontendURL {
		t.Fatalf("status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared")
	}
}
