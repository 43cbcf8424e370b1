package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/msomdec/workout-tracker/internal/handler"
	"github.com/msomdec/workout-tracker/internal/repository/sqlite"
	"github.com/msomdec/workout-tracker/internal/service"
)

const testSessionSecret = "0123456789abcdef0123456789abcdef"

// newTestApp spins up the full router against a fresh database and returns
// a client with a cookie jar that does not follow redirects.
func newTestApp(t *testing.T) (*httptest.Server, *http.Client, *sqlite.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), 4)
	workouts := service.NewWorkoutService(db.Workouts())

	router, err := handler.NewRouter(auth, workouts, testSessionSecret, false)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}

	return srv, client, db
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func register(t *testing.T, client *http.Client, baseURL, username, email, password string) *http.Response {
	t.Helper()
	return postForm(t, client, baseURL+"/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) *http.Response {
	t.Helper()
	return postForm(t, client, baseURL+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func TestIntegration_RegisterLoginTrackViewProgress(t *testing.T) {
	srv, client, _ := newTestApp(t)

	// 1. Register.
	resp := register(t, client, srv.URL, "alice", "a@x.com", "pw1")
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("register: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("register: expected redirect to /, got %s", loc)
	}

	// The home page shows the one-shot success notice exactly once.
	body := readBody(t, get(t, client, srv.URL+"/"))
	if !strings.Contains(body, "Registration successful! Please log in.") {
		t.Fatal("expected registration flash on next page")
	}
	body = readBody(t, get(t, client, srv.URL+"/"))
	if strings.Contains(body, "Registration successful! Please log in.") {
		t.Fatal("flash should be consumed after one display")
	}

	// 2. Login.
	resp = login(t, client, srv.URL, "a@x.com", "pw1")
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("login: expected redirect to /dashboard, got %s", loc)
	}

	body = readBody(t, get(t, client, srv.URL+"/dashboard"))
	if !strings.Contains(body, "Welcome, alice!") {
		t.Fatal("expected dashboard to greet the user by name")
	}

	// 3. Track a workout.
	resp = postForm(t, client, srv.URL+"/track_workouts", url.Values{
		"date":     {"2024-01-01"},
		"exercise": {"Run"},
		"duration": {"30"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("track: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/workouts" {
		t.Fatalf("track: expected redirect to /workouts, got %s", loc)
	}

	// 4. The list shows exactly that entry.
	body = readBody(t, get(t, client, srv.URL+"/workouts"))
	if !strings.Contains(body, "Run") || !strings.Contains(body, "2024-01-01") || !strings.Contains(body, "30") {
		t.Fatal("expected workout list to show the tracked entry")
	}

	// 5. Progress totals.
	body = readBody(t, get(t, client, srv.URL+"/view_progress"))
	if !strings.Contains(body, `<h2 class="card-title">30</h2>`) {
		t.Fatal("expected total minutes of 30")
	}
	if !strings.Contains(body, `<h2 class="card-title">1</h2>`) {
		t.Fatal("expected total workout count of 1")
	}

	// 6. Logout, then protected pages redirect again.
	resp = get(t, client, srv.URL+"/logout")
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout: expected 302, got %d", resp.StatusCode)
	}

	resp = get(t, client, srv.URL+"/dashboard")
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("dashboard after logout: expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("dashboard after logout: expected redirect to /, got %s", loc)
	}
}

func TestIntegration_EditAndDeleteWorkout(t *testing.T) {
	srv, client, _ := newTestApp(t)

	register(t, client, srv.URL, "editor", "editor@example.com", "password123").Body.Close()
	login(t, client, srv.URL, "editor@example.com", "password123").Body.Close()

	postForm(t, client, srv.URL+"/track_workouts", url.Values{
		"date":     {"2024-01-01"},
		"exercise": {"Run"},
		"duration": {"30"},
	}).Body.Close()

	// The edit form is prefilled with the current values.
	body := readBody(t, get(t, client, srv.URL+"/edit_workout/1"))
	if !strings.Contains(body, `value="Run"`) || !strings.Contains(body, `value="30"`) {
		t.Fatal("expected edit form to be prefilled")
	}

	// Replace all three fields.
	resp := postForm(t, client, srv.URL+"/edit_workout/1", url.Values{
		"date":     {"2024-02-02"},
		"exercise": {"Cycle"},
		"duration": {"45"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("edit: expected 303, got %d", resp.StatusCode)
	}

	body = readBody(t, get(t, client, srv.URL+"/workouts"))
	if !strings.Contains(body, "Cycle") || !strings.Contains(body, "2024-02-02") {
		t.Fatal("expected list to show the edited workout")
	}
	if strings.Contains(body, "Run") {
		t.Fatal("expected no residue of the original exercise")
	}

	// Delete, then the id is gone for good.
	resp = postForm(t, client, srv.URL+"/delete_workout/1", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("delete: expected 303, got %d", resp.StatusCode)
	}

	resp = postForm(t, client, srv.URL+"/delete_workout/1", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestIntegration_WorkoutsAreOwnerScoped(t *testing.T) {
	srv, alice, _ := newTestApp(t)

	register(t, alice, srv.URL, "alice", "alice@example.com", "password123").Body.Close()
	login(t, alice, srv.URL, "alice@example.com", "password123").Body.Close()
	postForm(t, alice, srv.URL+"/track_workouts", url.Values{
		"date":     {"2024-01-01"},
		"exercise": {"Secret Run"},
		"duration": {"30"},
	}).Body.Close()

	// Bob gets his own cookie jar.
	jar, _ := cookiejar.New(nil)
	bob := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	register(t, bob, srv.URL, "bob", "bob@example.com", "password123").Body.Close()
	login(t, bob, srv.URL, "bob@example.com", "password123").Body.Close()

	// Bob's list does not contain Alice's workout.
	body := readBody(t, get(t, bob, srv.URL+"/workouts"))
	if strings.Contains(body, "Secret Run") {
		t.Fatal("bob's list must not show alice's workouts")
	}

	// Bob cannot edit or delete Alice's workout by guessing the id.
	resp := get(t, bob, srv.URL+"/edit_workout/1")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign edit form: expected 404, got %d", resp.StatusCode)
	}

	resp = postForm(t, bob, srv.URL+"/delete_workout/1", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", resp.StatusCode)
	}

	// Alice's workout is still there.
	body = readBody(t, get(t, alice, srv.URL+"/workouts"))
	if !strings.Contains(body, "Secret Run") {
		t.Fatal("alice's workout should be untouched")
	}
}

func TestIntegration_DuplicateRegistration(t *testing.T) {
	srv, client, db := newTestApp(t)

	register(t, client, srv.URL, "alice", "dup@example.com", "password123").Body.Close()
	resp := register(t, client, srv.URL, "other", "dup@example.com", "password456")
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("duplicate register: expected 303, got %d", resp.StatusCode)
	}

	body := readBody(t, get(t, client, srv.URL+"/"))
	if !strings.Contains(body, "Email already registered! Please log in.") {
		t.Fatal("expected duplicate-email warning flash")
	}

	// The user table is unchanged in count.
	var count int
	if err := db.SqlDB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user after duplicate registration, got %d", count)
	}
}

func TestIntegration_InvalidLogin(t *testing.T) {
	srv, client, _ := newTestApp(t)

	register(t, client, srv.URL, "alice", "alice@example.com", "password123").Body.Close()

	resp := login(t, client, srv.URL, "alice@example.com", "wrongpassword")
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("bad login: expected redirect to /, got %s", loc)
	}

	body := readBody(t, get(t, client, srv.URL+"/"))
	if !strings.Contains(body, "Invalid email or password. Try again.") {
		t.Fatal("expected generic invalid-credentials flash")
	}

	// No session was started.
	resp = get(t, client, srv.URL+"/dashboard")
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("dashboard without session: expected 302, got %d", resp.StatusCode)
	}
}

func TestIntegration_LoginRateLimited(t *testing.T) {
	srv, client, _ := newTestApp(t)

	// Burn through the per-IP burst with bad credentials.
	for i := 0; i < 5; i++ {
		login(t, client, srv.URL, "nobody@example.com", "wrong").Body.Close()
		// Drain the flash so it doesn't pile up across attempts.
		readBody(t, get(t, client, srv.URL+"/"))
	}

	login(t, client, srv.URL, "nobody@example.com", "wrong").Body.Close()
	body := readBody(t, get(t, client, srv.URL+"/"))
	if !strings.Contains(body, "Too many login attempts") {
		t.Fatal("expected rate-limit flash after exhausting the burst")
	}
}
