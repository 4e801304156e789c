package gate_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CareerPrix/CP-Backend/internal/gate"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"gorm.io/gorm"
)

// mockFetcher implements gate.SessionFetcher without any database dependency.
type mockFetcher struct {
	session utils.SessionData
	err     error
}

func (m mockFetcher) FindSessionByID(id string) (utils.SessionData, error) {
	return m.session, m.err
}

func studentFetcher() mockFetcher {
	return mockFetcher{session: utils.SessionData{
		UserID:    "student-1",
		Role:      "student",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
}

func companyFetcher() mockFetcher {
	return mockFetcher{session: utils.SessionData{
		UserID:    "company-1",
		Role:      "company",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
}

// request runs a single GET through the gate, optionally with a session
// cookie, and returns the recorded response.
func request(t *testing.T, fetcher gate.SessionFetcher, path string, withCookie bool) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := gate.Middleware(gate.DefaultPaths(), fetcher)(inner)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "some-session"})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestPublicPathsAlwaysPass verifies public paths pass through for anonymous,
// student and company callers alike.
func TestPublicPathsAlwaysPass(t *testing.T) {
	publicPaths := []string{"/", "/jobs", "/jobs/123", "/features/pricing", "/grandprix", "/api/v1/jobs"}

	fetchers := map[string]struct {
		fetcher gate.SessionFetcher
		cookie  bool
	}{
		"anonymous": {mockFetcher{err: gorm.ErrRecordNotFound}, false},
		"student":   {studentFetcher(), true},
		"company":   {companyFetcher(), true},
	}

	for name, f := range fetchers {
		for _, path := range publicPaths {
			rec := request(t, f.fetcher, path, f.cookie)
			if rec.Code != http.StatusOK {
				t.Errorf("%s on %s: expected 200, got %d (Location: %s)", name, path, rec.Code, rec.Header().Get("Location"))
			}
		}
	}
}

// TestProtectedPathRedirectsToSignIn verifies an anonymous request to a
// protected path is redirected to /login carrying the original path.
func TestProtectedPathRedirectsToSignIn(t *testing.T) {
	rec := request(t, mockFetcher{err: gorm.ErrRecordNotFound}, "/applications", false)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	want := "/login?redirect=%2Fapplications"
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("expected Location %q, got %q", want, got)
	}
}

// TestSignInPageRedirectsAuthenticated verifies a logged-in caller visiting
// /login is sent to their role's dashboard.
func TestSignInPageRedirectsAuthenticated(t *testing.T) {
	rec := request(t, studentFetcher(), "/login", true)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("student on /login: got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = request(t, companyFetcher(), "/signup", true)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/company/dashboard" {
		t.Errorf("company on /signup: got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

// TestRoleMismatchRedirects verifies companies are pushed off student-only
// paths and students off company-only paths, each to their own dashboard.
func TestRoleMismatchRedirects(t *testing.T) {
	rec := request(t, companyFetcher(), "/applications", true)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/company/dashboard" {
		t.Errorf("company on /applications: got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = request(t, studentFetcher(), "/company/jobs", true)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("student on /company/jobs: got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

// TestMatchingRolePasses verifies each role reaches its own pages.
func TestMatchingRolePasses(t *testing.T) {
	if rec := request(t, studentFetcher(), "/applications", true); rec.Code != http.StatusOK {
		t.Errorf("student on /applications: expected 200, got %d", rec.Code)
	}
	if rec := request(t, companyFetcher(), "/company/jobs", true); rec.Code != http.StatusOK {
		t.Errorf("company on /company/jobs: expected 200, got %d", rec.Code)
	}
}

// TestExpiredSessionTreatedAsAnonymous verifies an expired session redirects
// to sign-in on a protected path instead of passing through.
func TestExpiredSessionTreatedAsAnonymous(t *testing.T) {
	fetcher := mockFetcher{session: utils.SessionData{
		UserID:    "student-1",
		Role:      "student",
		ExpiresAt: time.Now().Add(-time.Minute),
	}}

	rec := request(t, fetcher, "/dashboard", true)
	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
}

// TestLookupFailureFailsOpen verifies an internal session lookup error lets
// the request through rather than blocking the user.
func TestLookupFailureFailsOpen(t *testing.T) {
	fetcher := mockFetcher{err: errors.New("connection refused")}

	rec := request(t, fetcher, "/dashboard", true)
	if rec.Code != http.StatusOK {
		t.Errorf("expected fail-open 200, got %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store, max-age=0" {
		t.Errorf("fail-open response must not be cacheable, got Cache-Control %q", cc)
	}
}

// TestNoCacheHeadersOnEveryResponse verifies both redirects and pass-throughs
// carry cache-disabling headers.
func TestNoCacheHeadersOnEveryResponse(t *testing.T) {
	cases := []struct {
		fetcher gate.SessionFetcher
		path    string
		cookie  bool
	}{
		{mockFetcher{err: gorm.ErrRecordNotFound}, "/jobs", false},
		{mockFetcher{err: gorm.ErrRecordNotFound}, "/dashboard", false},
		{companyFetcher(), "/profile", true},
	}

	for _, c := range cases {
		rec := request(t, c.fetcher, c.path, c.cookie)
		if rec.Header().Get("Cache-Control") != "no-store, max-age=0" {
			t.Errorf("%s: missing no-store Cache-Control", c.path)
		}
		if rec.Header().Get("Pragma") != "no-cache" {
			t.Errorf("%s: missing Pragma no-cache", c.path)
		}
	}
}

// TestParseRole verifies the closed role set.
func TestParseRole(t *testing.T) {
	for _, ok := range []string{"student", "company", "admin"} {
		if _, err := gate.ParseRole(ok); err != nil {
			t.Errorf("ParseRole(%q): unexpected error %v", ok, err)
		}
	}
	if _, err := gate.ParseRole("superuser"); err == nil {
		t.Error("ParseRole(\"superuser\"): expected error")
	}
}

// TestLoadPathsOverride verifies a YAML file replaces the default tables.
func TestLoadPathsOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "paths.yaml")
	content := "public:\n  - /\n  - /open\nstudent_only:\n  - /mine\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp yaml: %v", err)
	}

	table, err := gate.LoadPaths(file)
	if err != nil {
		t.Fatalf("LoadPaths: %v", err)
	}
	if !table.IsPublic("/open/page") {
		t.Error("expected /open/page to be public after override")
	}
	if table.IsPublic("/jobs") {
		t.Error("expected default public list to be replaced")
	}
	if !table.IsStudentOnly("/mine") {
		t.Error("expected /mine to be student-only after override")
	}
	// Lists absent from the file keep their defaults.
	if !table.IsCompanyOnly("/company/jobs") {
		t.Error("expected company_only default to survive partial override")
	}
}
