package logout_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/app/features/logout"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
	"github.com/mohandz/mohandz-admin/internal/testutil"
)

func newTestHandler(t *testing.T) *logout.Handler {
	t.Helper()
	logger := zap.NewNop()
	sessions, err := session.NewManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return logout.NewHandler(sessions, logger)
}

func TestHandleLogout(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleLogout(rec.ResponseRecorder, testutil.NewRequest("POST", "/logout"))

	rec.AssertRedirect(t, "/")

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected a deletion cookie")
	}
}

func TestHandleLogoutHTMX(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewRequest("POST", "/logout")
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()

	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect = %q, want /", got)
	}
}

func TestHandleLogoutIsIdempotent(t *testing.T) {
	h := newTestHandler(t)

	// Logging out without a session still lands on the home page.
	rec := testutil.NewRecorder()
	h.HandleLogout(rec.ResponseRecorder, testutil.NewRequest("POST", "/logout"))
	rec.AssertRedirect(t, "/")
}
