package crud

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	uierrors "github.com/mohandz/mohandz-admin/internal/app/features/errors"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
	"github.com/mohandz/mohandz-admin/internal/testutil"
)

// entriesDescriptor is a plain-JSON resource (no file field) so create and
// edit submissions stay url-encoded in tests.
func entriesDescriptor() Descriptor {
	return Descriptor{
		Key:        "content",
		Resource:   "content",
		Singular:   "entry",
		Plural:     "entries",
		TitleField: "title",
		StatusOptions: []Option{
			{Value: "draft", Label: "Draft"},
			{Value: "published", Label: "Published"},
		},
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "slug", Label: "Slug", Kind: KindText, Required: true},
			{Name: "status", Label: "Status", Kind: KindSelect, Options: []Option{
				{Value: "draft", Label: "Draft"},
				{Value: "published", Label: "Published"},
			}},
		},
		Columns: []Column{
			{Label: "Title", Field: "title"},
			{Label: "Status", Field: "status", Badge: true},
		},
	}
}

func accountsDescriptor() Descriptor {
	d := entriesDescriptor()
	d.Key = "users"
	d.Resource = "users"
	d.Singular = "user"
	d.Plural = "users"
	return d
}

func newTestHandler(t *testing.T, desc Descriptor) (*Handler, *testutil.Backend, *testutil.FakeRenderer) {
	t.Helper()
	logger := zap.NewNop()

	backend := testutil.NewBackend(t)
	api := apiclient.New(backend.URL(), 5*time.Second, logger)

	sessions, err := session.NewManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	h := NewHandler(desc, api, sessions, uierrors.NewErrorLogger(logger), logger)
	fake := testutil.NewFakeRenderer()
	h.SetRenderer(fake)
	return h, backend, fake
}

func postForm(target string, form url.Values, user testutil.TestUser) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.WithUser(req, user)
}

func TestServeListRendersRows(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("GET", "/api/admin/content", http.StatusOK, testutil.OKList(
		[]map[string]any{
			{"id": "c1", "title": "About us", "status": "published"},
			{"id": "c2", "title": "FAQ", "status": "draft"},
		}, 23, 3))

	req := testutil.NewAuthenticatedRequest("GET", "/content?page=2&status=published", testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.ServeList(rec.ResponseRecorder, req)

	if !fake.Rendered("resource_list") {
		t.Fatalf("rendered %q, want resource_list", fake.Name)
	}
	data, ok := fake.Data.(listData)
	if !ok {
		t.Fatalf("data is %T", fake.Data)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(data.Rows))
	}
	if data.Rows[0].ViewURL != "/content/c1/view" {
		t.Errorf("ViewURL = %q", data.Rows[0].ViewURL)
	}
	if !data.Rows[0].CanEdit || !data.Rows[0].CanDelete {
		t.Error("admin should see edit and delete actions")
	}
	if data.Pages.Page != 2 || data.Pages.TotalPages != 3 {
		t.Errorf("pages = %+v", data.Pages)
	}
	if data.Range.Start != 11 || data.Range.End != 12 || data.Range.Total != 23 {
		t.Errorf("range = %+v", data.Range)
	}
	if data.ListURL != "/content?page=2&status=published" {
		t.Errorf("ListURL = %q", data.ListURL)
	}
	if data.ColSpan != len(data.Columns)+1 {
		t.Errorf("ColSpan = %d, want %d to cover the actions cell", data.ColSpan, len(data.Columns)+1)
	}
	if !data.CanCreate {
		t.Error("admin should be offered create")
	}

	if call, ok := backend.LastCall(); !ok || !strings.Contains(call.Query, "status=published") {
		t.Errorf("backend call = %+v, want the status filter forwarded", call)
	}
}

func TestServeListViewerHasNoActions(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("GET", "/api/admin/content", http.StatusOK, testutil.OKList(
		[]map[string]any{{"id": "c1", "title": "About us"}}, 1, 1))

	req := testutil.NewAuthenticatedRequest("GET", "/content", testutil.ViewerUser())
	rec := testutil.NewRecorder()

	h.ServeList(rec.ResponseRecorder, req)

	data := fake.Data.(listData)
	if data.CanCreate {
		t.Error("viewer must not see create")
	}
	if data.Rows[0].CanEdit || data.Rows[0].CanDelete {
		t.Error("viewer must not see row actions")
	}
}

func TestServeListHTMXRendersRowsOnly(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("GET", "/api/admin/content", http.StatusOK, testutil.OKList(
		[]map[string]any{{"id": "c1", "title": "About us"}}, 1, 1))

	req := testutil.NewAuthenticatedRequest("GET", "/content", testutil.AdminUser())
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()

	h.ServeList(rec.ResponseRecorder, req)

	if !fake.Rendered("resource_rows") {
		t.Errorf("rendered %q, want the rows snippet", fake.Name)
	}
}

func TestServeListFailureHTMXTargetsErrorSlot(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("GET", "/api/admin/content", http.StatusInternalServerError, testutil.Fail("backend exploded"))

	req := testutil.NewAuthenticatedRequest("GET", "/content", testutil.AdminUser())
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()

	h.ServeList(rec.ResponseRecorder, req)

	// The failed refresh must not touch the table region: the response is
	// retargeted at the error slot and the rows on screen stay as they are.
	if got := rec.Header().Get("HX-Retarget"); got != "#list-error" {
		t.Errorf("HX-Retarget = %q, want #list-error", got)
	}
	if !fake.Rendered("resource_list_error") {
		t.Fatalf("rendered %q, want resource_list_error", fake.Name)
	}
	if data := fake.Data.(listErrorData); data.Message != "backend exploded" {
		t.Errorf("message = %q", data.Message)
	}
}

func TestServeListFailureFullPage(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("GET", "/api/admin/content", http.StatusInternalServerError, testutil.Fail("backend exploded"))

	req := testutil.NewAuthenticatedRequest("GET", "/content", testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.ServeList(rec.ResponseRecorder, req)

	if !fake.Rendered("resource_list") {
		t.Fatalf("rendered %q, want the full page", fake.Name)
	}
	data := fake.Data.(listData)
	if data.Error != "backend exploded" {
		t.Errorf("Error = %q", data.Error)
	}
	if len(data.Rows) != 0 {
		t.Errorf("rows = %d, want none on failure", len(data.Rows))
	}
}

func TestServeListDeadTokenForcesLogin(t *testing.T) {
	h, backend, _ := newTestHandler(t, entriesDescriptor())

	backend.Handle("GET", "/api/admin/content", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	req := testutil.NewAuthenticatedRequest("GET", "/content?page=2", testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.ServeList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("Location = %q, want a login redirect", loc)
	}
}

func TestHandleCreateValidationBlocksNetwork(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	form := url.Values{"title": {""}, "slug": {""}}
	req := postForm("/content", form, testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.HandleCreate(rec.ResponseRecorder, req)

	if got := backend.Calls("", ""); got != 0 {
		t.Errorf("backend calls = %d, want 0 for an invalid form", got)
	}
	if !fake.Rendered("resource_form") {
		t.Fatalf("rendered %q, want the form again", fake.Name)
	}
	data := fake.Data.(formData)
	if !data.IsCreate {
		t.Error("re-render should stay in create mode")
	}
	var titleErr string
	for _, f := range data.Fields {
		if f.Name == "title" {
			titleErr = f.Error
		}
	}
	if titleErr == "" {
		t.Error("expected an inline message on the title field")
	}
}

func TestHandleCreateSuccess(t *testing.T) {
	h, backend, _ := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("POST", "/api/admin/content", http.StatusOK, testutil.OKData(map[string]any{"id": "c9"}))

	form := url.Values{"title": {"New page"}, "slug": {"new-page"}, "status": {"draft"}}
	req := postForm("/content", form, testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.HandleCreate(rec.ResponseRecorder, req)

	if got := backend.Calls("POST", "/api/admin/content"); got != 1 {
		t.Errorf("POST calls = %d, want exactly 1", got)
	}
	rec.AssertRedirect(t, "/content")
}

func TestHandleCreateUpstreamRejectionRerendersForm(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("POST", "/api/admin/content", http.StatusUnprocessableEntity, testutil.Fail("Slug already in use"))

	form := url.Values{"title": {"New page"}, "slug": {"new-page"}, "status": {"draft"}}
	req := postForm("/content", form, testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.HandleCreate(rec.ResponseRecorder, req)

	if !fake.Rendered("resource_form") {
		t.Fatalf("rendered %q, want the form again", fake.Name)
	}
	data := fake.Data.(formData)
	if data.Error != "Slug already in use" {
		t.Errorf("Error = %q, want the backend message", data.Error)
	}
	var titleVal string
	for _, f := range data.Fields {
		if f.Name == "title" {
			titleVal = f.Value
		}
	}
	if titleVal != "New page" {
		t.Errorf("title value = %q, want the submission echoed back", titleVal)
	}
}

func TestServeEditPrefillsFromBackend(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("GET", "/api/admin/content/c1", http.StatusOK, testutil.OKData(
		map[string]any{"id": "c1", "title": "About us", "slug": "about", "status": "published"}))

	req := testutil.NewAuthenticatedRequest("GET", "/content/c1/edit", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "c1")
	rec := testutil.NewRecorder()

	h.ServeEdit(rec.ResponseRecorder, req)

	if !fake.Rendered("resource_form") {
		t.Fatalf("rendered %q", fake.Name)
	}
	data := fake.Data.(formData)
	if data.IsCreate {
		t.Error("edit form should not be in create mode")
	}
	if data.Action != "/content/c1/edit" {
		t.Errorf("Action = %q", data.Action)
	}
	var slugVal string
	for _, f := range data.Fields {
		if f.Name == "slug" {
			slugVal = f.Value
		}
	}
	if slugVal != "about" {
		t.Errorf("slug value = %q, want the fetched record value", slugVal)
	}
}

func TestHandleEditSuccess(t *testing.T) {
	h, backend, _ := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("PUT", "/api/admin/content/c1", http.StatusOK, testutil.OKData(map[string]any{"id": "c1"}))

	form := url.Values{"title": {"About"}, "slug": {"about"}, "status": {"published"}}
	req := postForm("/content/c1/edit", form, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "c1")
	rec := testutil.NewRecorder()

	h.HandleEdit(rec.ResponseRecorder, req)

	if got := backend.Calls("PUT", "/api/admin/content/c1"); got != 1 {
		t.Errorf("PUT calls = %d, want exactly 1", got)
	}
	rec.AssertRedirect(t, "/content")
}

func TestServeDeleteModalFetchesNothing(t *testing.T) {
	h, backend, fake := newTestHandler(t, entriesDescriptor())

	req := testutil.NewAuthenticatedRequest("GET", "/content/c1/delete_modal?name=About+us", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "c1")
	rec := testutil.NewRecorder()

	h.ServeDeleteModal(rec.ResponseRecorder, req)

	if got := backend.Calls("", ""); got != 0 {
		t.Errorf("backend calls = %d, the confirmation must not fetch", got)
	}
	if !fake.Rendered("resource_delete_modal") {
		t.Fatalf("rendered %q", fake.Name)
	}
	data := fake.Data.(deleteModalData)
	if data.Name != "About us" {
		t.Errorf("Name = %q", data.Name)
	}
	if data.Action != "/content/c1/delete" {
		t.Errorf("Action = %q", data.Action)
	}
}

func TestHandleDeleteIssuesExactlyOneDelete(t *testing.T) {
	h, backend, _ := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("DELETE", "/api/admin/content/c1", http.StatusOK, testutil.OKData(nil))

	req := testutil.NewAuthenticatedRequest("POST", "/content/c1/delete", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "c1")
	rec := testutil.NewRecorder()

	h.HandleDelete(rec.ResponseRecorder, req)

	if got := backend.Calls("DELETE", "/api/admin/content/c1"); got != 1 {
		t.Errorf("DELETE calls = %d, want exactly 1", got)
	}
	rec.AssertRedirect(t, "/content")
}

func TestHandleDeleteHTMXRedirectsViaHeader(t *testing.T) {
	h, backend, _ := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("DELETE", "/api/admin/content/c1", http.StatusOK, testutil.OKData(nil))

	req := testutil.NewAuthenticatedRequest("POST", "/content/c1/delete", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "c1")
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()

	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := rec.Header().Get("HX-Redirect"); got != "/content" {
		t.Errorf("HX-Redirect = %q", got)
	}
}

func TestHandleDeleteFailureRedirectsBack(t *testing.T) {
	h, backend, _ := newTestHandler(t, entriesDescriptor())

	backend.HandleJSON("DELETE", "/api/admin/content/c1", http.StatusInternalServerError, testutil.Fail("cannot delete"))

	req := testutil.NewAuthenticatedRequest("POST", "/content/c1/delete", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "c1")
	rec := testutil.NewRecorder()

	h.HandleDelete(rec.ResponseRecorder, req)

	if got := backend.Calls("DELETE", "/api/admin/content/c1"); got != 1 {
		t.Errorf("DELETE calls = %d, want exactly 1", got)
	}
	rec.AssertRedirect(t, "/content")
}

func TestHandleDeleteBlocksSelfDelete(t *testing.T) {
	h, backend, _ := newTestHandler(t, accountsDescriptor())

	admin := testutil.AdminUser()
	req := testutil.NewAuthenticatedRequest("POST", "/users/"+admin.ID+"/delete", admin)
	req = testutil.WithChiURLParam(req, "id", admin.ID)
	rec := testutil.NewRecorder()

	// The forbidden page renders through the real template engine, which is
	// not booted in tests; the capability check fires before any rendering.
	func() {
		defer func() { recover() }()
		h.HandleDelete(rec.ResponseRecorder, req)
	}()

	if got := backend.Calls("DELETE", ""); got != 0 {
		t.Errorf("DELETE calls = %d, self-delete must never reach the backend", got)
	}
}

func TestMutationsRequireManageRole(t *testing.T) {
	h, backend, _ := newTestHandler(t, entriesDescriptor())

	req := postForm("/content", url.Values{"title": {"x"}, "slug": {"x"}}, testutil.ViewerUser())
	rec := testutil.NewRecorder()

	func() {
		defer func() { recover() }()
		h.HandleCreate(rec.ResponseRecorder, req)
	}()

	if got := backend.Calls("", ""); got != 0 {
		t.Errorf("backend calls = %d, viewer mutations must be rejected locally", got)
	}
}
