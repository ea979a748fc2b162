package crud

import (
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
	"github.com/mohandz/mohandz-admin/internal/app/system/flash"
	"github.com/mohandz/mohandz-admin/internal/app/system/htmlsanitize"
	"github.com/mohandz/mohandz-admin/internal/app/system/inputval"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
	"github.com/mohandz/mohandz-admin/internal/app/system/viewdata"
)

// maxUploadBytes bounds in-memory parsing of file-bearing forms.
const maxUploadBytes = 10 << 20

type fieldVM struct {
	Field
	Value string
	Error string
}

type formData struct {
	viewdata.BaseVM

	Key      string
	Singular string
	BasePath string

	IsCreate bool
	ItemID   string
	// Action is the POST target for the form.
	Action string
	Fields []fieldVM
	// HasFile switches the form to multipart encoding.
	HasFile bool

	Error string
}

// ServeNew handles GET /{section}/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireManage(w, r); !ok {
		return
	}
	h.render.Render(w, r, "resource_form", h.buildFormData(w, r, true, "", nil, nil, ""))
}

// HandleCreate handles POST /{section}.
//
// Validation runs before any network call; an invalid form re-renders with
// inline messages and costs no round trip. A valid form sends the full
// field set upstream, then redirects to the list so the new record shows
// with the backend's canonical values.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireManage(w, r); !ok {
		return
	}

	form, upload, closeUpload, err := h.parseForm(r)
	if err != nil {
		h.ErrLog.LogBadRequest(r, h.Desc.Key, err)
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	defer closeUpload()

	if res := h.Desc.validateForm(form, true); res.HasErrors() {
		h.render.Render(w, r, "resource_form", h.buildFormData(w, r, true, "", formValues(h.Desc, form, true), res, ""))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), h.writeTimeout(), h.Log, h.Desc.Key+" create")
	defer cancel()

	api := h.api(r)
	if _, hasFile := h.Desc.fileField(); hasFile {
		_, err = api.CreateMultipart(ctx, h.Desc.Resource, h.Desc.payloadFields(form, true), upload)
	} else {
		_, err = api.Create(ctx, h.Desc.Resource, h.Desc.payloadJSON(form, true))
	}
	if err != nil {
		h.renderFormErr(w, r, true, "", form, err)
		return
	}

	h.Sessions.Flash(w, r, flash.New(flash.Success, h.Desc.Singular+" created", ""))
	http.Redirect(w, r, h.returnTo(r), http.StatusSeeOther)
}

// ServeEdit handles GET /{section}/{id}/edit. The form is prefilled from a
// fresh fetch so edits always start from the backend's current state.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireManage(w, r); !ok {
		return
	}
	id := pathID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, h.Desc.Key+" edit prefill")
	defer cancel()

	item, err := h.api(r).Get(ctx, h.Desc.Resource, id)
	if h.handleUpstreamErr(w, r, err, h.returnTo(r)) {
		return
	}

	h.render.Render(w, r, "resource_form", h.buildFormData(w, r, false, id, h.Desc.itemValues(item), nil, ""))
}

// HandleEdit handles POST /{section}/{id}/edit. Like create, the submission
// carries the full field set; the backend owns merge semantics. An edit
// without a newly chosen file omits the file part so the stored file stays.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireManage(w, r); !ok {
		return
	}
	id := pathID(r)

	form, upload, closeUpload, err := h.parseForm(r)
	if err != nil {
		h.ErrLog.LogBadRequest(r, h.Desc.Key, err)
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	defer closeUpload()

	if res := h.Desc.validateForm(form, false); res.HasErrors() {
		h.render.Render(w, r, "resource_form", h.buildFormData(w, r, false, id, formValues(h.Desc, form, false), res, ""))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), h.writeTimeout(), h.Log, h.Desc.Key+" update")
	defer cancel()

	api := h.api(r)
	if _, hasFile := h.Desc.fileField(); hasFile {
		_, err = api.UpdateMultipart(ctx, h.Desc.Resource, id, h.Desc.payloadFields(form, false), upload)
	} else {
		_, err = api.Update(ctx, h.Desc.Resource, id, h.Desc.payloadJSON(form, false))
	}
	if err != nil {
		h.renderFormErr(w, r, false, id, form, err)
		return
	}

	h.Sessions.Flash(w, r, flash.New(flash.Success, h.Desc.Singular+" updated", ""))
	http.Redirect(w, r, h.returnTo(r), http.StatusSeeOther)
}

type viewFieldVM struct {
	Label  string
	Value  string
	HTML   template.HTML
	IsHTML bool
}

type viewData struct {
	viewdata.BaseVM

	Key      string
	Singular string
	BasePath string

	ItemID  string
	Heading string
	Fields  []viewFieldVM
	CanEdit bool
}

// ServeView handles GET /{section}/{id}/view. Rich-text values are
// sanitized before they reach the template as HTML.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, h.Desc.Key+" view")
	defer cancel()

	item, err := h.api(r).Get(ctx, h.Desc.Resource, id)
	if h.handleUpstreamErr(w, r, err, h.returnTo(r)) {
		return
	}

	vals := h.Desc.itemValues(item)
	fields := make([]viewFieldVM, 0, len(h.Desc.Fields))
	for _, f := range h.Desc.Fields {
		if f.Kind == KindPassword {
			continue
		}
		vm := viewFieldVM{Label: f.Label, Value: vals[f.Name]}
		if f.Kind == KindRichText {
			vm.HTML = htmlsanitize.SanitizeHTML(vals[f.Name])
			vm.IsHTML = true
		}
		fields = append(fields, vm)
	}

	role, _, _, _ := authz.UserCtx(r)
	h.render.Render(w, r, "resource_view", viewData{
		BaseVM:   viewdata.NewBaseVM(w, r, h.Sessions, h.Desc.title(item), h.Desc.BasePath()),
		Key:      h.Desc.Key,
		Singular: h.Desc.Singular,
		BasePath: h.Desc.BasePath(),
		ItemID:   id,
		Heading:  h.Desc.title(item),
		Fields:   fields,
		CanEdit:  authz.CanManage(role, h.Desc.Key),
	})
}

// ServeSingle handles GET /{section} for single-record sections: the
// section root is the edit form for the one record.
func (h *Handler) ServeSingle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, h.Desc.Key+" load")
	defer cancel()

	item, err := h.api(r).GetSingle(ctx, h.Desc.Resource)
	if h.handleUpstreamErr(w, r, err, "/dashboard") {
		return
	}

	h.render.Render(w, r, "resource_form", h.buildFormData(w, r, false, "", h.Desc.itemValues(item), nil, ""))
}

// HandleSingleUpdate handles POST /{section} for single-record sections.
func (h *Handler) HandleSingleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireManage(w, r); !ok {
		return
	}

	form, _, closeUpload, err := h.parseForm(r)
	if err != nil {
		h.ErrLog.LogBadRequest(r, h.Desc.Key, err)
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	defer closeUpload()

	if res := h.Desc.validateForm(form, false); res.HasErrors() {
		h.render.Render(w, r, "resource_form", h.buildFormData(w, r, false, "", formValues(h.Desc, form, false), res, ""))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, h.Desc.Key+" update")
	defer cancel()

	if _, err := h.api(r).UpdateSingle(ctx, h.Desc.Resource, h.Desc.payloadJSON(form, false)); err != nil {
		h.renderFormErr(w, r, false, "", form, err)
		return
	}

	h.Sessions.Flash(w, r, flash.New(flash.Success, h.Desc.Singular+" saved", ""))
	http.Redirect(w, r, h.Desc.BasePath(), http.StatusSeeOther)
}

// helpers

func (h *Handler) buildFormData(w http.ResponseWriter, r *http.Request, isCreate bool, id string, values map[string]string, res *inputval.Result, topErr string) formData {
	base := h.Desc.BasePath()

	action := base
	title := "New " + h.Desc.Singular
	if !isCreate {
		title = "Edit " + h.Desc.Singular
		if h.Desc.SingleRecord {
			action = base
		} else {
			action = base + "/" + id + "/edit"
		}
	}

	errs := map[string]string{}
	if res != nil {
		errs = res.ByField()
	}

	fields := make([]fieldVM, 0, len(h.Desc.Fields))
	for _, f := range h.Desc.formFields(isCreate) {
		fields = append(fields, fieldVM{Field: f, Value: values[f.Name], Error: errs[f.Name]})
	}

	_, hasFile := h.Desc.fileField()
	return formData{
		BaseVM:   viewdata.NewBaseVM(w, r, h.Sessions, title, base),
		Key:      h.Desc.Key,
		Singular: h.Desc.Singular,
		BasePath: base,
		IsCreate: isCreate,
		ItemID:   id,
		Action:   action,
		Fields:   fields,
		HasFile:  hasFile,
		Error:    topErr,
	}
}

// renderFormErr re-renders the form with the submitted values and the
// upstream failure message, unless the failure was a dead token.
func (h *Handler) renderFormErr(w http.ResponseWriter, r *http.Request, isCreate bool, id string, form url.Values, err error) {
	if handled := h.handleAuthOnly(w, r, err); handled {
		return
	}
	h.ErrLog.LogUpstream(r, h.Desc.Key, err)
	h.render.Render(w, r, "resource_form",
		h.buildFormData(w, r, isCreate, id, formValues(h.Desc, form, isCreate), nil, apiclient.UserMessage(err)))
}

// parseForm reads the submission, multipart when the resource carries a
// file field. The returned upload is nil when no new file was chosen;
// closeUpload is always safe to defer.
func (h *Handler) parseForm(r *http.Request) (url.Values, *apiclient.Upload, func(), error) {
	noop := func() {}

	ff, hasFile := h.Desc.fileField()
	if !hasFile {
		if err := r.ParseForm(); err != nil {
			return nil, nil, noop, err
		}
		return r.PostForm, nil, noop, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, noop, err
	}

	form := url.Values(r.MultipartForm.Value)
	var upload *apiclient.Upload
	closer := noop

	if headers := r.MultipartForm.File[ff.Name]; len(headers) > 0 {
		file, err := headers[0].Open()
		if err != nil {
			return nil, nil, noop, err
		}
		upload = &apiclient.Upload{Field: ff.Name, Filename: headers[0].Filename, Content: file}
		closer = func() { _ = file.Close() }
	}

	return form, upload, closer, nil
}

func (h *Handler) writeTimeout() time.Duration {
	if _, hasFile := h.Desc.fileField(); hasFile {
		return timeouts.Long()
	}
	return timeouts.Medium()
}

// returnTo resolves where a completed mutation should land: the caller's
// list view (with its filters) when a safe return address was carried,
// else the section root.
func (h *Handler) returnTo(r *http.Request) string {
	ret := r.URL.Query().Get("return")
	if ret == "" {
		ret = r.PostFormValue("return")
	}
	return urlutil.SafeReturn(ret, "", h.Desc.BasePath())
}

// formValues echoes submitted values back into the form on a failed
// attempt. Passwords are never echoed.
func formValues(d Descriptor, form url.Values, isCreate bool) map[string]string {
	out := make(map[string]string)
	for _, f := range d.formFields(isCreate) {
		if f.Kind == KindPassword || f.Kind == KindFile {
			continue
		}
		out[f.Name] = form.Get(f.Name)
	}
	return out
}

func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
