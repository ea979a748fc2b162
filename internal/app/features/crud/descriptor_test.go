package crud

import (
	"net/url"
	"testing"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	"github.com/mohandz/mohandz-admin/internal/app/system/inputval"
)

func catalogDescriptor() Descriptor {
	return Descriptor{
		Key:        "services",
		Resource:   "services",
		Singular:   "service",
		Plural:     "services",
		TitleField: "title",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "email", Label: "Contact email", Kind: KindEmail},
			{Name: "price", Label: "Price", Kind: KindNumber, Required: true},
			{Name: "category", Label: "Category", Kind: KindSelect, Options: []Option{
				{Value: "design", Label: "Design"},
				{Value: "consulting", Label: "Consulting"},
			}},
			{Name: "features", Label: "Features", Kind: KindStringList},
			{Name: "secret", Label: "Secret", Kind: KindPassword, Required: true, CreateOnly: true},
			{Name: "image", Label: "Image", Kind: KindFile},
		},
	}
}

func TestFormFieldsDropCreateOnlyOnEdit(t *testing.T) {
	d := catalogDescriptor()

	create := d.formFields(true)
	edit := d.formFields(false)

	if len(create) != len(d.Fields) {
		t.Errorf("create fields = %d, want %d", len(create), len(d.Fields))
	}
	for _, f := range edit {
		if f.Name == "secret" {
			t.Error("edit form should not carry create-only fields")
		}
	}
}

func TestFileField(t *testing.T) {
	d := catalogDescriptor()
	ff, ok := d.fileField()
	if !ok || ff.Name != "image" {
		t.Errorf("fileField() = %+v, %v", ff, ok)
	}

	d.Fields = d.Fields[:1]
	if _, ok := d.fileField(); ok {
		t.Error("fileField() = true for a descriptor without one")
	}
}

func TestValidateForm(t *testing.T) {
	d := catalogDescriptor()

	t.Run("missing required fields", func(t *testing.T) {
		res := d.validateForm(url.Values{}, true)
		if !res.HasErrors() {
			t.Fatal("expected errors for empty form")
		}
		for _, field := range []string{"title", "price", "secret"} {
			if res.Message(field) == "" {
				t.Errorf("expected a message for %q", field)
			}
		}
	})

	t.Run("kind checks", func(t *testing.T) {
		form := url.Values{
			"title":    {"Structural review"},
			"email":    {"not-an-email"},
			"price":    {"-5"},
			"category": {"bogus"},
			"secret":   {"x"},
		}
		res := d.validateForm(form, true)
		if res.Message("email") == "" {
			t.Error("expected an email message")
		}
		if res.Message("price") == "" {
			t.Error("expected a price message")
		}
		if res.Message("category") == "" {
			t.Error("expected a select-membership message")
		}
	})

	t.Run("valid create", func(t *testing.T) {
		form := url.Values{
			"title":    {"Structural review"},
			"email":    {"eng@example.com"},
			"price":    {"1500"},
			"category": {"design"},
			"secret":   {"hunter22"},
		}
		res := d.validateForm(form, true)
		if res.HasErrors() {
			t.Errorf("unexpected errors: %v", res.ByField())
		}
	})

	t.Run("edit skips create-only requirements", func(t *testing.T) {
		form := url.Values{
			"title": {"Structural review"},
			"price": {"1500"},
		}
		res := d.validateForm(form, false)
		if res.Message("secret") != "" {
			t.Error("edit validation should skip create-only fields")
		}
	})
}

func TestValidateHook(t *testing.T) {
	d := catalogDescriptor()
	called := false
	d.Validate = func(res *inputval.Result, form url.Values, isCreate bool) {
		called = true
		res.Add("title", "custom rule")
	}

	form := url.Values{
		"title":  {"ok"},
		"price":  {"1"},
		"secret": {"hunter22"},
	}
	res := d.validateForm(form, true)
	if !called {
		t.Fatal("Validate hook was not invoked")
	}
	if res.Message("title") != "custom rule" {
		t.Errorf("hook message = %q", res.Message("title"))
	}
}

func TestPayloadJSON(t *testing.T) {
	d := catalogDescriptor()
	form := url.Values{
		"title":    {"  Site supervision  "},
		"price":    {"99.5"},
		"category": {"consulting"},
		"features": {"one\r\ntwo\n\n  three  \n"},
	}

	got := d.payloadJSON(form, false)

	if got["title"] != "Site supervision" {
		t.Errorf("title = %v, want trimmed value", got["title"])
	}
	if got["price"] != 99.5 {
		t.Errorf("price = %v (%T), want a number", got["price"], got["price"])
	}
	features, ok := got["features"].([]string)
	if !ok || len(features) != 3 || features[2] != "three" {
		t.Errorf("features = %v", got["features"])
	}
	if _, present := got["image"]; present {
		t.Error("file fields must not appear in the JSON payload")
	}
}

func TestPayloadFields(t *testing.T) {
	d := catalogDescriptor()
	form := url.Values{
		"title":    {"Supervision"},
		"price":    {"10"},
		"features": {"a\nb"},
	}

	got := d.payloadFields(form, false)

	if v := got["features"]; len(v) != 2 || v[0] != "a" || v[1] != "b" {
		t.Errorf("features = %v, want one entry per line", v)
	}
	if v := got["title"]; len(v) != 1 || v[0] != "Supervision" {
		t.Errorf("title = %v", v)
	}
	if _, present := got["image"]; present {
		t.Error("file fields must not appear in the form field set")
	}
}

func TestItemValues(t *testing.T) {
	d := catalogDescriptor()
	item := apiclient.Item{
		"title":    "Bridge assessment",
		"price":    float64(2500),
		"features": []any{"load testing", "reporting"},
	}

	got := d.itemValues(item)

	if got["title"] != "Bridge assessment" {
		t.Errorf("title = %q", got["title"])
	}
	if got["price"] != "2500" {
		t.Errorf("price = %q", got["price"])
	}
	if got["features"] != "load testing\nreporting" {
		t.Errorf("features = %q, want newline-joined", got["features"])
	}
}

func TestTitle(t *testing.T) {
	d := catalogDescriptor()

	if got := d.title(apiclient.Item{"title": "Tower design"}); got != "Tower design" {
		t.Errorf("title() = %q", got)
	}
	if got := d.title(apiclient.Item{}); got != "service" {
		t.Errorf("title() fallback = %q, want the singular name", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("first\r\nsecond\n\n  third  \n")
	if len(got) != 3 || got[0] != "first" || got[2] != "third" {
		t.Errorf("splitLines() = %v", got)
	}
	if splitLines("") != nil {
		t.Error("splitLines(\"\") should be nil")
	}
}
