package crud

import (
	"strings"
	"testing"
)

// The record form is a plain POST, so the duplicate-submission guard lives
// in its markup: a second submit must be refused and the submit control
// disabled while the request is in flight.
func TestRecordFormDisablesSubmitWhileSaving(t *testing.T) {
	b, err := FS.ReadFile("templates/resource_form.gohtml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	form := string(b)

	if !strings.Contains(form, "if (this.dataset.busy) return false") {
		t.Error("form does not refuse a repeated submit")
	}
	if !strings.Contains(form, "button[type=submit]').disabled = true") {
		t.Error("form does not disable the submit control on submit")
	}
	if !strings.Contains(form, "this.classList.add('is-busy')") {
		t.Error("form does not flag the busy state for the indicator styles")
	}
}

func TestDeleteModalDisablesConfirmWhileDeleting(t *testing.T) {
	b, err := FS.ReadFile("templates/resource_delete_modal.gohtml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), `hx-disabled-elt="this"`) {
		t.Error("confirm button stays enabled while the delete is in flight")
	}
}
