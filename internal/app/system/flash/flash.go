// Package flash queues transient notifications (toasts) on the cookie
// session. Messages stack: adding never replaces an earlier one, and Take
// drains the whole queue so dismissed toasts cannot leak into later pages.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// Kind classifies a notification for styling and auto-dismiss behavior.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Message is one queued toast. ID makes each toast independently
// dismissible in the rendered page.
type Message struct {
	ID    string
	Kind  Kind
	Title string
	Body  string
}

func init() {
	// Cookie sessions serialize values with gob.
	gob.Register(Message{})
}

// New builds a Message with a fresh ID.
func New(kind Kind, title, body string) Message {
	return Message{ID: uuid.NewString(), Kind: kind, Title: title, Body: body}
}

// Add appends msg to the session's flash queue.
func Add(store sessions.Store, name string, w http.ResponseWriter, r *http.Request, msg Message) {
	sess, _ := store.Get(r, name)
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	sess.AddFlash(msg)
	_ = sess.Save(r, w)
}

// Take drains and returns all queued messages in the order they were added.
func Take(store sessions.Store, name string, w http.ResponseWriter, r *http.Request) []Message {
	sess, _ := store.Get(r, name)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	out := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			out = append(out, m)
		}
	}
	return out
}
