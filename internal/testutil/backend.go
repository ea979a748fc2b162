package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Envelope mirrors the backend's response wrapper for scripting responses.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Call is one request the fake backend received.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
}

// Backend is a scriptable stand-in for the Mohandz API. Handlers are keyed
// by "METHOD /path"; unscripted requests fail the test. Every request is
// recorded so tests can assert on call counts.
type Backend struct {
	t      *testing.T
	Server *httptest.Server

	mu     sync.Mutex
	calls  []Call
	routes map[string]http.HandlerFunc
}

// NewBackend starts the fake backend and registers cleanup.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{t: t, routes: make(map[string]http.HandlerFunc)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.dispatch))
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the backend's base URL.
func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) dispatch(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls = append(b.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
	})
	fn := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if fn == nil {
		b.t.Errorf("unscripted backend call: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	fn(w, r)
}

// Handle scripts a raw handler for "METHOD /path".
func (b *Backend) Handle(method, path string, fn http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = fn
}

// HandleJSON scripts a fixed JSON response for "METHOD /path".
func (b *Backend) HandleJSON(method, path string, status int, env Envelope) {
	b.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(env)
	})
}

// Calls returns how many requests matched method and path. Empty method or
// path matches everything.
func (b *Backend) Calls(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if (method == "" || c.Method == method) && (path == "" || c.Path == path) {
			n++
		}
	}
	return n
}

// LastCall returns the most recent request and whether any was made.
func (b *Backend) LastCall() (Call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return Call{}, false
	}
	return b.calls[len(b.calls)-1], true
}

// OKList builds a successful list envelope.
func OKList(items any, total, pages int) Envelope {
	return Envelope{Success: true, Data: items, Pagination: &Pagination{Total: total, Pages: pages}}
}

// OKData builds a successful single-record envelope.
func OKData(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail builds a failure envelope with a user-facing message.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
