package testutil

import (
	"net/http"
	"sync"
)

// FakeRenderer captures template renders instead of booting the template
// engine. Handlers under test swap it in via their SetRenderer seam.
type FakeRenderer struct {
	mu sync.Mutex

	// Name and Data hold the most recent render.
	Name string
	Data any

	// Snippets holds every snippet render in order.
	Snippets []string
}

// NewFakeRenderer constructs an empty FakeRenderer.
func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{}
}

func (f *FakeRenderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	f.mu.Lock()
	f.Name = name
	f.Data = data
	f.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (f *FakeRenderer) RenderSnippet(w http.ResponseWriter, name string, data any) {
	f.mu.Lock()
	f.Name = name
	f.Data = data
	f.Snippets = append(f.Snippets, name)
	f.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

// Rendered reports whether the given template was the last rendered.
func (f *FakeRenderer) Rendered(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Name == name
}
