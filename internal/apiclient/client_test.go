package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
)

func newClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestDoDecodesEnvelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":"abc","name":"Villa"},"pagination":{"total":1,"pages":1}}`))
	})

	item, err := c.Get(context.Background(), "projects", "abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if item.ID() != "abc" || item.Str("name") != "Villa" {
		t.Errorf("item = %+v", item)
	}
}

func TestDoUnauthorized(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Get(context.Background(), "users", "u-1")
	if !errors.Is(err, apiclient.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestDoNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), "users", "missing")
	if !errors.Is(err, apiclient.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDoBackendRejection(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"message":"Email already registered"}`))
	})

	_, err := c.Create(context.Background(), "users", map[string]any{"email": "dup@example.com"})

	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", apiErr.Status)
	}
	if apiErr.Message != "Email already registered" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestDoSuccessFalseOn200(t *testing.T) {
	// A 2xx with success=false still counts as a rejection.
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"validation failed"}`))
	})

	_, err := c.Create(context.Background(), "users", map[string]any{})

	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "validation failed" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestDoNonJSONErrorBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>proxy error</html>"))
	})

	_, err := c.Get(context.Background(), "users", "u-1")

	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", apiErr.Status)
	}
}

func TestWithTokenSendsBearer(t *testing.T) {
	var gotAuth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	})

	if _, err := c.Get(context.Background(), "users", "u-1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("anonymous call sent Authorization %q", gotAuth)
	}

	bound := c.WithToken("tok-abc")
	if _, err := bound.Get(context.Background(), "users", "u-1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-abc")
	}

	// WithToken binds a copy; the original client stays anonymous.
	if _, err := c.Get(context.Background(), "users", "u-1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("original client sent Authorization %q after WithToken", gotAuth)
	}
}

func TestConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := apiclient.New(srv.URL, time.Second, zap.NewNop())

	_, err := c.Get(context.Background(), "users", "u-1")
	if err == nil {
		t.Fatal("expected an error when the backend is down")
	}
	if errors.Is(err, apiclient.ErrUnauthenticated) || errors.Is(err, apiclient.ErrNotFound) {
		t.Errorf("connectivity failure mapped to a protocol sentinel: %v", err)
	}
	if got := apiclient.UserMessage(err); got != apiclient.ConnectivityMessage {
		t.Errorf("UserMessage() = %q, want the connectivity fallback", got)
	}
}

func TestUserMessage(t *testing.T) {
	withMsg := &apiclient.APIError{Status: 422, Message: "Name is taken"}
	if got := apiclient.UserMessage(withMsg); got != "Name is taken" {
		t.Errorf("UserMessage() = %q", got)
	}

	noMsg := &apiclient.APIError{Status: 500}
	if got := apiclient.UserMessage(noMsg); got != apiclient.GenericMessage {
		t.Errorf("UserMessage() = %q, want the generic message", got)
	}

	if got := apiclient.UserMessage(errors.New("dial tcp: refused")); got != apiclient.ConnectivityMessage {
		t.Errorf("UserMessage() = %q, want the connectivity message", got)
	}
}
