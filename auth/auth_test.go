package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"synapse_server/models"
)

func TestCurrentUserIDWithoutIdentity(t *testing.T) {
	_, err := CurrentUserID(context.Background())
	if !errors.Is(err, models.ErrNotAuthenticated) {
		t.Fatalf("got %v, want ErrNotAuthenticated", err)
	}
}

func TestMiddlewareForwardsUserID(t *testing.T) {
	var got string
	var gotErr error
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = CurrentUserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "user-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotErr != nil {
		t.Fatalf("unexpected error: %v", gotErr)
	}
	if got != "user-42" {
		t.Fatalf("got user id %q, want user-42", got)
	}
}

func TestMiddlewareWithoutHeader(t *testing.T) {
	var gotErr error
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotErr = CurrentUserID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !errors.Is(gotErr, models.ErrNotAuthenticated) {
		t.Fatalf("got %v, want ErrNotAuthenticated", gotErr)
	}
}
