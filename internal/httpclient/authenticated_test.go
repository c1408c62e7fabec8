package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promokit/voucheradmin/internal/credentials"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/logger"
)

func newAuthClient(t *testing.T, creds credentials.Provider) Client {
	t.Helper()
	return NewAuthenticatedClient(NewDefaultClient(DefaultTimeout), creds, logger.NewNopLogger())
}

func TestAuthenticatedClientAttachesHeaders(t *testing.T) {
	var gotAuth, gotUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUser = r.Header.Get("X-Username")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.SetToken("tok-123"))
	require.NoError(t, creds.SetUsername("alice"))

	client := newAuthClient(t, creds)
	resp, err := client.Send(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "alice", gotUser)
}

func TestAuthenticatedClientSkipsEmptyToken(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newAuthClient(t, credentials.NewMemoryStore())
	_, err := client.Send(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestAuthenticatedClientClearsTokenOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(ierr.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "token expired",
			TraceID: "trace-1",
		})
	}))
	defer server.Close()

	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.SetToken("tok-123"))

	client := newAuthClient(t, creds)
	_, err := client.Send(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})

	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
	assert.Empty(t, creds.Token(), "401 must clear the stored token")

	// the server message surfaces as the display hint
	assert.Contains(t, errors.GetAllHints(err), "token expired")
}

func TestAuthenticatedClientStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "not found", status: http.StatusNotFound, check: ierr.IsNotFound},
		{name: "conflict", status: http.StatusConflict, check: ierr.IsAlreadyExists},
		{name: "bad request", status: http.StatusBadRequest, check: ierr.IsValidation},
		{name: "forbidden", status: http.StatusForbidden, check: ierr.IsPermissionDenied},
		{name: "server error", status: http.StatusInternalServerError, check: ierr.IsHTTPClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newAuthClient(t, credentials.NewMemoryStore())
			_, err := client.Send(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})

			require.Error(t, err)
			assert.True(t, tt.check(err), "status %d mapped wrong: %v", tt.status, err)
		})
	}
}

func TestAuthenticatedClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newAuthClient(t, credentials.NewMemoryStore())
	_, err := client.Send(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})

	require.Error(t, err)
	assert.True(t, ierr.IsNetwork(err))
}

func TestDefaultClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewDefaultClient(50 * time.Millisecond)
	_, err := client.Send(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})

	require.Error(t, err)
	assert.True(t, ierr.IsNetwork(err))
}
