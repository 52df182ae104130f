package http

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"Ana"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"42"}`)
	}))
	defer srv.Close()

	client := NewClient(time.Second).WithHeader("Authorization", "Bearer abc")

	var out struct {
		ID string `json:"id"`
	}
	status, err := client.DoJSON(context.Background(), http.MethodPost, srv.URL, map[string]string{"name": "Ana"}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "42", out.ID)
}

func TestDoJSON_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out := map[string]string{"untouched": "yes"}
	status, err := NewClient(time.Second).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, "yes", out["untouched"])
}

func TestDoJSON_StatusError(t *testing.T) {
	tests := []struct {
		status    int
		temporary bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"code":"ERR"}`)
			}))
			defer srv.Close()

			status, err := NewClient(time.Second).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.status, status)

			var statusErr *StatusError
			require.True(t, stderrors.As(err, &statusErr))
			assert.Equal(t, tt.temporary, statusErr.Temporary())
			assert.Contains(t, statusErr.Body, "ERR")
		})
	}
}

func TestWithHeader_DoesNotMutateParent(t *testing.T) {
	parent := NewClient(time.Second)
	child := parent.WithHeader("X-Test", "1")
	assert.Empty(t, parent.headers)
	assert.Equal(t, "1", child.headers["X-Test"])
}
