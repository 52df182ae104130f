package zoho

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebuyer-prequal/internal/common/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CRMClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCRMClient(config.ZohoConfig{
		BaseURL:    srv.URL + "/",
		AuthToken:  "tok",
		LeadSource: "Pre-Qualification Form",
	})
}

func TestCreateLead(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Leads", r.URL.Path)
		assert.Equal(t, "Zoho-oauthtoken tok", r.Header.Get("Authorization"))

		var payload struct {
			Data []Lead `json:"data"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) && assert.Len(t, payload.Data, 1) {
			assert.Equal(t, "Lopez", payload.Data[0].LastName)
			assert.Equal(t, "Pre-Qualification Form", payload.Data[0].LeadSource)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":[{"code":"SUCCESS","details":{"id":"5550001"},"message":"record added","status":"success"}]}`)
	})

	id, err := client.CreateLead(context.Background(), &Lead{FirstName: "Ana", LastName: "Lopez"})
	require.NoError(t, err)
	assert.Equal(t, "5550001", id)
}

func TestCreateLead_RecordRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"code":"MANDATORY_NOT_FOUND","details":{},"message":"required field not found","status":"error"}]}`)
	})

	_, err := client.CreateLead(context.Background(), &Lead{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MANDATORY_NOT_FOUND")
}

func TestCreateLead_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.CreateLead(context.Background(), &Lead{LastName: "x"})
	require.Error(t, err)
	assert.True(t, IsTemporary(err))
}

func TestSearchLeadsByEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Leads/search", r.URL.Path)
		if r.URL.Query().Get("email") == "ana+home@example.com" {
			_, _ = io.WriteString(w, `{"data":[{"id":"1","Last_Name":"Lopez","Email":"ana+home@example.com"}]}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	leads, err := client.SearchLeadsByEmail(context.Background(), "ana+home@example.com")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "1", leads[0].ID)

	leads, err = client.SearchLeadsByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestGetLead_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := client.GetLead(context.Background(), "missing")
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, IsTemporary(err))
}

func TestIsTemporary_ClientError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.CreateLead(context.Background(), &Lead{LastName: "x"})
	require.Error(t, err)
	assert.False(t, IsTemporary(err))
}

func TestNewCRMClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewCRMClient(config.ZohoConfig{}).baseURL)
}
