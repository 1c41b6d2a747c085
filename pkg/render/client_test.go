package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Render(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		assert.Equal(t, "html", r.Header.Get("X-Return-Format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"data":{"url":"https://acme.com/blog","title":"Acme Blog","html":"<html><body>rendered</body></html>"}}`))
	}))
	defer srv.Close()

	c := NewClient("key-123", WithBaseURL(srv.URL))
	resp, err := c.Render(context.Background(), "https://acme.com/blog")
	require.NoError(t, err)
	assert.Equal(t, "Acme Blog", resp.Data.Title)
	assert.Contains(t, resp.Data.HTML, "rendered")
}

func TestClient_Render_HTTPError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL))
	_, err := c.Render(context.Background(), "https://acme.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_Render_EmptyResult(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"html":""}}`))
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL))
	_, err := c.Render(context.Background(), "https://acme.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty result")
}
