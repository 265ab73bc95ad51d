package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SendsRequestAndReturnsResponse(t *testing.T) {
	var got GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(GenerateResponse{
			Model:    got.Model,
			Response: "  Just shipped a new feature! 🚀\n",
			Done:     true,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	text, err := c.Generate(context.Background(), "rewrite this")
	require.NoError(t, err)

	// The client returns text untouched; trimming belongs to the caller.
	assert.Equal(t, "  Just shipped a new feature! 🚀\n", text)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, "rewrite this", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.7, got.Options.Temperature)
}

func TestGenerate_Options(t *testing.T) {
	var got GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"ok","done":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithModel("llama3.2:3b"), WithTemperature(0.2), WithHTTPClient(srv.Client()))
	_, err := c.Generate(context.Background(), "p")
	require.NoError(t, err)

	assert.Equal(t, "llama3.2:3b", got.Model)
	assert.Equal(t, 0.2, got.Options.Temperature)
	assert.Equal(t, "llama3.2:3b", c.Model())
	assert.Equal(t, srv.URL, c.BaseURL())
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model 'gemma3:4b' not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404 Not Found")
	assert.Contains(t, err.Error(), "not found")
}

func TestGenerate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama request failed")
}

func TestGenerate_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestGenerate_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"late"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).Generate(ctx, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").BaseURL())
}
