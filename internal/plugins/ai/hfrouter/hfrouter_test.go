package hfrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexify/regexify/internal/plugins/ai"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"chat completion", `{"choices":[{"message":{"content":"  Name|||.*|||X \n"}}]}`, "Name|||.*|||X", false},
		{"generated text object", `{"generated_text":"Email|||@|||H"}`, "Email|||@|||H", false},
		{"generated text array", `[{"generated_text":"ID|||\\d+|||N"}]`, `ID|||\d+|||N`, false},
		{"empty choices", `{"choices":[]}`, "", true},
		{"missing content", `{"choices":[{"message":{}}]}`, "", true},
		{"unknown object", `{"error":"busy"}`, "", true},
		{"not json", `<html>`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnexpectedShape))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-model", payload["model"])
		assert.InDelta(t, 0.1, payload["temperature"], 1e-9)
		assert.EqualValues(t, 200, payload["max_tokens"])

		msgs := payload["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
		assert.Equal(t, "mask it", msgs[1].(map[string]any)["content"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"choices":[{"message":{"content":"Name|||.*|||RHOMBUS"}}]}`)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret", ai.Options{Model: "test-model", Temperature: 0.1, MaxTokens: 200}, time.Second)
	got, err := client.Generate(context.Background(), "format", "mask it")
	require.NoError(t, err)
	assert.Equal(t, "Name|||.*|||RHOMBUS", got)
}

func TestGenerateNonOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, strings.Repeat("x", 300))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "bad", ai.Options{}, time.Second)
	_, err := client.Generate(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "(truncated)")
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	client := NewClient(ts.URL, "", ai.Options{}, 50*time.Millisecond)
	_, err := client.Generate(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", "", ai.Options{}, 0)
	assert.Equal(t, DefaultURL, client.URL)
	assert.Equal(t, defaultTimeout, client.HttpClient.Timeout)
}
