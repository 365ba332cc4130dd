package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/authdash/internal/api"
)

func newBackend(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL + "/")
}

func TestLogin(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"login": "b", "password": "p"}, body)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"User logged in successfully","user":{"username":"b","email":"b@x.com"},"access_token":"T2"}`)
	})

	resp, err := client.Login(context.Background(), api.LoginRequest{Login: "b", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "T2", resp.AccessToken)
	assert.Equal(t, "User logged in successfully", resp.Message)
	assert.True(t, resp.HasUser())
	assert.JSONEq(t, `{"username":"b","email":"b@x.com"}`, string(resp.User))
}

func TestRegister(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"username": "c", "email": "c@x.com", "password": "p"}, body)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"user":{"username":"c","email":"c@x.com"},"access_token":"T3"}`)
	})

	resp, err := client.Register(context.Background(), api.RegisterRequest{Username: "c", Email: "c@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "T3", resp.AccessToken)
}

func TestLoginBackendError(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"Invalid password"}`)
	})

	resp, err := client.Login(context.Background(), api.LoginRequest{Login: "b", Password: "nope"})
	require.Error(t, err)
	assert.Nil(t, resp)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid password", apiErr.Message)
	assert.Equal(t, `{"message":"Invalid password"}`, string(apiErr.Body))
	assert.Equal(t, "Invalid password", err.Error())
}

func TestErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"msg field", http.StatusUnauthorized, `{"msg":"Missing Authorization Header"}`, "Missing Authorization Header"},
		{"error field", http.StatusConflict, `{"error":"exists"}`, "exists"},
		{"html page", http.StatusInternalServerError, "<!doctype html><title>500</title><h1>Internal Server Error</h1><p>Oops.</p>", "Internal Server Error: Oops."},
		{"plain text", http.StatusBadGateway, "upstream down\n", "upstream down"},
		{"empty body", http.StatusServiceUnavailable, "", "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			_, err := client.Login(context.Background(), api.LoginRequest{})
			var apiErr *api.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestLogoutSendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"msg":"Access token revoked"}`)
	})

	require.NoError(t, client.Logout(context.Background(), "T3"))
	assert.Equal(t, "Bearer T3", gotAuth)
}

func TestLogoutIgnoresNonJSONSuccess(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "bye")
	})
	assert.NoError(t, client.Logout(context.Background(), "T"))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := api.NewClient(url, api.WithTimeout(time.Second))
	_, err := client.Login(context.Background(), api.LoginRequest{Login: "a", Password: "b"})
	require.Error(t, err)

	var apiErr *api.Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestMalformedSuccessBody(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	})
	_, err := client.Login(context.Background(), api.LoginRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestNewClientDefaults(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:5000", api.NewClient("").BaseURL())
	assert.Equal(t, "https://auth.example.com", api.NewClient("https://auth.example.com/").BaseURL())
}
