package translate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/horoscope/pkg/translate"
)

type fakeProvider struct {
	calls   atomic.Int32
	handler http.HandlerFunc
}

func newClient(t *testing.T, fp *fakeProvider) *translate.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp.calls.Add(1)
		fp.handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return translate.New(translate.Config{
		APIKey: "test-key",
		Host:   "translate.example.com",
		Path:   "/api/v1/translator/json",
	}, translate.WithBaseURL(srv.URL), translate.WithHTTPClient(srv.Client()))
}

func TestClient_Translate(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{handler: func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/translator/json", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		require.Equal(t, "translate.example.com", r.Header.Get("x-rapidapi-host"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]string{
			"q":      "Great day ahead",
			"source": "en",
			"target": "ro",
		}, body)

		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"O zi mare te asteapta"}]}}`))
	}}
	client := newClient(t, fp)

	out, err := client.Translate(context.Background(), "Great day ahead", "ro")
	require.NoError(t, err)
	require.Equal(t, "O zi mare te asteapta", out)
	require.Equal(t, int32(1), fp.calls.Load())
}

func TestClient_Translate_SameLanguageSkipsProvider(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{handler: func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}}
	client := newClient(t, fp)

	for _, target := range []string{"en", "en-US", "EN-gb"} {
		out, err := client.Translate(context.Background(), "Good fortune today", target)
		require.NoError(t, err)
		require.Equal(t, "Good fortune today", out)
	}

	out, err := client.Translate(context.Background(), "", "ro")
	require.NoError(t, err)
	require.Empty(t, out)

	require.Zero(t, fp.calls.Load())
}

func TestClient_Translate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "non-2xx", status: http.StatusForbidden, body: `{"message":"not subscribed"}`},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
		{name: "no translations", status: http.StatusOK, body: `{"data":{"translations":[]}}`},
		{name: "unexpected shape", status: http.StatusOK, body: `{"trans":"O zi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newClient(t, &fakeProvider{handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}})

			out, err := client.Translate(context.Background(), "hello", "ro")
			require.ErrorIs(t, err, translate.ErrTranslateFailed)
			require.Empty(t, out)
		})
	}
}

func TestClient_Translate_InvalidTarget(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{handler: func(http.ResponseWriter, *http.Request) {}}
	client := newClient(t, fp)

	_, err := client.Translate(context.Background(), "hello", "not a language!")
	require.ErrorIs(t, err, translate.ErrTranslateFailed)
	require.ErrorIs(t, err, translate.ErrInvalidLanguage)
	require.Zero(t, fp.calls.Load())
}

func TestClient_Translate_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := translate.New(translate.Config{APIKey: "k", Host: "h"}, translate.WithBaseURL(base))
	_, err := client.Translate(context.Background(), "hello", "ro")
	require.ErrorIs(t, err, translate.ErrTranslateFailed)
}

func TestSameLanguage(t *testing.T) {
	t.Parallel()

	same, err := translate.SameLanguage("en", "en-US")
	require.NoError(t, err)
	require.True(t, same)

	same, err = translate.SameLanguage("en", "ro")
	require.NoError(t, err)
	require.False(t, same)

	base, err := translate.BaseLanguage("ro-RO")
	require.NoError(t, err)
	require.Equal(t, "ro", base)
}
