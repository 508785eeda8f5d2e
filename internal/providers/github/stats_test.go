package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers"
	"github.com/stretchr/testify/require"
)

const testProfile = `{"login":"octo","avatar_url":"https://example.com/a.png","name":"Octo","bio":null,"public_repos":2,"followers":10,"following":3}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(config.GitHubConfig{APIBaseURL: srv.URL, Username: "octo"}, 5*time.Second)
	return c, srv
}

func TestStats_Aggregation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testProfile))
	})
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"name":"one","description":null,"html_url":"https://example.com/1","language":"Go","stargazers_count":7,"forks_count":2,"owner":{"login":"octo"}},
			{"id":2,"name":"two","description":"x","html_url":"https://example.com/2","language":null,"stargazers_count":0,"forks_count":0,"owner":{"login":"octo"}}
		]`))
	})
	mux.HandleFunc("/repos/octo/one/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"TypeScript":100,"Go":50}`))
	})
	mux.HandleFunc("/repos/octo/two/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"TypeScript":100}`))
	})

	c, _ := newTestClient(t, mux)
	st, err := c.Stats(context.Background())
	require.NoError(t, err)

	// exact sums, zero-star repos contribute 0 rather than being dropped
	require.Equal(t, 7, st.TotalStars)
	require.Equal(t, 2, st.TotalForks)
	require.Len(t, st.Repos, 2)

	// {TypeScript:100} + {TypeScript:100} merges to 200
	require.Equal(t, int64(200), st.Languages["TypeScript"])
	require.Equal(t, int64(50), st.Languages["Go"])
}

func TestStats_EmptyRepoList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testProfile))
	})
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	c, _ := newTestClient(t, mux)
	st, err := c.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, st.TotalStars)
	require.Equal(t, 0, st.TotalForks)
	require.Empty(t, st.Languages)
}

// One repository's language fetch failing must not abort the aggregation.
func TestStats_LanguageFetchFaultIsolation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testProfile))
	})
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"name":"good","html_url":"https://example.com/1","stargazers_count":3,"forks_count":1,"owner":{"login":"octo"}},
			{"id":2,"name":"bad","html_url":"https://example.com/2","stargazers_count":4,"forks_count":1,"owner":{"login":"octo"}}
		]`))
	})
	mux.HandleFunc("/repos/octo/good/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Rust":42}`))
	})
	mux.HandleFunc("/repos/octo/bad/languages", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c, _ := newTestClient(t, mux)
	st, err := c.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, st.TotalStars)
	require.Equal(t, map[string]int64{"Rust": 42}, st.Languages)
}

func TestUser_SchemaMismatchIsDistinctError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"login":123}`))
	})
	c, _ := newTestClient(t, mux)
	_, err := c.User(context.Background())
	require.Error(t, err)
	require.True(t, providers.IsSchemaError(err), "expected schema error, got %v", err)

	var ue *providers.UpstreamError
	require.False(t, errors.As(err, &ue), "schema mismatch must not be an upstream error")
}

func TestUser_UpstreamFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})
	c, _ := newTestClient(t, mux)
	_, err := c.User(context.Background())
	var ue *providers.UpstreamError
	require.True(t, errors.As(err, &ue))
	require.Equal(t, http.StatusForbidden, ue.Status)
}

func TestStats_NotConfigured(t *testing.T) {
	c := NewClient(config.GitHubConfig{APIBaseURL: "http://unused"}, time.Second)
	_, err := c.Stats(context.Background())
	require.ErrorIs(t, err, providers.ErrNotConfigured)
}
