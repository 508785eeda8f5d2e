package leetcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers"
	"github.com/stretchr/testify/require"
)

func TestStats_Live(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/crafter", r.URL.Path)
		w.Write([]byte(`{"totalSolved":321,"totalQuestions":3000,"easySolved":150,"mediumSolved":140,"hardSolved":31,"ranking":54321,"contributionPoint":12,"reputation":3}`))
	}))
	defer srv.Close()

	c := NewClient(config.LeetCodeConfig{APIBaseURL: srv.URL, Username: "crafter"}, 5*time.Second)
	s, err := c.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 321, s.TotalSolved)
	require.Equal(t, Breakdown{Easy: 150, Medium: 140, Hard: 31}, s.DifficultyBreakdown())
}

func TestStats_PlaceholderUsernameIsNotConfigured(t *testing.T) {
	c := NewClient(config.LeetCodeConfig{APIBaseURL: "http://unused", Username: "sample-user"}, time.Second)
	_, err := c.Stats(context.Background())
	require.ErrorIs(t, err, providers.ErrNotConfigured)

	c = NewClient(config.LeetCodeConfig{APIBaseURL: "http://unused"}, time.Second)
	_, err = c.Stats(context.Background())
	require.ErrorIs(t, err, providers.ErrNotConfigured)
}

func TestStats_SchemaMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalSolved":"lots"}`))
	}))
	defer srv.Close()

	c := NewClient(config.LeetCodeConfig{APIBaseURL: srv.URL, Username: "crafter"}, time.Second)
	_, err := c.Stats(context.Background())
	require.True(t, providers.IsSchemaError(err), "expected schema error, got %v", err)
}

func TestStats_Upstream500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(config.LeetCodeConfig{APIBaseURL: srv.URL, Username: "crafter"}, time.Second)
	_, err := c.Stats(context.Background())
	require.Error(t, err)
	require.False(t, providers.IsSchemaError(err))
}
