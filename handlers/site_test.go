package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jatinbuilds/trio/backend/go-services/internal/domains"
	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
	"github.com/jatinbuilds/trio/backend/go-services/internal/projects"
	"github.com/jatinbuilds/trio/backend/go-services/internal/users"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/middleware"
)

func siteRouter(t *testing.T) (*gin.Engine, *projects.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := users.NewMemoryRepository()
	require.NoError(t, userRepo.Create(context.Background(), &models.User{
		ID:              "u1",
		Username:        "alice",
		FullName:        "Alice Example",
		Email:           "alice@example.com",
		PortfolioDomain: "alice.dev",
		AdminDomain:     "admin.alice.dev",
	}))

	projectsSvc := projects.NewService(projects.NewMemoryRepository())

	r := gin.New()
	r.Use(middleware.TenantMiddleware(domains.NewService(userRepo), "trio.dev"))
	api := r.Group("/api/v1")
	NewSiteHandler(projectsSvc).Register(api)
	return r, projectsSvc
}

func getSite(r *gin.Engine, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/v1/site", nil)
	req.Host = host
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSite_PortfolioBundle(t *testing.T) {
	r, projectsSvc := siteRouter(t)
	_, err := projectsSvc.Create(context.Background(), &models.User{ID: "u1", Username: "alice"}, projects.CreateRequest{
		Title:        "Trio Platform",
		Description:  "Multi-tenant portfolio platform backend.",
		Technologies: []string{"Go"},
	})
	require.NoError(t, err)

	w := getSite(r, "alice.dev")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `"appType":"portfolio"`)
	require.Contains(t, body, `"username":"alice"`)
	require.Contains(t, body, "Trio Platform")
	// email is private
	require.NotContains(t, body, "alice@example.com")
}

func TestSite_AdminSurface(t *testing.T) {
	r, _ := siteRouter(t)
	w := getSite(r, "admin.alice.dev")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"appType":"admin"`)
}

func TestSite_MarketingOnRoot(t *testing.T) {
	r, _ := siteRouter(t)
	w := getSite(r, "trio.dev")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"appType":"marketing"`)
}

func TestSite_UnknownHost404(t *testing.T) {
	r, _ := siteRouter(t)
	w := getSite(r, "stranger.example.com")
	require.Equal(t, http.StatusNotFound, w.Code)
}
