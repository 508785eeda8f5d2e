package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jatinbuilds/trio/backend/go-services/internal/domains"
	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
	"github.com/jatinbuilds/trio/backend/go-services/internal/users"
)

func tenantRouter(t *testing.T, rootDomain string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := users.NewMemoryRepository()
	err := repo.Create(context.Background(), &models.User{
		ID:              "u1",
		Username:        "alice",
		PortfolioDomain: "alice.dev",
		AdminDomain:     "admin.alice.dev",
	})
	require.NoError(t, err)

	r := gin.New()
	r.Use(TenantMiddleware(domains.NewService(repo), rootDomain))
	r.GET("/whoami", func(c *gin.Context) {
		res, ok := TenantFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"surface": "marketing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"surface": string(res.AppType), "user": res.User.Username})
	})
	return r
}

func doHost(r *gin.Engine, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = host
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTenantMiddleware_PortfolioHost(t *testing.T) {
	r := tenantRouter(t, "trio.dev")
	w := doHost(r, "alice.dev")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"surface":"portfolio"`)
	require.Contains(t, w.Body.String(), `"user":"alice"`)
}

func TestTenantMiddleware_AdminHost(t *testing.T) {
	r := tenantRouter(t, "trio.dev")
	w := doHost(r, "admin.alice.dev")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"surface":"admin"`)
}

func TestTenantMiddleware_RootAndLocalhostBypass(t *testing.T) {
	r := tenantRouter(t, "trio.dev")
	for _, host := range []string{"trio.dev", "localhost:3000", "127.0.0.1:8080"} {
		w := doHost(r, host)
		require.Equal(t, http.StatusOK, w.Code, host)
		require.Contains(t, w.Body.String(), `"surface":"marketing"`, host)
	}
}

func TestTenantMiddleware_UnknownHost404(t *testing.T) {
	r := tenantRouter(t, "trio.dev")
	w := doHost(r, "nobody.example.com")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "unknown domain")
}

// adminGuardRouter stacks the tenant and admin-surface middleware over a
// route that always answers for the fixed subject "u1" (alice).
func adminGuardRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := users.NewMemoryRepository()
	for _, u := range []*models.User{
		{ID: "u1", Username: "alice", PortfolioDomain: "alice.dev", AdminDomain: "admin.alice.dev"},
		{ID: "u2", Username: "bob", PortfolioDomain: "bob.dev", AdminDomain: "admin.bob.dev"},
	} {
		require.NoError(t, repo.Create(context.Background(), u))
	}

	r := gin.New()
	r.Use(TenantMiddleware(domains.NewService(repo), "trio.dev"))
	r.Use(func(c *gin.Context) { c.Set("claims", map[string]interface{}{"sub": "u1"}) })
	r.Use(RequireAdminTenant())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": SubjectFromContext(c)})
	})
	return r
}

func TestRequireAdminTenant_OwnAdminHost(t *testing.T) {
	r := adminGuardRouter(t)
	w := doHost(r, "admin.alice.dev")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"sub":"u1"`)
}

func TestRequireAdminTenant_ForeignAdminHost403(t *testing.T) {
	r := adminGuardRouter(t)
	w := doHost(r, "admin.bob.dev")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminTenant_PortfolioAndMarketing403(t *testing.T) {
	r := adminGuardRouter(t)
	for _, host := range []string{"alice.dev", "trio.dev", "localhost:3000"} {
		w := doHost(r, host)
		require.Equal(t, http.StatusForbidden, w.Code, host)
	}
}

func TestTenantMiddleware_HostCaseInsensitive(t *testing.T) {
	r := tenantRouter(t, "trio.dev")
	w := doHost(r, "TRIO.dev")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"surface":"marketing"`)
}
