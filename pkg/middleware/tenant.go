package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jatinbuilds/trio/backend/go-services/internal/domains"
)

const tenantKey = "tenant"

// TenantMiddleware resolves the request Host to a tenant and stores the
// resolution on the context. The configured root domain and localhost are
// the marketing surface: they pass through with no tenant set. Unknown
// hosts get 404; a failing user store gets 503 so clients can retry.
func TenantMiddleware(resolver *domains.Service, rootDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := strings.ToLower(strings.TrimSpace(c.Request.Host))
		if host == "" || host == strings.ToLower(rootDomain) || isLocalHost(host) {
			c.Next()
			return
		}

		res, err := resolver.Resolve(c.Request.Context(), host)
		if err != nil {
			if errors.Is(err, domains.ErrUnavailable) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "tenant resolution unavailable"})
				return
			}
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown domain", "domain": host})
			return
		}

		c.Set(tenantKey, res)
		c.Next()
	}
}

// TenantFromContext returns the resolution set by TenantMiddleware, or
// (nil, false) on the marketing surface.
func TenantFromContext(c *gin.Context) (*domains.Resolution, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return nil, false
	}
	res, ok := v.(*domains.Resolution)
	return res, ok
}

// RequireAdminTenant restricts a route group to the admin surface. The
// request host must have resolved to an admin tenant, and that tenant must
// be the user the access token was issued to. Attach after AuthMiddleware;
// portfolio hosts and the marketing surface get 403.
func RequireAdminTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := TenantFromContext(c)
		if !ok || res.AppType != domains.AppTypeAdmin || res.User == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin surface only"})
			return
		}
		if res.User.ID != SubjectFromContext(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not match host"})
			return
		}
		c.Next()
	}
}

func isLocalHost(host string) bool {
	h := host
	if sh, _, err := net.SplitHostPort(host); err == nil {
		h = sh
	}
	return h == "localhost" || h == "127.0.0.1" || h == "::1"
}
