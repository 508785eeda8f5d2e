package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jatinbuilds/trio/backend/go-services/internal/domains"
	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
	"github.com/jatinbuilds/trio/backend/go-services/internal/projects"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/logger"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/middleware"
)

// PublicProfile is the tenant owner's profile with account-internal fields
// stripped. The portfolio page is public; email stays private.
type PublicProfile struct {
	Username          string              `json:"username"`
	FullName          string              `json:"fullName"`
	Headline          string              `json:"headline"`
	Bio               string              `json:"bio"`
	ProfilePictureURL string              `json:"profilePictureUrl"`
	SocialLinks       map[string]string   `json:"socialLinks"`
	Skills            []string            `json:"skills"`
	Experience        []models.Experience `json:"experience"`
	Education         []models.Education  `json:"education"`
}

func publicProfile(u *models.User) PublicProfile {
	return PublicProfile{
		Username:          u.Username,
		FullName:          u.FullName,
		Headline:          u.Headline,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		SocialLinks:       u.SocialLinks,
		Skills:            u.Skills,
		Experience:        u.Experience,
		Education:         u.Education,
	}
}

// SiteHandler serves the per-host site bundle the frontends boot from.
type SiteHandler struct {
	projectsSvc *projects.Service
}

func NewSiteHandler(p *projects.Service) *SiteHandler {
	return &SiteHandler{projectsSvc: p}
}

// Register routes on the versioned API group
func (h *SiteHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/site", h.Site)
}

// Site returns what the requesting host should render: the marketing
// surface on the root domain, otherwise the resolved tenant's profile and
// projects. The tenant middleware has already 404'd unknown hosts.
func (h *SiteHandler) Site(c *gin.Context) {
	res, ok := middleware.TenantFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"appType": "marketing"})
		return
	}

	body := gin.H{
		"appType": string(res.AppType),
		"domain":  res.Domain,
		"user":    publicProfile(res.User),
	}
	if res.AppType == domains.AppTypePortfolio {
		list, err := h.projectsSvc.ListByAuthor(c.Request.Context(), res.User.ID)
		if err != nil {
			logger.Errorf("site: listing projects for %s: %v", res.User.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
			return
		}
		body["projects"] = list
	}
	c.JSON(http.StatusOK, body)
}
