package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jatinbuilds/trio/backend/go-services/internal/domains"
	"github.com/jatinbuilds/trio/backend/go-services/internal/projects"
	"github.com/jatinbuilds/trio/backend/go-services/internal/storage"
	"github.com/jatinbuilds/trio/backend/go-services/internal/users"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/logger"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/middleware"
)

const (
	maxUploadBytes  = 8 << 20 // 8 MiB
	presignedExpiry = 24 * time.Hour
)

// AdminHandler serves the authenticated admin API: profile, domain
// bindings, project CRUD and media upload. Every operation is scoped to
// the subject of the verified access token.
type AdminHandler struct {
	usersSvc    *users.Service
	domainsSvc  *domains.Service
	projectsSvc *projects.Service
	media       *storage.MediaStorage
}

func NewAdminHandler(u *users.Service, d *domains.Service, p *projects.Service, m *storage.MediaStorage) *AdminHandler {
	return &AdminHandler{usersSvc: u, domainsSvc: d, projectsSvc: p, media: m}
}

// Register routes under /admin. The caller attaches the auth middleware.
func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/admin")
	a.GET("/profile", h.GetProfile)
	a.PUT("/profile", h.UpdateProfile)
	a.GET("/domains", h.GetDomains)
	a.PUT("/domains", h.UpdateDomains)
	a.GET("/projects", h.ListProjects)
	a.POST("/projects", h.CreateProject)
	a.GET("/projects/:id", h.GetProject)
	a.PUT("/projects/:id", h.UpdateProject)
	a.DELETE("/projects/:id", h.DeleteProject)
	a.POST("/media", h.UploadMedia)
}

// subject pulls the authenticated user id; middleware guarantees claims
// exist on routes it guards, the empty check covers miswired routers.
func (h *AdminHandler) subject(c *gin.Context) (string, bool) {
	sub := middleware.SubjectFromContext(c)
	if sub == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return "", false
	}
	return sub, true
}

func (h *AdminHandler) GetProfile(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var upd users.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.UpdateProfile(c.Request.Context(), sub, upd)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNoFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		case errors.Is(err, users.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) GetDomains(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	pair, err := h.domainsSvc.UserDomains(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, domains.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "domain lookup failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AdminHandler) UpdateDomains(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var upd domains.DomainUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.domainsSvc.UpdateDomains(c.Request.Context(), sub, upd); err != nil {
		switch {
		case errors.Is(err, domains.ErrDomainTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "domain already taken"})
		case errors.Is(err, domains.ErrEmptyDomain):
			c.JSON(http.StatusBadRequest, gin.H{"error": "domain must not be empty"})
		case errors.Is(err, domains.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "domain update failed"})
		}
		return
	}
	pair, err := h.domainsSvc.UserDomains(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "domain lookup failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AdminHandler) ListProjects(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	list, err := h.projectsSvc.ListByAuthor(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": list})
}

func (h *AdminHandler) CreateProject(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var req projects.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), sub)
	if err != nil || u == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	p, err := h.projectsSvc.Create(c.Request.Context(), u, req)
	if err != nil {
		if errors.Is(err, projects.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("project create: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "project create failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *AdminHandler) GetProject(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	p, err := h.projectsSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "project lookup failed"})
		return
	}
	if p.AuthorID != sub {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your project"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) UpdateProject(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	var req projects.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.projectsSvc.Update(c.Request.Context(), sub, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, projects.ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, projects.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, projects.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your project"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "project update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) DeleteProject(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	if err := h.projectsSvc.Delete(c.Request.Context(), sub, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, projects.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, projects.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your project"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "project delete failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// UploadMedia accepts a multipart file ("file") with kind=avatar|cover and
// stores it under the caller's namespace. Responds with the object key and
// a presigned GET URL the frontend can use immediately.
func (h *AdminHandler) UploadMedia(c *gin.Context) {
	sub, ok := h.subject(c)
	if !ok {
		return
	}
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage not configured"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	kind := c.DefaultPostForm("kind", "avatar")
	var key string
	switch kind {
	case "avatar":
		key = storage.AvatarKey(sub, uuid.NewString()+"-"+fh.Filename)
	case "cover":
		projectID := c.PostForm("projectId")
		if projectID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "projectId is required for covers"})
			return
		}
		key = storage.CoverKey(sub, projectID, uuid.NewString()+"-"+fh.Filename)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be avatar or cover"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if err := h.media.Upload(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		logger.Errorf("media upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	url, err := h.media.PresignedURL(c.Request.Context(), key, presignedExpiry)
	if err != nil {
		logger.Errorf("media presign: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign url"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}
