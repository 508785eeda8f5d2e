package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>trio backend - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document covering the public and admin surfaces.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "trio-backend", "version": "v0.1.0" },
  "paths": {
    "/api/v1/site": {
      "get": { "summary": "Resolve the requesting host to its tenant site bundle", "responses": { "200": { "description": "marketing, portfolio or admin bundle" }, "404": { "description": "unknown domain" } } }
    },
    "/api/v1/stats/github": {
      "get": { "summary": "GitHub stats (live or demo)", "responses": { "200": { "description": "stats payload, isDemo marks fallback" } } }
    },
    "/api/v1/stats/leetcode": {
      "get": { "summary": "LeetCode stats (live or demo)", "responses": { "200": { "description": "stats payload, isDemo marks fallback" } } }
    },
    "/api/v1/stats/linkedin": {
      "get": { "summary": "LinkedIn stats (live or demo)", "responses": { "200": { "description": "stats payload, isDemo marks fallback" } } }
    },
    "/api/v1/auth/login": {
      "post": { "summary": "Exchange an OIDC ID token for service tokens", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"idToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid id token" } } }
    },
    "/api/v1/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/api/v1/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "responses": { "200": { "description": "logged out" } } }
    },
    "/api/v1/admin/profile": {
      "get": { "summary": "Get own profile", "responses": { "200": { "description": "user document" } } },
      "put": { "summary": "Partially update own profile", "responses": { "200": { "description": "updated user" } } }
    },
    "/api/v1/admin/domains": {
      "get": { "summary": "Get own domain bindings", "responses": { "200": { "description": "portfolio and admin domains" } } },
      "put": { "summary": "Rebind domains", "responses": { "200": { "description": "updated pair" }, "409": { "description": "domain already taken" } } }
    },
    "/api/v1/admin/projects": {
      "get": { "summary": "List own projects", "responses": { "200": { "description": "projects, newest first" } } },
      "post": { "summary": "Create a project", "responses": { "201": { "description": "created project" }, "400": { "description": "validation failed" } } }
    },
    "/api/v1/admin/projects/{id}": {
      "get": { "summary": "Get one project", "responses": { "200": { "description": "project" }, "403": { "description": "not owner" } } },
      "put": { "summary": "Update a project", "responses": { "200": { "description": "updated project" } } },
      "delete": { "summary": "Delete a project", "responses": { "200": { "description": "deleted" } } }
    },
    "/api/v1/admin/media": {
      "post": { "summary": "Upload avatar or cover image", "responses": { "201": { "description": "object key and presigned URL" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
