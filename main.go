package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jatinbuilds/trio/backend/go-services/handlers"
	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/database"
	"github.com/jatinbuilds/trio/backend/go-services/internal/domains"
	"github.com/jatinbuilds/trio/backend/go-services/internal/oidc"
	"github.com/jatinbuilds/trio/backend/go-services/internal/projects"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/github"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/leetcode"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/linkedin"
	"github.com/jatinbuilds/trio/backend/go-services/internal/sessions"
	"github.com/jatinbuilds/trio/backend/go-services/internal/stats"
	"github.com/jatinbuilds/trio/backend/go-services/internal/storage"
	"github.com/jatinbuilds/trio/backend/go-services/internal/tokens"
	"github.com/jatinbuilds/trio/backend/go-services/internal/users"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/logger"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/metrics"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v oidc=%v root_domain=%s",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.OIDC.IssuerURL != "", cfg.Tenancy.RootDomain)

	r := gin.New()

	// Permissive CORS for dev; the frontends live on tenant domains, so
	// production deploys sit behind a stricter proxy policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Redis early: rate limiter, provider cache, sessions and token
	// blacklist all want it.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Mongo with retry/backoff to tolerate container startup races.
	var mongoClient *mongo.Client
	{
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()
	db := mongoClient.Database(cfg.MongoDB.Database)

	userRepo := users.NewMongoRepository(db.Collection(database.CollectionUsers))
	usersSvc := users.NewService(userRepo)
	domainsSvc := domains.NewService(userRepo)
	projectsSvc := projects.NewService(projects.NewMongoRepository(db.Collection(database.CollectionProjects)))

	// Refresh sessions: Redis when available, Mongo otherwise.
	var sessionsSvc *sessions.Service
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "adminsession:"))
		logger.Infof("using Redis for refresh sessions")
	} else {
		sessionsSvc = sessions.NewService(sessions.NewMongoRepository(db.Collection(database.CollectionAdminSessions)))
		logger.Infof("using MongoDB for refresh sessions")
	}

	// Provider stats pipeline: live clients + shared 1h cache.
	var statsCache stats.Cache
	if redisClient != nil {
		statsCache = stats.NewRedisCache(redisClient, "stats:")
	} else {
		statsCache = stats.NewMemoryCache()
	}
	statsSvc := stats.NewService(
		github.NewClient(cfg.Providers.GitHub, cfg.Providers.HTTPTimeout),
		leetcode.NewClient(cfg.Providers.LeetCode, cfg.Providers.HTTPTimeout),
		linkedin.NewClient(cfg.Providers.LinkedIn, cfg.Providers.HTTPTimeout),
		statsCache,
		cfg.Providers.CacheTTL,
	)

	// Identity: OIDC against the configured issuer; claims-only verifier
	// behind an explicit opt-in for local integration runs.
	var idVerifier middleware.Verifier
	if cfg.OIDC.IssuerURL != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			idVerifier = ver
		}
	}
	if idVerifier == nil && strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warn("enabling insecure token verifier (integration mode)")
		idVerifier = oidc.NewInsecureVerifier()
	}

	// Access tokens for the admin API are our own JWTs.
	accessVerifier := tokens.NewVerifier(cfg.JWT.Secret)

	// Media storage is optional; the admin media endpoint answers 503
	// without it.
	var media *storage.MediaStorage
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		media, err = storage.NewMediaStorage(mcfg)
		if err != nil {
			logger.Warnf("media storage unavailable: %v", err)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongo"] = mongoClient.Ping(c.Request.Context(), nil) == nil
		if !deps["mongo"] {
			ready = false
		}
		if redisClient != nil {
			deps["redis"] = redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}
		if cfg.OIDC.IssuerURL != "" {
			deps["oidc"] = idVerifier != nil
			if !deps["oidc"] {
				ready = false
			}
		} else {
			deps["oidc"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// Versioned API behind host-based tenant resolution.
	api := r.Group("/api/v1", middleware.TenantMiddleware(domainsSvc, cfg.Tenancy.RootDomain))

	handlers.NewStatsHandler(statsSvc).Register(api)
	handlers.NewSiteHandler(projectsSvc).Register(api)

	if idVerifier != nil {
		handlers.NewAuthHandler(cfg, idVerifier, usersSvc, sessionsSvc).Register(api)
	} else {
		logger.Warnf("auth routes not registered: no identity verifier configured")
	}

	admin := api.Group("", middleware.AuthMiddleware(accessVerifier), middleware.RequireAdminTenant())
	handlers.NewAdminHandler(usersSvc, domainsSvc, projectsSvc, media).Register(admin)

	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting trio backend on %s", addr)
	go func() {
		if err := r.Run(addr); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()
	select {}
}
