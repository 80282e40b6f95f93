package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"maktaba/internal/api"
	"maktaba/internal/auth"
	"maktaba/internal/config"
	"maktaba/internal/entity"
	"maktaba/internal/model"
	"maktaba/internal/storage"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedRBAC(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Error("failed to seed roles and permissions")
		return
	}
	if pruned, err := repo.DeleteExpiredRefreshTokens(context.Background()); err != nil {
		logrus.WithError(err).Warn("failed to prune expired refresh tokens")
	} else if pruned > 0 {
		logrus.WithField("count", pruned).Info("pruned expired refresh tokens")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	tokens, err := auth.NewManager(
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTIssuer,
		time.Duration(cfg.JWTAccessExpiryMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshExpiryMinutes)*time.Minute,
	)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise token manager")
		return
	}

	httpHandler := api.NewHTTPHandler(repo, tokens, store, cfg)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/refresh", httpHandler.Refresh)
	authGroup.POST("/logout", httpHandler.Logout)
	authGroup.GET("/me", httpHandler.Authenticate(), httpHandler.Me)

	userAdmin := apiGroup.Group("/users")
	userAdmin.Use(httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermManageUsers))
	userAdmin.GET("", httpHandler.ListUsers)
	userAdmin.POST("", httpHandler.CreateUser)
	userAdmin.GET("/:id", httpHandler.GetUser)
	userAdmin.PATCH("/:id", httpHandler.UpdateUser)
	userAdmin.PUT("/:id/roles", httpHandler.ReplaceUserRoles)
	userAdmin.DELETE("/:id", httpHandler.DeleteUser)

	roleAdmin := apiGroup.Group("/roles")
	roleAdmin.Use(httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermManageRoles))
	roleAdmin.GET("", httpHandler.ListRoles)

	attachments := apiGroup.Group("/attachments")
	attachments.Use(httpHandler.Authenticate())
	attachments.GET("", httpHandler.ListAttachments)
	attachments.GET("/:id", httpHandler.GetAttachment)
	attachments.POST("", httpHandler.RequirePermission(entity.PermUploadAttachment), httpHandler.UploadAttachment)
	attachments.DELETE("/:id", httpHandler.RequirePermission(entity.PermDeleteAttachment), httpHandler.DeleteAttachment)

	// Content routes are language-scoped. Reads are public; writes require the
	// matching permission.
	lang := apiGroup.Group("/:lang")

	lang.GET("/articles", httpHandler.ListArticles)
	lang.GET("/articles/:slug", httpHandler.GetArticle)
	lang.POST("/articles", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermCreateArticle), httpHandler.CreateArticle)
	lang.PATCH("/articles/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermUpdateArticle), httpHandler.UpdateArticle)
	lang.DELETE("/articles/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermDeleteArticle), httpHandler.DeleteArticle)

	lang.GET("/books", httpHandler.ListBooks)
	lang.GET("/books/:slug", httpHandler.GetBook)
	lang.POST("/books", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermCreateBook), httpHandler.CreateBook)
	lang.PATCH("/books/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermUpdateBook), httpHandler.UpdateBook)
	lang.DELETE("/books/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermDeleteBook), httpHandler.DeleteBook)

	lang.GET("/research", httpHandler.ListResearch)
	lang.GET("/research/:slug", httpHandler.GetResearch)
	lang.POST("/research", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermCreateResearch), httpHandler.CreateResearch)
	lang.PATCH("/research/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermUpdateResearch), httpHandler.UpdateResearch)
	lang.DELETE("/research/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermDeleteResearch), httpHandler.DeleteResearch)

	lang.GET("/categories", httpHandler.ListCategories)
	lang.GET("/categories/:slug", httpHandler.GetCategory)
	lang.POST("/categories", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermCreateCategory), httpHandler.CreateCategory)
	lang.PATCH("/categories/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermUpdateCategory), httpHandler.UpdateCategory)
	lang.DELETE("/categories/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermDeleteCategory), httpHandler.DeleteCategory)

	lang.GET("/tags", httpHandler.ListTags)
	lang.GET("/tags/:slug", httpHandler.GetTag)
	lang.POST("/tags", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermCreateTag), httpHandler.CreateTag)
	lang.PATCH("/tags/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermUpdateTag), httpHandler.UpdateTag)
	lang.DELETE("/tags/:id", httpHandler.Authenticate(), httpHandler.RequirePermission(entity.PermDeleteTag), httpHandler.DeleteTag)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware logs each request after it completes.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
