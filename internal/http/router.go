package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/medic/supportbot/internal/chat"
	"github.com/medic/supportbot/internal/config"
	"github.com/medic/supportbot/internal/faq"
	"github.com/medic/supportbot/internal/hours"
	"github.com/medic/supportbot/internal/http/handlers"
	"github.com/medic/supportbot/internal/http/middleware"
	"github.com/medic/supportbot/internal/profile"

	_ "github.com/medic/supportbot/docs"
)

type Deps struct {
	Chat  *chat.Service
	FAQ   *faq.KnowledgeBase
	Hours hours.Config
	Store profile.Store
}

func Router(cfg config.Config, deps Deps, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	if cfg.RequestTimeout > 0 {
		r.Use(requestTimeout(cfg.RequestTimeout))
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.AdminKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" || cfg.CORSAllowed == "" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSAllowed, ",")
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Chat:      deps.Chat,
		FAQ:       deps.FAQ,
		Hours:     deps.Hours,
		Store:     deps.Store,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/chat", middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)), h.PostChat)
		api.GET("/faq", h.FAQList)
		api.GET("/hours", h.HoursStatus)
	}

	admin := api.Group("/sessions/:id")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/profile", h.ProfileGet)
		admin.DELETE("/profile", h.ProfileDelete)
		admin.GET("/transcript", h.Transcript)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
