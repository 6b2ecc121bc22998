package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/social"
)

// RouterConfig carries the HTTP-layer settings taken from config.Config
type RouterConfig struct {
	RequestTimeout time.Duration
	Production     bool
}

// NewRouter builds the gin engine with middleware and every route mounted
func NewRouter(engine *social.Engine, log *zap.Logger, cfg RouterConfig) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())
	router.Use(prometheusMetrics())
	if cfg.RequestTimeout > 0 {
		router.Use(requestTimeout(cfg.RequestTimeout))
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": constants.WelcomeMessage})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	NewHandler(engine, log).RegisterRoutes(router)
	return router
}
