package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mytheresa/product-catalog/app/admin"
	"github.com/mytheresa/product-catalog/app/catalog"
	"github.com/mytheresa/product-catalog/app/categories"
	"github.com/mytheresa/product-catalog/app/health"
	v1 "github.com/mytheresa/product-catalog/app/v1"
	v2 "github.com/mytheresa/product-catalog/app/v2"
	"github.com/mytheresa/product-catalog/config"
	"github.com/mytheresa/product-catalog/database"
	"github.com/mytheresa/product-catalog/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type version struct {
	prefix     string
	categories categories.Serializer
	products   catalog.Serializer
}

var versions = []version{
	{prefix: "/api/v1.0.0", categories: v1.CategorySerializer{}, products: v1.ProductSerializer{}},
	{prefix: "/api/v2.0.0", categories: v2.CategorySerializer{}, products: v2.ProductSerializer{}},
}

// Register builds the HTTP engine: one handler set per API version, the
// health check and, when a password is configured, the admin overview.
func Register(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *gin.Engine {
	categoryRepo := models.NewCategoriesRepository(db)
	productRepo := models.NewProductsRepository(db)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	}

	hh := health.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, log)
	r.GET("/healthz", handle(hh.HandleGet))

	for _, v := range versions {
		vlog := log.WithField("api", v.prefix)
		ch := categories.NewCategoryHandler(categoryRepo, v.categories, vlog)
		ph := catalog.NewCatalogHandler(productRepo, categoryRepo, v.products, vlog)

		api := r.Group(v.prefix)
		api.GET("/categories", handle(ch.HandleGetAll))
		api.POST("/categories", handle(ch.HandleCreate))
		api.GET("/categories/:id", handle(ch.HandleGet))
		api.PUT("/categories/:id", handle(ch.HandleUpdate))
		api.PATCH("/categories/:id", handle(ch.HandlePatch))
		api.DELETE("/categories/:id", handle(ch.HandleDelete))
		api.GET("/categories/:id/products", handle(ph.HandleGetByCategory))

		api.GET("/products", handle(ph.HandleGet))
		api.POST("/products", handle(ph.HandleCreate))
		api.GET("/products/:id", handle(ph.HandleGetProduct))
		api.PUT("/products/:id", handle(ph.HandleUpdate))
		api.PATCH("/products/:id", handle(ph.HandlePatch))
		api.DELETE("/products/:id", handle(ph.HandleDelete))
	}

	if cfg.AdminEnabled() {
		ah := admin.NewAdminHandler(categoryRepo, productRepo, log.WithField("api", "admin"))
		adm := r.Group("/admin", gin.BasicAuth(gin.Accounts{cfg.AdminUser: cfg.AdminPassword}))
		adm.GET("/", handle(ah.HandleIndex))
		adm.GET("/categories", handle(ah.HandleCategories))
		adm.GET("/products", handle(ah.HandleProducts))
	}

	return r
}

// handle adapts a net/http handler, exposing gin's path parameters
// through Request.PathValue.
func handle(h http.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range c.Params {
			c.Request.SetPathValue(p.Key, p.Value)
		}
		h(c.Writer, c.Request)
	}
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"ip":      c.ClientIP(),
			"latency": time.Since(start).String(),
		}).Info("Request completed")
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
