package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"provenance-explorer/config"
	"provenance-explorer/models"
	"provenance-explorer/services"
)

// NewRouter baut den gin-Router mit allen Routen.
func NewRouter(cfg *config.Config, catalog *services.Catalog, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogMiddleware(log))
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupHealthRoutes(router, catalog)
	setupDatasetRoutes(router, catalog, log)
	setupChartRoutes(router, catalog, log)
	setupGeoRoutes(router, catalog, log)
	setupAdminRoutes(router, catalog, log)
	return router
}

// respondError übersetzt Service-Fehler in HTTP-Status.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnknownGroup):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("Request fehlgeschlagen", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func setupHealthRoutes(router *gin.Engine, catalog *services.Catalog) {
	router.GET("/healthz", func(c *gin.Context) {
		snap, err := catalog.Snapshot()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"source":    snap.Source,
			"datasets":  len(snap.Records),
			"entries":   snap.Entries,
			"loaded_at": snap.LoadedAt,
		})
	})
}

func setupDatasetRoutes(router *gin.Engine, catalog *services.Catalog, log *zap.Logger) {
	router.GET("/datasets", func(c *gin.Context) {
		records, err := catalog.Records()
		if err != nil {
			respondError(c, log, err)
			return
		}

		license := c.Query("license")
		synthetic := c.Query("synthetic")
		collection := c.Query("collection")

		out := make([]models.Summary, 0, len(records))
		for _, r := range records {
			if license != "" && r.LicenseUseCategory != license && r.LicenseUseClass != license {
				continue
			}
			if synthetic != "" && r.Synthetic != synthetic && r.SyntheticClass != synthetic {
				continue
			}
			if collection != "" && r.Collection != collection {
				continue
			}
			out = append(out, r)
		}
		c.JSON(http.StatusOK, out)
	})
}

func setupChartRoutes(router *gin.Engine, catalog *services.Catalog, log *zap.Logger) {
	rg := router.Group("/charts")

	rg.GET("/groups/:kind", func(c *gin.Context) {
		tree, err := catalog.GroupTree(c.Param("kind"), c.Query("field"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	})

	rg.GET("/nested", func(c *gin.Context) {
		parent, child := c.Query("parent"), c.Query("child")
		if parent == "" || child == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters 'parent' and 'child' are required"})
			return
		}
		tree, err := catalog.NestedTree(parent, child)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	})

	rg.GET("/source-tree", func(c *gin.Context) {
		tree, err := catalog.SourceTree()
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	})
}

func setupGeoRoutes(router *gin.Engine, catalog *services.Catalog, log *zap.Logger) {
	rg := router.Group("/geo")

	rg.GET("/language-countries", func(c *gin.Context) {
		c.JSON(http.StatusOK, catalog.LanguageCountries())
	})

	rg.GET("/country-counts", func(c *gin.Context) {
		points, err := catalog.CountryCounts()
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, points)
	})
}

func setupAdminRoutes(router *gin.Engine, catalog *services.Catalog, log *zap.Logger) {
	rg := router.Group("/admin")

	rg.POST("/reload", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
		defer cancel()
		count, err := catalog.Reload(ctx)
		if err != nil {
			log.Error("Manuelles Neuladen fehlgeschlagen", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "reloaded", "datasets": count})
	})
}
