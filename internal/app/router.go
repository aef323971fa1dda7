package app

import (
	"context"
	"net/http"
	"time"

	"recipemarket/internal/config"
	"recipemarket/internal/middleware"
	"recipemarket/internal/modules/auth"
	"recipemarket/internal/modules/favorite"
	"recipemarket/internal/modules/offer"
	"recipemarket/internal/modules/recipe"
	jwtsvc "recipemarket/internal/pkg/jwt"
	"recipemarket/internal/pkg/metrics"
	"recipemarket/internal/pkg/response"
	"recipemarket/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers into one gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	accountRepo := repository.NewAccountRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	offerOrderRepo := repository.NewOfferOrderRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authHandler := auth.NewHandler(auth.NewService(accountRepo, j))
	recipeHandler := recipe.NewHandler(recipe.NewService(recipeRepo))
	offerHandler := offer.NewHandler(offer.NewService(offerOrderRepo, recipeRepo, log.WithField("component", "lifecycle")))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
		metrics.GinMiddleware(),
	)

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1, limiter.Handler())
		recipeHandler.RegisterPublicRoutes(v1)
		offerHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			offerHandler.RegisterProtectedRoutes(protected)

			client := protected.Group("")
			client.Use(middleware.ClientOnly())
			{
				recipeHandler.RegisterClientRoutes(client)
				offerHandler.RegisterClientRoutes(client)
				favoriteHandler.RegisterRoutes(client)
			}

			company := protected.Group("")
			company.Use(middleware.CompanyOnly())
			{
				offerHandler.RegisterCompanyRoutes(company)
			}
		}
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
