package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/studiofolio/portfolio-backend/internal/api/http"
	apimiddleware "github.com/studiofolio/portfolio-backend/internal/api/http/middleware"
	"github.com/studiofolio/portfolio-backend/internal/auth"
	authhttp "github.com/studiofolio/portfolio-backend/internal/auth/http"
	authmiddleware "github.com/studiofolio/portfolio-backend/internal/auth/middleware"
	"github.com/studiofolio/portfolio-backend/internal/cache"
	"github.com/studiofolio/portfolio-backend/internal/contact"
	projecthttp "github.com/studiofolio/portfolio-backend/internal/projects/http"
	"github.com/studiofolio/portfolio-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Log            *logrus.Logger

	Store        *service.Store
	Gate         *auth.Gate
	Verifier     authmiddleware.TokenVerifier
	Policy       auth.Policy
	ListingCache *cache.ListingCache // optional
	Contact      *contact.Service    // optional
	ContactLimit *contact.RateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimiddleware.RequestID(dep.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.ListingCache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projectHandler := projecthttp.New(dep.Store, dep.ListingCache, dep.Log)
	projectHandler.RegisterPublic(api.Group("/projects"))

	authHandler := authhttp.New(dep.Gate)
	authHandler.Register(api.Group("/auth"))

	admin := api.Group("/admin", authmiddleware.RequireAdmin(dep.Verifier, dep.Policy))
	projectHandler.RegisterAdmin(admin.Group("/projects"))

	if dep.Contact != nil {
		contactHandler := contact.NewHandler(dep.Contact)
		contactHandler.Register(api.Group("/contact"), dep.ContactLimit)
	}

	return r
}
