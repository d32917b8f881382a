package helixd

import (
	"github.com/gin-gonic/gin"

	"github.com/kiosk404/helix/internal/helixd/handler/middleware"
	v1 "github.com/kiosk404/helix/internal/helixd/handler/v1"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/repo"
	searchservice "github.com/kiosk404/helix/internal/helixd/service/search/domain/service"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	coordinator *searchservice.Coordinator
	runs        repo.RunRepository
	authConfig  *middleware.AuthConfig
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(middleware.CORS())

	if deps.authConfig != nil {
		g.Use(middleware.BearerAuth(deps.authConfig))
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	searchHandler := v1.NewSearchHandler(deps.coordinator, deps.runs)

	apiV1 := g.Group("/v1")
	{
		apiV1.POST("/search", searchHandler.Search)

		apiV1.GET("/runs", searchHandler.ListRuns)
		apiV1.GET("/runs/:id", searchHandler.GetRun)
	}
}
