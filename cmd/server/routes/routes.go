package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Joker-Pro-Max/Basalt/docs"
)

const (
	AccountPrefix  = "/api/account"
	ResourcePrefix = "/api/resource"
)

// Routable é implementado pelos controllers de cada domínio.
type Routable interface {
	Routes(routes gin.IRouter)
}

// SetupRouter cria o engine com o modo do ambiente, swagger e healthcheck.
func SetupRouter(env string) (*gin.Engine, error) {
	switch env {
	case "dev", "":
		gin.SetMode(gin.DebugMode)
	case "prod":
		gin.SetMode(gin.ReleaseMode)
	default:
		return nil, fmt.Errorf("invalid environment value '%s': must be 'dev' or 'prod'", env)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Acessível em /doc/index.html
	r.GET("/doc/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r, nil
}

func SetupAccountRoutes(r *gin.Engine, controllers ...Routable) {
	route := r.Group(AccountPrefix)
	for _, ctrl := range controllers {
		ctrl.Routes(route)
	}
}

func SetupResourceRoutes(r *gin.Engine, controller Routable) {
	controller.Routes(r.Group(ResourcePrefix))
}
