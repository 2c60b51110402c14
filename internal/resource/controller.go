// Package resource expõe a API protegida do serviço de recursos. A
// identidade vem do autenticador configurado (remoto ou local).
package resource

import (
	"net/http"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"

	"github.com/gin-gonic/gin"
)

// PermissionViewPicture é exigida por GET /pictures.
const PermissionViewPicture = "view_picture"

type Picture struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DefaultPictures é o catálogo servido quando nenhum outro é configurado.
var DefaultPictures = []Picture{
	{ID: 1, Title: "basalt columns", URL: "/static/pictures/basalt-columns.jpg"},
	{ID: 2, Title: "lava field", URL: "/static/pictures/lava-field.jpg"},
}

type PingResponse struct {
	Message  string            `json:"message"`
	Identity identity.Identity `json:"identity"`
}

type PicturesResponse struct {
	Count   int       `json:"count"`
	Results []Picture `json:"results"`
}

type Controller interface {
	Routes(routes gin.IRouter)
	Ping(c *gin.Context)
	Pictures(c *gin.Context)
}

type controllerImpl struct {
	authenticate gin.HandlerFunc
	pictures     []Picture
}

// NewController recebe o middleware que resolve a identidade da requisição.
func NewController(authenticate gin.HandlerFunc, pictures []Picture) Controller {
	if pictures == nil {
		pictures = []Picture{}
	}
	return &controllerImpl{
		authenticate: authenticate,
		pictures:     pictures,
	}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	group := routes.Group("", ctrl.authenticate)
	group.GET("/ping", identity.RequireIdentity(), ctrl.Ping)
	group.GET("/pictures", identity.RequirePermission(PermissionViewPicture), ctrl.Pictures)
}

// @Summary      Ping autenticado
// @Description  Ecoa a identidade resolvida para o portador do token.
// @Tags         Resource
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PingResponse
// @Failure      401  {object}  rest_err.RestErr
// @Router       /api/resource/ping [get]
func (ctrl *controllerImpl) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong", Identity: identity.Get(c)})
}

// @Summary      Lista imagens
// @Description  Exige a permissão view_picture.
// @Tags         Resource
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PicturesResponse
// @Failure      401  {object}  rest_err.RestErr
// @Failure      403  {object}  rest_err.RestErr
// @Router       /api/resource/pictures [get]
func (ctrl *controllerImpl) Pictures(c *gin.Context) {
	c.JSON(http.StatusOK, PicturesResponse{Count: len(ctrl.pictures), Results: ctrl.pictures})
}
