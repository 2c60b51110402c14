package system

import (
	"net/http"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/middleware"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionView é exigida para listar os sistemas cadastrados.
const PermissionView = "view_system"

type Controller interface {
	Routes(routes gin.IRouter)
	List(c *gin.Context)
}

type controllerImpl struct {
	service Service
	mw      middleware.Middleware
	logger  *zap.Logger
}

func NewController(service Service, mw middleware.Middleware, logger *zap.Logger) Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &controllerImpl{
		service: service,
		mw:      mw,
		logger:  logger,
	}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	routes.GET("/systems", ctrl.mw.SetContextAutorization(), ctrl.mw.RequirePermission(PermissionView), ctrl.List)
}

// @Summary      Lista sistemas
// @Description  Retorna a lista paginada dos sistemas (tenants) cadastrados.
// @Tags         System
// @Produce      json
// @Security     BearerAuth
//
// @Param        page      query int false "Página (>= 1)" default(1)
// @Param        page_size query int false "Itens por página (máximo 100)" default(10)
//
// @Success      200  {object}  SystemsResponseDto  "Lista de sistemas."
// @Failure      400  {object}  rest_err.RestErr    "Parâmetros de paginação inválidos."
// @Failure      401  {object}  rest_err.RestErr    "Token ausente, inválido ou expirado."
// @Failure      403  {object}  rest_err.RestErr    "Permissão view_system ausente."
// @Failure      500  {object}  rest_err.RestErr    "Erro interno do servidor."
//
// @Router       /api/account/systems [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	var req ListSystemRequestDto
	if err := c.ShouldBindQuery(&req); err != nil {
		restError := rest_err.NewBindingError(err)
		c.JSON(restError.Code, restError)
		return
	}

	systems, total, err := ctrl.service.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		ctrl.logger.Error("[SYSTEM] falha ao listar sistemas", zap.Error(err))
		restError := rest_err.NewInternalServerError("failed to list systems", nil)
		c.JSON(restError.Code, restError)
		return
	}

	results := make([]SystemResponseDto, len(systems))
	for i, s := range systems {
		results[i] = NewSystemResponse(s)
	}
	c.JSON(http.StatusOK, SystemsResponseDto{
		Count:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Results:  results,
	})
}
