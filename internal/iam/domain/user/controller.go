package user

import (
	"errors"
	"net/http"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/middleware"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller interface {
	Routes(routes gin.IRouter)
	MyInfo(c *gin.Context)
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
	routes.GET("/myinfo", ctrl.mw.SetContextAutorization(), ctrl.MyInfo)
	routes.GET("/list", ctrl.mw.SetContextAutorization(), ctrl.List)
}

// @Summary      Dados do usuário autenticado
// @Description  Retorna o perfil do dono do token, com papéis e permissões efetivas recalculadas na leitura.
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
//
// @Success      200  {object}  MyInfoResponseDto  "Perfil do usuário."
// @Failure      401  {object}  rest_err.RestErr   "Token ausente, inválido ou expirado."
// @Failure      404  {object}  rest_err.RestErr   "O sujeito do token não existe mais."
// @Failure      500  {object}  rest_err.RestErr   "Erro interno do servidor."
//
// @Router       /api/account/myinfo [get]
func (ctrl *controllerImpl) MyInfo(c *gin.Context) {
	id, err := uuid.Parse(identity.Get(c).UUID)
	if err != nil {
		restError := rest_err.NewNotFoundError(ErrNotFound.Error())
		c.JSON(restError.Code, restError)
		return
	}

	found, err := ctrl.service.GetByUUID(c.Request.Context(), id)
	if err != nil {
		var restError *rest_err.RestErr
		switch {
		case errors.Is(err, ErrNotFound):
			restError = rest_err.NewNotFoundError(ErrNotFound.Error())
		default:
			ctrl.logger.Error("[USER] falha ao buscar perfil", zap.String("uuid", id.String()), zap.Error(err))
			restError = rest_err.NewInternalServerError("failed to load user", nil)
		}
		c.JSON(restError.Code, restError)
		return
	}

	c.JSON(http.StatusOK, NewMyInfoResponse(found))
}

// @Summary      Lista usuários
// @Description  Lista paginada, do mais recente para o mais antigo. Os filtros são combinados com AND; textos fazem busca por substring e system_code é exato.
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
//
// @Param        system_code  query string false "Código do sistema"
// @Param        username     query string false "Trecho do username"
// @Param        email        query string false "Trecho do e-mail"
// @Param        phone        query string false "Trecho do telefone"
// @Param        is_staff     query bool   false "Filtra por is_staff"
// @Param        is_active    query bool   false "Filtra por is_active"
// @Param        is_superuser query bool   false "Filtra por is_superuser"
// @Param        role_id      query int    false "Usuários com o papel informado"
// @Param        page         query int    false "Página (>= 1)" default(1)
// @Param        page_size    query int    false "Itens por página (máximo 100)" default(10)
//
// @Success      200  {object}  UserListResponseDto  "Página de usuários."
// @Failure      400  {object}  rest_err.RestErr     "Parâmetros inválidos."
// @Failure      401  {object}  rest_err.RestErr     "Token ausente, inválido ou expirado."
// @Failure      500  {object}  rest_err.RestErr     "Erro interno do servidor."
//
// @Router       /api/account/list [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	var req ListUserRequestDto
	if err := c.ShouldBindQuery(&req); err != nil {
		restError := rest_err.NewBindingError(err)
		c.JSON(restError.Code, restError)
		return
	}

	users, total, err := ctrl.service.List(c.Request.Context(), req.Filter(), req.Page, req.PageSize)
	if err != nil {
		ctrl.logger.Error("[USER] falha ao listar usuários", zap.Error(err))
		restError := rest_err.NewInternalServerError("failed to list users", nil)
		c.JSON(restError.Code, restError)
		return
	}

	results := make([]UserListItemDto, len(users))
	for i, u := range users {
		results[i] = NewUserListItem(u)
	}
	c.JSON(http.StatusOK, UserListResponseDto{
		Count:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Results:  results,
	})
}
