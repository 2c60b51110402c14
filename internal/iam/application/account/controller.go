package account

import (
	"errors"
	"net/http"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/middleware"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/auditoria_log"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderSystemCode = "X-System-Code"
	HeaderRequestID  = "X-Request-ID"

	DefaultRegisterSystem = "default"
	DefaultLoginSystem    = "Basalt"
)

type Controller interface {
	Routes(routes gin.IRouter)
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Me(c *gin.Context)
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
	routes.POST("/register", ctrl.Register)
	routes.POST("/login", ctrl.Login)
	routes.POST("/token/refresh", ctrl.Refresh)
	routes.GET("/me", ctrl.mw.SetContextAutorization(), ctrl.Me)
}

func rayTraceCode(c *gin.Context) string {
	traceID := c.GetHeader(HeaderRequestID)
	if traceID == "" {
		traceID = uuid.NewString()
	}
	c.Header(HeaderRequestID, traceID)
	return traceID
}

func systemCode(c *gin.Context, fallback string) string {
	if code := c.GetHeader(HeaderSystemCode); code != "" {
		return code
	}
	return fallback
}

func newAudit(c *gin.Context, action auditoria_log.Action, code, traceID string) auditoria_log.AuditLog {
	return auditoria_log.AuditLog{
		SystemCode: code,
		RequestID:  traceID,
		Action:     action,
		ClientIP:   c.ClientIP(),
	}
}

// audit nunca recebe a senha: input passa por Redact antes de ir para a fila.
func (ctrl *controllerImpl) audit(entry auditoria_log.AuditLog, input any, restErr *rest_err.RestErr) {
	entry.Input = auditoria_log.Redact(input)
	if restErr != nil {
		entry.Detail = restErr.Detail
	} else {
		entry.Success = true
	}
	auditoria_log.Record(entry)
}

// @Summary      Registra um usuário
// @Description  Cria o usuário no sistema do cabeçalho X-System-Code (padrão "default"), criando o sistema se necessário, e já devolve o par de tokens.
// @Tags         Account
// @Accept       json
// @Produce      json
//
// @Param        X-System-Code header string false "Código do sistema" default(default)
// @Param        request body RegisterRequest true "Dados do usuário; e-mail ou telefone é obrigatório"
//
// @Success      201  {object}  AuthResponse      "Usuário criado."
// @Failure      400  {object}  rest_err.RestErr  "Dados inválidos ou e-mail/telefone já cadastrado."
// @Failure      500  {object}  rest_err.RestErr  "Erro interno do servidor."
//
// @Router       /api/account/register [post]
func (ctrl *controllerImpl) Register(c *gin.Context) {
	traceID := rayTraceCode(c)
	code := systemCode(c, DefaultRegisterSystem)
	entry := newAudit(c, auditoria_log.ActionRegister, code, traceID)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		restErr := rest_err.NewBindingError(err)
		c.JSON(restErr.Code, restErr)
		return
	}
	entry.Identifier = req.Username

	created, err := ctrl.service.Register(c.Request.Context(), RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		SystemCode: code,
	})
	if err != nil {
		var restErr *rest_err.RestErr
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDuplicateIdentifier):
			restErr = rest_err.NewBadRequestError(err.Error())
		default:
			ctrl.logger.Error("[REGISTER] falha ao registrar", zap.String("ray_trace", traceID), zap.Error(err))
			restErr = rest_err.NewInternalServerError("failed to register user", nil)
		}
		ctrl.audit(entry, req, restErr)
		c.JSON(restErr.Code, restErr)
		return
	}

	pair, err := ctrl.service.IssueTokens(created.Record)
	if err != nil {
		ctrl.logger.Error("[REGISTER] falha ao emitir tokens", zap.String("ray_trace", traceID), zap.Error(err))
		restErr := rest_err.NewInternalServerError("failed to issue tokens", nil)
		c.JSON(restErr.Code, restErr)
		return
	}

	resp := AuthResponse{
		Msg:     "registered",
		Refresh: pair.Refresh,
		Access:  pair.Access,
		User: UserResponseDto{
			UUID:        created.UUID,
			Username:    created.Username,
			Email:       created.Email,
			Phone:       created.Phone,
			System:      &created.SystemCode,
			Permissions: created.Permissions,
		},
	}
	entry.UserUUID = &created.UUID
	ctrl.audit(entry, req, nil)
	c.JSON(http.StatusCreated, resp)
}

// @Summary      Efetua login
// @Description  Aceita username, e-mail ou telefone em "account", resolvidos dentro do sistema do cabeçalho X-System-Code (padrão "Basalt").
// @Tags         Account
// @Accept       json
// @Produce      json
//
// @Param        X-System-Code header string false "Código do sistema" default(Basalt)
// @Param        request body LoginRequest true "Conta e senha"
//
// @Success      200  {object}  AuthResponse      "Login bem-sucedido."
// @Failure      400  {object}  rest_err.RestErr  "JSON inválido."
// @Failure      401  {object}  rest_err.RestErr  "Credenciais inválidas ou conta desativada."
// @Failure      500  {object}  rest_err.RestErr  "Erro interno do servidor."
//
// @Router       /api/account/login [post]
func (ctrl *controllerImpl) Login(c *gin.Context) {
	traceID := rayTraceCode(c)
	code := systemCode(c, DefaultLoginSystem)
	entry := newAudit(c, auditoria_log.ActionLogin, code, traceID)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		restErr := rest_err.NewBindingError(err)
		c.JSON(restErr.Code, restErr)
		return
	}
	entry.Identifier = req.Account

	found, err := ctrl.service.Authenticate(c.Request.Context(), req.Account, req.Password, code)
	if err != nil {
		var restErr *rest_err.RestErr
		switch {
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountDisabled):
			restErr = rest_err.NewUnauthorizedError(err.Error())
		default:
			ctrl.logger.Error("[LOGIN] falha ao autenticar", zap.String("ray_trace", traceID), zap.Error(err))
			restErr = rest_err.NewInternalServerError("internal server error", nil)
		}
		ctrl.audit(entry, req, restErr)
		c.JSON(restErr.Code, restErr)
		return
	}

	pair, err := ctrl.service.IssueTokens(found)
	if err != nil {
		ctrl.logger.Error("[LOGIN] falha ao emitir tokens", zap.String("ray_trace", traceID), zap.Error(err))
		restErr := rest_err.NewInternalServerError("failed to issue tokens", nil)
		c.JSON(restErr.Code, restErr)
		return
	}

	resp := newAuthResponse(found, pair)
	entry.UserUUID = &found.UUID
	ctrl.audit(entry, req, nil)
	c.JSON(http.StatusOK, resp)
}

// @Summary      Renova os tokens
// @Description  Troca um refresh token válido por um novo par. As permissões são recalculadas a partir do estado atual do usuário.
// @Tags         Account
// @Accept       json
// @Produce      json
//
// @Param        request body RefreshRequest true "Refresh token"
//
// @Success      200  {object}  TokenResponse     "Novo par de tokens."
// @Failure      400  {object}  rest_err.RestErr  "JSON inválido."
// @Failure      401  {object}  rest_err.RestErr  "Refresh token inválido, expirado ou usuário indisponível."
// @Failure      500  {object}  rest_err.RestErr  "Erro interno do servidor."
//
// @Router       /api/account/token/refresh [post]
func (ctrl *controllerImpl) Refresh(c *gin.Context) {
	entry := newAudit(c, auditoria_log.ActionRefresh, "", rayTraceCode(c))

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		restErr := rest_err.NewBindingError(err)
		c.JSON(restErr.Code, restErr)
		return
	}

	pair, err := ctrl.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		var restErr *rest_err.RestErr
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			restErr = rest_err.NewUnauthorizedError(jwt.ErrTokenExpired.Error())
		case errors.Is(err, jwt.ErrTokenInvalid):
			restErr = rest_err.NewUnauthorizedError(jwt.ErrTokenInvalid.Error())
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountDisabled):
			restErr = rest_err.NewUnauthorizedError(err.Error())
		default:
			ctrl.logger.Error("[REFRESH] falha ao renovar tokens", zap.Error(err))
			restErr = rest_err.NewInternalServerError("internal server error", nil)
		}
		ctrl.audit(entry, req, restErr)
		c.JSON(restErr.Code, restErr)
		return
	}

	ctrl.audit(entry, req, nil)
	c.JSON(http.StatusOK, TokenResponse{Refresh: pair.Refresh, Access: pair.Access})
}

// @Summary      Identidade do portador do token
// @Description  Usado por outros serviços para validar um token de acesso remotamente.
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
//
// @Success      200  {object}  identity.Identity  "Identidade atual."
// @Failure      401  {object}  rest_err.RestErr   "Token inválido, expirado, ou usuário removido/desativado."
// @Failure      500  {object}  rest_err.RestErr   "Erro interno do servidor."
//
// @Router       /api/account/me [get]
func (ctrl *controllerImpl) Me(c *gin.Context) {
	id, err := uuid.Parse(identity.Get(c).UUID)
	if err != nil {
		restErr := rest_err.NewUnauthorizedError(jwt.ErrTokenInvalid.Error())
		c.JSON(restErr.Code, restErr)
		return
	}

	current, err := ctrl.service.Me(c.Request.Context(), id)
	if err != nil {
		var restErr *rest_err.RestErr
		switch {
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountDisabled):
			restErr = rest_err.NewUnauthorizedError("user not found or disabled")
		default:
			ctrl.logger.Error("[ME] falha ao carregar identidade", zap.Error(err))
			restErr = rest_err.NewInternalServerError("internal server error", nil)
		}
		c.JSON(restErr.Code, restErr)
		return
	}

	c.JSON(http.StatusOK, current)
}
