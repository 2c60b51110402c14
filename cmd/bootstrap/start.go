package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Joker-Pro-Max/Basalt/cmd/server"
	"github.com/Joker-Pro-Max/Basalt/cmd/server/routes"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/application/account"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/user"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/middleware"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/database/postgres"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/acess_log"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/auditoria_log"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/logger"
	"github.com/Joker-Pro-Max/Basalt/internal/resource"
	"github.com/Joker-Pro-Max/Basalt/internal/resource/local"
	"github.com/Joker-Pro-Max/Basalt/internal/resource/remote"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok/v2"
)

var ErrUnknownService = errors.New("unknown service")

// Application armazena as dependências centrais da aplicação.
type Application struct {
	service string
	server  *server.HTTPServer
	logger  *zap.Logger
	// logQueues são drenadas ao encerrar, por sinal ou por falha do servidor.
	logQueues map[string]func(context.Context) error
}

// New prepara a aplicação (config, db, di) do serviço escolhido e retorna a instância.
func New(service string) (*Application, error) {
	if err := Environment(); err != nil {
		return nil, err
	}
	v := viper.GetViper()

	log, err := logger.Init(v.GetString("app.env"))
	if err != nil {
		return nil, fmt.Errorf("[BOOTSTRAP-ENV] %w", err)
	}
	log.Info("[BOOTSTRAP-ENV] Configuração de ambiente carregada.", zap.String("service", service))

	store, err := cache.New(cacheConfig(v))
	if err != nil {
		return nil, fmt.Errorf("[BOOTSTRAP-CACHE] %w", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx, store); err != nil {
		log.Warn("[BOOTSTRAP-CACHE] Cache indisponível, seguindo sem garantia de cache", zap.Error(err))
	}

	router, err := routes.SetupRouter(v.GetString("app.env"))
	if err != nil {
		return nil, err
	}

	switch service {
	case ServiceAccount:
		err = initAccount(v, router, store, log)
	case ServiceResource:
		err = initResource(v, router, store, log)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
	if err != nil {
		return nil, err
	}
	log.Info("[BOOTSTRAP-DI] Contêiner de dependências inicializado.")

	return &Application{
		service: service,
		server:  server.NewHTTPServer(router, v.GetInt("server.http.port"), log),
		logger:  log,
		logQueues: map[string]func(context.Context) error{
			"auditoria": auditoria_log.Close,
			"acesso":    acess_log.Close,
		},
	}, nil
}

func initAccount(v *viper.Viper, router *gin.Engine, store cache.Store, log *zap.Logger) error {
	if err := jwt.Init(jwtConfig(v)); err != nil {
		// Erro fatal, a aplicação não pode subir sem o gerador de token
		return fmt.Errorf("[BOOTSTRAP-TOKEN] Falha ao criar gerador de token: %w", err)
	}
	tokens := jwt.Use()
	log.Info("[BOOTSTRAP-TOKEN] Gerador de token inicializado.")

	db, err := postgres.InitPostgres(postgres.ConfigFromViper(), log)
	if err != nil {
		return fmt.Errorf("[BOOTSTRAP-DATABASE] %w", err)
	}
	log.Info("[BOOTSTRAP-DATABASE] Conexão com o banco de dados inicializada.")

	logEnabled := v.GetBool("log.enabled")
	batchCfg := logBatchConfig(v)
	if _, err := auditoria_log.New(db, auditoria_log.Config{Enabled: logEnabled && v.GetBool("log.audit.enabled"), Batch: batchCfg}, log); err != nil {
		log.Info("[BOOTSTRAP-LOG] Auditoria desativada", zap.Error(err))
	}
	accessLog, err := acess_log.New(db, acess_log.Config{Enabled: logEnabled && v.GetBool("log.access.enabled"), Batch: batchCfg}, log)
	if err != nil {
		log.Info("[BOOTSTRAP-LOG] Log de acesso persistente desativado", zap.Error(err))
	}
	router.Use(acess_log.Middleware(ServiceAccount, accessLog, log))

	mw := middleware.NewMiddleware(tokens, log)
	systems, err := system.New(db, store, seconds(v, "cache.system_ttl_sec"), mw, log)
	if err != nil {
		return err
	}
	users, err := user.New(db, systems, mw, log)
	if err != nil {
		return err
	}
	accounts, err := account.New(users.Service, tokens, mw, log)
	if err != nil {
		return err
	}

	routes.SetupAccountRoutes(router, accounts.Controller, users.Controller, systems.Controller)
	return nil
}

func initResource(v *viper.Viper, router *gin.Engine, store cache.Store, log *zap.Logger) error {
	router.Use(acess_log.Middleware(ServiceResource, nil, log))

	var authenticate gin.HandlerFunc
	switch mode := v.GetString("resource.auth_mode"); mode {
	case AuthModeRemote:
		host := v.GetString("resource.account_api_host")
		client := remote.NewClient(host, seconds(v, "resource.timeout_sec"), log)
		authenticate = remote.NewMiddleware(client, store, identityCacheConfig(v), log).Handler()
		log.Info("[BOOTSTRAP-AUTH] Autenticação remota", zap.String("account_api_host", host))
	case AuthModeLocal:
		authenticator, err := local.NewAuthenticator(v.GetString("security.jwt_access_secret"), log)
		if err != nil {
			return fmt.Errorf("[BOOTSTRAP-AUTH] %w", err)
		}
		authenticate = authenticator.Handler()
		log.Info("[BOOTSTRAP-AUTH] Autenticação local por JWT")
	default:
		return fmt.Errorf("[BOOTSTRAP-AUTH] modo de autenticação inválido: %q", mode)
	}

	routes.SetupResourceRoutes(router, resource.NewController(authenticate, resource.DefaultPictures))
	return nil
}

func startNgrokForward(ctx context.Context, token string, port int, log *zap.Logger) error {
	agent, err := ngrok.NewAgent(
		ngrok.WithAuthtoken(token),
		ngrok.WithAutoConnect(true),
	)
	if err != nil {
		return fmt.Errorf("erro criando ngrok Agent: %w", err)
	}

	upstream := ngrok.WithUpstream(fmt.Sprintf("http://127.0.0.1:%d", port))

	endpoint, err := agent.Forward(ctx, upstream)
	if err != nil {
		var ngErr ngrok.Error
		if errors.As(err, &ngErr) {
			log.Error("[NGROK] erro ao criar forward", zap.String("code", ngErr.Code()), zap.Error(ngErr))
		}
		return fmt.Errorf("erro iniciando ngrok Forward: %w", err)
	}

	log.Info("[NGROK] Endpoint online", zap.Stringer("url", endpoint.URL()))

	// Fica vivo até o ctx da aplicação ser cancelado
	<-ctx.Done()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := endpoint.CloseWithContext(closeCtx); err != nil {
		return fmt.Errorf("erro ao fechar endpoint ngrok: %w", err)
	}

	if err := agent.Disconnect(); err != nil {
		return fmt.Errorf("erro ao desconectar ngrok Agent: %w", err)
	}

	return nil
}

// drainLogs grava o que restou nas filas de auditoria e acesso.
func (a *Application) drainLogs(ctx context.Context) {
	for name, closeQueue := range a.logQueues {
		if err := closeQueue(ctx); err != nil {
			a.logger.Warn("[BOOTSTRAP-LOG] fila não drenada", zap.String("queue", name), zap.Error(err))
		}
	}
}

func (a *Application) Start(ctx context.Context) error {
	defer logger.Sync()
	a.logger.Info("[BOOTSTRAP] Iniciando servidor",
		zap.String("service", a.service),
		zap.String("env", viper.GetString("app.env")),
	)

	errCh := make(chan error, 1)

	go func() {
		errCh <- a.server.Start()
	}()

	if viper.GetBool("test.ngrok.live") {
		token := viper.GetString("test.ngrok.token")
		if token == "" {
			a.logger.Warn("[NGROK] test.ngrok.live=true mas test.ngrok.token está vazio; ngrok NÃO será iniciado")
		} else {
			port := viper.GetInt("server.http.port")
			go func() {
				if err := startNgrokForward(ctx, token, port, a.logger); err != nil {
					a.logger.Error("[NGROK] erro", zap.Error(err))
				}
			}()
		}
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("falha ao encerrar servidor: %w", err)
		}
		a.drainLogs(shutdownCtx)
		return <-errCh

	case err := <-errCh:
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.drainLogs(drainCtx)
		return err
	}
}
