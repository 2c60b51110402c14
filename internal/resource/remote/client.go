package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// MePath é o endpoint de introspecção do serviço de contas.
const MePath = "/api/account/me"

const DefaultTimeout = 5 * time.Second

var (
	// ErrUpstreamUnavailable cobre timeout, erro de transporte, 5xx e
	// respostas 200 ilegíveis. Nunca é cacheado.
	ErrUpstreamUnavailable = errors.New("identity upstream unavailable")
	// ErrRejected é a recusa definitiva do token (4xx).
	ErrRejected = errors.New("token rejected by identity upstream")
)

// Resolver troca um cabeçalho Authorization pela identidade do portador.
type Resolver interface {
	Me(ctx context.Context, authorization string) (identity.Identity, error)
}

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient cria o cliente do endpoint "me". Sem retentativas: o timeout é
// o limite total da chamada.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   client,
		logger: logger,
	}
}

func (c *Client) Me(ctx context.Context, authorization string) (identity.Identity, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", authorization).
		Get(MePath)
	if err != nil {
		return identity.Anonymous(), fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusOK:
		id, err := identity.Decode(resp.Body())
		if err != nil {
			return identity.Anonymous(), fmt.Errorf("%w: decode identity: %v", ErrUpstreamUnavailable, err)
		}
		return id, nil
	case status >= 400 && status < 500:
		return identity.Anonymous(), fmt.Errorf("%w: status %d", ErrRejected, status)
	default:
		return identity.Anonymous(), fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, status)
	}
}
