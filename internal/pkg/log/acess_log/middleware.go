package acess_log

import (
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

// Middleware emite uma linha de log por requisição e, com o serviço
// informado, enfileira o acesso para gravação em lote. O X-Request-ID
// recebido é propagado, ou um novo é gerado.
func Middleware(service string, svc *Service, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" {
			traceID = uuid.NewString()
			c.Request.Header.Set(HeaderRequestID, traceID)
		}
		c.Header(HeaderRequestID, traceID)

		c.Next()

		latency := time.Since(start)
		id := identity.Get(c)
		entry := AccessLog{
			Service:     service,
			Identifier:  id.Username,
			RequestID:   traceID,
			Method:      c.Request.Method,
			Route:       c.FullPath(),
			Path:        c.Request.URL.Path,
			StatusCode:  c.Writer.Status(),
			IP:          c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
			RequestTime: start.UTC(),
			LatencyMs:   float64(latency.Microseconds()) / 1000,
		}
		if parsed, err := uuid.Parse(id.UUID); err == nil {
			entry.UserUUID = &parsed
		}

		logger.Info("[HTTP]",
			zap.String("method", entry.Method),
			zap.String("path", entry.Path),
			zap.Int("status", entry.StatusCode),
			zap.Float64("latency_ms", entry.LatencyMs),
			zap.String("ip", entry.IP),
			zap.String("request_id", traceID))

		if svc != nil {
			svc.Record(entry)
		}
	}
}
