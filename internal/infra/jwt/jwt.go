package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// variável global privada que guarda a instância única
var singleton *TokenGenerator

// Claims é o conteúdo assinado de um token: identifica o sujeito e carrega
// as permissões vigentes no momento da emissão.
type Claims struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	TokenType   string   `json:"token_type"`
	jwt.RegisteredClaims
}

// Subject é o que o emissor precisa saber sobre o usuário para assinar.
type Subject struct {
	UUID        uuid.UUID
	Username    string
	Email       string
	Permissions []string
}

type TokenPair struct {
	Access        string
	AccessExpiry  time.Time
	Refresh       string
	RefreshExpiry time.Time
}

type TokenGenerator struct {
	accessSecretKey  []byte
	refreshSecretKey []byte
	issuer           string
	accessExpiry     time.Duration
	refreshExpiry    time.Duration
	now              func() time.Time
}

type Config struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// NewTokenGenerator valida a configuração e cria o gerador.
func NewTokenGenerator(cfg Config) (*TokenGenerator, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("jwt secrets cannot be empty")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("jwt issuer cannot be empty")
	}
	if cfg.AccessExpiry <= 0 || cfg.RefreshExpiry <= 0 {
		return nil, fmt.Errorf("token expiry must be positive")
	}

	return &TokenGenerator{
		accessSecretKey:  []byte(cfg.AccessSecret),
		refreshSecretKey: []byte(cfg.RefreshSecret),
		issuer:           cfg.Issuer,
		accessExpiry:     cfg.AccessExpiry,
		refreshExpiry:    cfg.RefreshExpiry,
		now:              time.Now,
	}, nil
}

// Init inicializa o singleton (chame isso apenas uma vez, no bootstrap).
func Init(cfg Config) error {
	tg, err := NewTokenGenerator(cfg)
	if err != nil {
		return err
	}
	singleton = tg
	return nil
}

// Use retorna a instância global.
func Use() *TokenGenerator {
	if singleton == nil {
		panic("jwt package not initialized: call jwt.Init(cfg) on startup")
	}
	return singleton
}

func (tg *TokenGenerator) IssuePair(s Subject) (TokenPair, error) {
	access, accessExp, err := tg.sign(s, TypeAccess, tg.accessExpiry, tg.accessSecretKey)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, refreshExp, err := tg.sign(s, TypeRefresh, tg.refreshExpiry, tg.refreshSecretKey)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{
		Access:        access,
		AccessExpiry:  accessExp,
		Refresh:       refresh,
		RefreshExpiry: refreshExp,
	}, nil
}

func (tg *TokenGenerator) sign(s Subject, tokenType string, ttl time.Duration, key []byte) (string, time.Time, error) {
	now := tg.now().UTC()
	expirationTime := now.Add(ttl)

	permissions := s.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	claims := &Claims{
		UserID:      s.UUID.String(),
		Username:    s.Username,
		Email:       s.Email,
		Permissions: permissions,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.UUID.String(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tg.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

func (tg *TokenGenerator) ParseAccess(token string) (*Claims, error) {
	return Parse(token, tg.accessSecretKey, TypeAccess)
}

func (tg *TokenGenerator) ParseRefresh(token string) (*Claims, error) {
	return Parse(token, tg.refreshSecretKey, TypeRefresh)
}

// Parse verifica assinatura (somente HS256), expiração e tipo do token.
// Não faz nenhuma chamada de rede.
func Parse(token string, key []byte, tokenType string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if tokenType != "" && claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrTokenInvalid, claims.TokenType)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrTokenInvalid)
	}
	if claims.Permissions == nil {
		claims.Permissions = []string{}
	}
	return claims, nil
}
