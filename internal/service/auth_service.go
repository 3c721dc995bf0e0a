package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vistoriapro/api/internal/auth"
	"github.com/vistoriapro/api/internal/usuario"
)

var (
	// ErrInvalidCredentials indica falha na autenticação.
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	// ErrAccountDisabled indica conta desativada.
	ErrAccountDisabled = errors.New("conta desativada")
	// ErrRefreshInvalid indica refresh token inválido ou expirado.
	ErrRefreshInvalid = errors.New("refresh token inválido")
)

type usuarioRepository interface {
	Create(ctx context.Context, nome, email, senhaHash string) (usuario.Usuario, error)
	FindByEmail(ctx context.Context, email string) (usuario.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (usuario.Usuario, error)
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// AuthService concentra regras de autenticação e sessões.
type AuthService struct {
	usuarios   usuarioRepository
	redis      redisCommander
	jwt        *auth.JWTManager
	refreshTTL time.Duration
}

// NewAuthService cria novo serviço.
func NewAuthService(usuarios usuarioRepository, redisClient redisCommander, jwtMgr *auth.JWTManager, refreshTTL time.Duration) *AuthService {
	return &AuthService{usuarios: usuarios, redis: redisClient, jwt: jwtMgr, refreshTTL: refreshTTL}
}

// JWT expõe gerenciador de JWT (útil em middlewares).
func (s *AuthService) JWT() *auth.JWTManager {
	return s.jwt
}

// Profile descreve o dono da sessão para o frontend.
type Profile struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// LoginResult representa o retorno padrão das autenticações.
type LoginResult struct {
	AccessToken   string
	RefreshToken  string
	Subject       uuid.UUID
	Profile       *Profile
	RefreshExpiry time.Time
}

// Register cria uma conta nova e já abre a sessão.
func (s *AuthService) Register(ctx context.Context, nome, email, senha string) (*LoginResult, error) {
	if len(senha) < 8 {
		return nil, errors.New("senha deve ter pelo menos 8 caracteres")
	}

	hash, err := auth.Hash(senha)
	if err != nil {
		return nil, err
	}

	user, err := s.usuarios.Create(ctx, nome, email, hash)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Login autentica com e-mail e senha.
func (s *AuthService) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	user, err := s.usuarios.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		log.Warn().Msg("login: usuário não encontrado")
		return nil, ErrInvalidCredentials
	}

	ok, err := auth.Verify(senha, user.SenhaHash)
	if err != nil {
		log.Warn().Err(err).Msg("login: falha ao verificar senha")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		log.Warn().Msg("login: senha inválida")
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Refresh troca o refresh token por uma sessão nova (rotação obrigatória).
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*LoginResult, error) {
	if rawToken == "" {
		return nil, ErrRefreshInvalid
	}

	hash := auth.HashRefreshToken(rawToken)
	key := auth.RefreshRedisKey(hash)

	subjectStr, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrRefreshInvalid
	}
	if err != nil {
		return nil, err
	}

	subject, err := uuid.Parse(subjectStr)
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	user, err := s.usuarios.FindByID(ctx, subject)
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	// Token antigo morre junto com a rotação.
	if err := s.redis.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return nil, err
	}

	return result, nil
}

// Logout revoga o refresh token atual.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	key := auth.RefreshRedisKey(auth.HashRefreshToken(rawToken))
	if err := s.redis.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

// Me retorna o perfil do dono da sessão.
func (s *AuthService) Me(ctx context.Context, subject uuid.UUID) (*Profile, error) {
	user, err := s.usuarios.FindByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	return &Profile{ID: user.ID.String(), Nome: user.Nome, Email: user.Email}, nil
}

func (s *AuthService) openSession(ctx context.Context, user usuario.Usuario) (*LoginResult, error) {
	if !user.Ativo {
		return nil, ErrAccountDisabled
	}

	token, _, err := s.jwt.GenerateAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	rawRefresh, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	expires := time.Now().UTC().Add(s.refreshTTL)
	key := auth.RefreshRedisKey(refreshHash)
	if err := s.redis.Set(ctx, key, user.ID.String(), time.Until(expires)).Err(); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:   token,
		RefreshToken:  rawRefresh,
		Subject:       user.ID,
		Profile:       &Profile{ID: user.ID.String(), Nome: user.Nome, Email: user.Email},
		RefreshExpiry: expires,
	}, nil
}
