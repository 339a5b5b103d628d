package authenticating

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/apiErrors"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

// Validade do token emitido no login
const tokenTTL = 12 * time.Hour

// Authenticator autentica operadores e valida os tokens da API
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
}

// Service implementa a interface Authenticator
type Service struct {
	userRepository repository.UserRepository
	cfg            *config.Config
}

// NewService cria uma nova instância do serviço de autenticação
func NewService(userRepository repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepository: userRepository,
		cfg:            cfg,
	}
}

// Login valida as credenciais do operador e emite um token JWT
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha inválidos")
	}

	if !user.Active {
		return "", nil, NewAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, "Usuário desativado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha inválidos")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	if err := s.userRepository.UpdateLastLogin(ctx, user.ID); err != nil {
		// O login vale mesmo sem o carimbo de último acesso
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Warn("Falha ao registrar o último acesso do usuário")
	}

	return token, user, nil
}

// ValidateToken valida a assinatura e a expiração de um token emitido no login
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido ou expirado")
	}

	return claims, nil
}

// GetUserProfile retorna o perfil do operador autenticado
func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}
	return user, nil
}

func (s *Service) generateToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := &domain.Claims{
		UserID:     user.ID,
		UserRoleID: user.RoleID,
		Email:      user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
