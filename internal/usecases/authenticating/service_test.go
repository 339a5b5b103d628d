package authenticating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	repomocks "github.com/vfg2006/ads-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

func authConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo-de-teste"
	return cfg
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           7,
		Name:         "Operadora",
		Email:        "op@exemplo.com",
		PasswordHash: string(hash),
		RoleID:       domain.RoleOperator,
		Active:       true,
	}
}

func TestLogin(t *testing.T) {
	log.SetupTestLogger()
	ctx := context.Background()

	t.Run("credenciais válidas emitem um token que valida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userMock := repomocks.NewMockUserRepository(ctrl)
		user := activeUser(t, "senha-forte")

		userMock.EXPECT().GetUserByEmail(ctx, "op@exemplo.com").Return(user, nil)
		userMock.EXPECT().UpdateLastLogin(ctx, 7).Return(nil)

		service := NewService(userMock, authConfig())

		token, loggedUser, err := service.Login(ctx, "  OP@Exemplo.com ", "senha-forte")
		require.NoError(t, err)
		assert.Equal(t, 7, loggedUser.ID)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, domain.RoleOperator, claims.UserRoleID)
		assert.Equal(t, "op@exemplo.com", claims.Email)
	})

	t.Run("senha errada retorna credenciais inválidas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userMock := repomocks.NewMockUserRepository(ctrl)
		userMock.EXPECT().GetUserByEmail(ctx, "op@exemplo.com").Return(activeUser(t, "senha-forte"), nil)

		service := NewService(userMock, authConfig())

		_, _, err := service.Login(ctx, "op@exemplo.com", "senha-errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("usuário inexistente não revela se o email existe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userMock := repomocks.NewMockUserRepository(ctrl)
		userMock.EXPECT().GetUserByEmail(ctx, "quem@exemplo.com").Return(nil, nil)

		service := NewService(userMock, authConfig())

		_, _, err := service.Login(ctx, "quem@exemplo.com", "qualquer")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("usuário desativado não loga", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		user := activeUser(t, "senha-forte")
		user.Active = false

		userMock := repomocks.NewMockUserRepository(ctrl)
		userMock.EXPECT().GetUserByEmail(ctx, "op@exemplo.com").Return(user, nil)

		service := NewService(userMock, authConfig())

		_, _, err := service.Login(ctx, "op@exemplo.com", "senha-forte")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})
}

func TestValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userMock := repomocks.NewMockUserRepository(ctrl)
	service := NewService(userMock, authConfig())

	t.Run("token adulterado é rejeitado", func(t *testing.T) {
		_, err := service.ValidateToken("cabecalho.corpo.assinatura")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token assinado com outro segredo é rejeitado", func(t *testing.T) {
		otherCfg := &config.Config{}
		otherCfg.Auth.Secret = "outro-segredo"
		otherService := NewService(userMock, otherCfg)

		ctx := context.Background()
		user := activeUser(t, "senha-forte")

		userMock.EXPECT().GetUserByEmail(ctx, "op@exemplo.com").Return(user, nil)
		userMock.EXPECT().UpdateLastLogin(ctx, 7).Return(nil)

		token, _, err := otherService.Login(ctx, "op@exemplo.com", "senha-forte")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
