package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

func newMockRepository(t *testing.T) (AccountRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{DB: db}
	return NewAccountRepository(conn), mock
}

func TestAccountRepository_GetAccountByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Deve retornar a conta com os overrides desserializados", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		rows := sqlmock.NewRows([]string{
			"id", "external_id", "name", "status", "optimizer_enabled",
			"target_cpr", "scoring_overrides", "created_at", "updated_at",
		}).AddRow(
			"acc_1", "123456", "Conta Principal", "ACTIVE", true,
			4.5, []byte(`{"target_cpr":3.0}`), now, now,
		)

		mock.ExpectQuery("SELECT .+ FROM accounts a WHERE a.id = \\$1").
			WithArgs("acc_1").
			WillReturnRows(rows)

		account, err := repo.GetAccountByID(ctx, "acc_1")

		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "acc_1", account.ID)
		assert.Equal(t, "123456", account.ExternalID)
		assert.True(t, account.OptimizerEnabled)
		assert.Equal(t, 4.5, account.TargetCPR)
		require.NotNil(t, account.Overrides)
		require.NotNil(t, account.Overrides.TargetCPR)
		assert.Equal(t, 3.0, *account.Overrides.TargetCPR)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve retornar nil quando a conta não existe", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("SELECT .+ FROM accounts a WHERE a.id = \\$1").
			WithArgs("acc_missing").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "external_id", "name", "status", "optimizer_enabled",
				"target_cpr", "scoring_overrides", "created_at", "updated_at",
			}))

		account, err := repo.GetAccountByID(ctx, "acc_missing")

		require.NoError(t, err)
		assert.Nil(t, account)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_ListOptimizerEnabled(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Deve listar apenas contas ativas com o otimizador habilitado", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		rows := sqlmock.NewRows([]string{
			"id", "external_id", "name", "status", "optimizer_enabled",
			"target_cpr", "scoring_overrides", "created_at", "updated_at",
		}).
			AddRow("acc_1", "123", "Conta A", "ACTIVE", true, 4.0, nil, now, now).
			AddRow("acc_2", "456", "Conta B", "ACTIVE", true, 2.5, nil, now, now)

		mock.ExpectQuery("SELECT .+ FROM accounts a WHERE").
			WillReturnRows(rows)

		accounts, err := repo.ListOptimizerEnabled(ctx)

		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, "Conta A", accounts[0].Name)
		assert.Nil(t, accounts[0].Overrides)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_UpdateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve atualizar apenas os campos presentes na requisição", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		enabled := true
		target := 3.5
		req := &domain.UpdateAdAccountRequest{
			OptimizerEnabled: &enabled,
			TargetCPR:        &target,
		}

		mock.ExpectExec("UPDATE accounts SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateAccount(ctx, "acc_1", req)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve retornar erro quando a conta não existe", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		name := "Novo Nome"
		req := &domain.UpdateAdAccountRequest{Name: &name}

		mock.ExpectExec("UPDATE accounts SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateAccount(ctx, "acc_missing", req)

		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
