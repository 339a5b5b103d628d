package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "optimizer:lock"
	execKeyPrefix = "optimizer:exec"
)

// RunLocker garante no máximo uma execução do otimizador por conta e janela
// de tempo, e mantém o atalho de deduplicação de ações despachadas
type RunLocker interface {
	Acquire(ctx context.Context, accountID, timeBucket string) (bool, error)
	Release(ctx context.Context, accountID, timeBucket string) error
	MarkExecuted(ctx context.Context, actionKey string) error
	WasExecuted(ctx context.Context, actionKey string) (bool, error)
}

type runLocker struct {
	client  *goredis.Client
	lockTTL time.Duration
	execTTL time.Duration
}

func NewRunLocker(client *goredis.Client) RunLocker {
	return &runLocker{
		client:  client,
		lockTTL: 2 * time.Hour,
		execTTL: 48 * time.Hour,
	}
}

func lockKey(accountID, timeBucket string) string {
	return fmt.Sprintf("%s:%s:%s", lockKeyPrefix, accountID, timeBucket)
}

func execKey(actionKey string) string {
	return fmt.Sprintf("%s:%s", execKeyPrefix, actionKey)
}

// Acquire tenta adquirir o lock da conta para a janela. Retorna false quando
// outra execução já está em andamento.
func (r *runLocker) Acquire(ctx context.Context, accountID, timeBucket string) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKey(accountID, timeBucket), "1", r.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao adquirir o lock da conta %s: %w", accountID, err)
	}
	return ok, nil
}

func (r *runLocker) Release(ctx context.Context, accountID, timeBucket string) error {
	if err := r.client.Del(ctx, lockKey(accountID, timeBucket)).Err(); err != nil {
		return fmt.Errorf("erro ao liberar o lock da conta %s: %w", accountID, err)
	}
	return nil
}

// MarkExecuted registra a chave de idempotência de uma ação concluída.
// O banco continua sendo a fonte de verdade; o Redis é apenas o atalho.
func (r *runLocker) MarkExecuted(ctx context.Context, actionKey string) error {
	if err := r.client.Set(ctx, execKey(actionKey), "1", r.execTTL).Err(); err != nil {
		return fmt.Errorf("erro ao marcar a ação %s como executada: %w", actionKey, err)
	}
	return nil
}

func (r *runLocker) WasExecuted(ctx context.Context, actionKey string) (bool, error) {
	n, err := r.client.Exists(ctx, execKey(actionKey)).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao consultar a ação %s: %w", actionKey, err)
	}
	return n > 0, nil
}
