package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/pleasybank_client/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces settlement lock keys.
const DefaultKeyPrefix = "pleasybank:settlement-lock"

// extendScript renews the lock when the caller still owns it, or takes it back if it
// expired in the meantime.
var extendScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current == false or current == ARGV[1] then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
	return 1
end
return 0
`)

// releaseScript deletes the lock only when the caller owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockRepository shares settlement locks between instances through Redis.
type RedisLockRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisLockRepository creates a lock repository on top of an existing client.
func NewRedisLockRepository(client redis.UniversalClient) *RedisLockRepository {
	return &RedisLockRepository{client: client, prefix: DefaultKeyPrefix}
}

var _ portsrepo.SettlementLockRepository = (*RedisLockRepository)(nil)

func (r *RedisLockRepository) key(accountID string) string {
	return r.prefix + ":" + accountID
}

func (r *RedisLockRepository) AcquireSettlementLock(ctx context.Context, accountID string, owner string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(accountID), owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire settlement lock for account %s: %w", accountID, err)
	}
	return ok, nil
}

func (r *RedisLockRepository) ExtendSettlementLock(ctx context.Context, accountID string, owner string, ttl time.Duration) (bool, error) {
	renewed, err := extendScript.Run(ctx, r.client, []string{r.key(accountID)}, owner, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("extend settlement lock for account %s: %w", accountID, err)
	}
	return renewed == 1, nil
}

func (r *RedisLockRepository) ReleaseSettlementLock(ctx context.Context, accountID string, owner string) error {
	err := releaseScript.Run(ctx, r.client, []string{r.key(accountID)}, owner).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release settlement lock for account %s: %w", accountID, err)
	}
	return nil
}
