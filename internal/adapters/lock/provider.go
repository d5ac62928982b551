package lock

import (
	portsrepo "github.com/SscSPs/pleasybank_client/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// NewRepositoryProvider backs the settlement locks with Redis when a client is given, and
// with process memory otherwise. Memory locks only hold within one replica.
func NewRepositoryProvider(client redis.UniversalClient) portsrepo.RepositoryProvider {
	if client == nil {
		return portsrepo.RepositoryProvider{SettlementLocks: NewMemoryLockRepository()}
	}
	return portsrepo.RepositoryProvider{SettlementLocks: NewRedisLockRepository(client)}
}
