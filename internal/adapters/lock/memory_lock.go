package lock

import (
	"context"
	"sync"
	"time"

	portsrepo "github.com/SscSPs/pleasybank_client/internal/core/ports/repositories"
)

type memoryLease struct {
	owner     string
	expiresAt time.Time
}

// MemoryLockRepository keeps settlement locks in process memory. It only guards a single
// instance; use RedisLockRepository when several instances serve the same users.
type MemoryLockRepository struct {
	mu     sync.Mutex
	leases map[string]memoryLease
	now    func() time.Time
}

// NewMemoryLockRepository creates an empty in-memory lock table.
func NewMemoryLockRepository() *MemoryLockRepository {
	return &MemoryLockRepository{
		leases: make(map[string]memoryLease),
		now:    time.Now,
	}
}

var _ portsrepo.SettlementLockRepository = (*MemoryLockRepository)(nil)

func (r *MemoryLockRepository) AcquireSettlementLock(_ context.Context, accountID string, owner string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if lease, ok := r.leases[accountID]; ok && now.Before(lease.expiresAt) {
		return false, nil
	}
	r.leases[accountID] = memoryLease{owner: owner, expiresAt: now.Add(ttl)}
	return true, nil
}

func (r *MemoryLockRepository) ExtendSettlementLock(_ context.Context, accountID string, owner string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if lease, ok := r.leases[accountID]; ok && lease.owner != owner && now.Before(lease.expiresAt) {
		return false, nil
	}
	r.leases[accountID] = memoryLease{owner: owner, expiresAt: now.Add(ttl)}
	return true, nil
}

func (r *MemoryLockRepository) ReleaseSettlementLock(_ context.Context, accountID string, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lease, ok := r.leases[accountID]; ok && lease.owner == owner {
		delete(r.leases, accountID)
	}
	return nil
}
