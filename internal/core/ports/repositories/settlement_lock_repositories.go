package repositories

import (
	"context"
	"time"
)

// SettlementLockRepository guards "one active settlement workflow per account" across
// every BFF instance. Locks expire after their TTL so a crashed instance cannot hold an
// account forever.
type SettlementLockRepository interface {
	// AcquireSettlementLock takes the lock for accountID. It returns false, without an
	// error, when another owner holds it.
	AcquireSettlementLock(ctx context.Context, accountID string, owner string, ttl time.Duration) (bool, error)

	// ExtendSettlementLock renews the TTL of a lock held by owner, taking it again if it
	// expired meanwhile. It returns false when another owner holds the lock.
	ExtendSettlementLock(ctx context.Context, accountID string, owner string, ttl time.Duration) (bool, error)

	// ReleaseSettlementLock releases the lock if owner still holds it.
	ReleaseSettlementLock(ctx context.Context, accountID string, owner string) error
}
