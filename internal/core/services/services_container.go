package services

import (
	portsrepo "github.com/SscSPs/pleasybank_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// analytics may be nil.
func NewServiceContainer(cfg *config.Config, backend portssvc.BackendClient, repos portsrepo.RepositoryProvider, analytics portssvc.AnalyticsClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.History = NewHistoryService(backend, backend,
		WithParallelThreshold(cfg.HistoryParallelThreshold),
		WithHistoryBackendTimeout(cfg.BackendTimeout),
	)
	container.Portfolio = NewPortfolioService(backend, cfg.BackendTimeout)

	settlementOptions := []SettlementServiceOption{
		WithSettlementLockTTL(cfg.SettlementLockTTL),
		WithSettlementBackendTimeout(cfg.BackendTimeout),
	}
	if analytics != nil {
		settlementOptions = append(settlementOptions, WithSettlementAnalytics(analytics))
	}
	container.Settlement = NewSettlementService(backend, repos.SettlementLocks, settlementOptions...)

	return container
}
