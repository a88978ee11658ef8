package services

import (
	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/services/order/domain/repositories"
	"github.com/ghuser/stockroom/services/order/infrastructure/persistence/memory"
	"github.com/ghuser/stockroom/services/order/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Store     *OrderStore
	Export    *ExportService
	Summaries *SummaryService
}

// New wires the order store to PostgreSQL (in-memory when no database is
// configured), the revision log, the audit trail, the object store and the
// summary cache.
func New(a *app.Application, revisions RevisionRecorder, audit AuditRecorder) *Services {
	var repo repositories.OrderRepository
	if a.Db != nil {
		repo = postgres.NewOrderRepository(a.Db, a.EventBus)
	} else {
		a.Logger.Warn("no database configured, orders are kept in memory")
		repo = memory.NewOrderRepository()
	}
	store := NewOrderStore(repo, revisions, audit, a.Logger, a.Metrics)

	var objects ObjectStore
	if a.ObjectStore != nil {
		objects = a.ObjectStore
	}
	var summaries SummaryCache
	if a.Redis != nil {
		summaries = cache.NewOrderSummaryCache(a.Redis)
	}

	return &Services{
		Store:     store,
		Export:    NewExportService(store, objects, a.Logger),
		Summaries: NewSummaryService(store, summaries, a.Logger),
	}
}
