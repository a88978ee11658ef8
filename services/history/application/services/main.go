package services

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/services/history/domain/repositories"
	"github.com/ghuser/stockroom/services/history/infrastructure/persistence/memory"
	"github.com/ghuser/stockroom/services/history/infrastructure/persistence/redis"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Log      *RevisionLog
	Revert   *RevertCoordinator
	Sessions sessions.Store // operator sessions, used by the operator endpoints
}

// NewRevisionLogFor builds the revision log on Redis when configured, in
// memory otherwise. It is created before the order store, which appends to it.
func NewRevisionLogFor(a *app.Application, audit AuditRecorder) *RevisionLog {
	var store repositories.RevisionStore
	if a.Redis != nil {
		store = redis.NewRevisionStore(a.Redis)
	} else {
		a.Logger.Warn("no redis configured, revision log is not persisted")
		store = memory.NewRevisionStore()
	}
	return NewRevisionLog(store, audit, a.Config.DefaultOperator, a.Logger)
}

// New wires the revert flow over the revision log and the order store.
func New(a *app.Application, revisions *RevisionLog, orders DatasetReplacer) *Services {
	return &Services{
		Log:      revisions,
		Revert:   NewRevertCoordinator(revisions, orders, a.Config.RevertPassphrase, a.Config.DefaultOperator, a.Logger, a.Metrics),
		Sessions: a.SessionStore,
	}
}
