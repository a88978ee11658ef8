package services

import (
	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/services/audit/domain/repositories"
	"github.com/ghuser/stockroom/services/audit/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Trail *AuditTrail
	Logs  repositories.AuditRepository // nil without a database
}

// New wires the audit trail to the event bus and the audit_logs reader.
func New(a *app.Application) *Services {
	var pub Publisher
	if a.EventBus != nil {
		pub = a.EventBus
	}
	s := &Services{Trail: NewAuditTrail(pub, a.Config.DefaultOperator, a.Logger)}
	if a.Db != nil {
		s.Logs = postgres.NewAuditRepository(a.Db)
	}
	return s
}
