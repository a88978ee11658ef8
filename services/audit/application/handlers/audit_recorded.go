package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stockroom/pkg/logger"
	domainevents "github.com/ghuser/stockroom/services/audit/domain/events"
	"github.com/ghuser/stockroom/services/audit/domain/models"
	"github.com/ghuser/stockroom/services/audit/domain/repositories"
)

// AuditRecordedConsumer persists audit.recorded events into the audit log.
type AuditRecordedConsumer struct {
	repo repositories.AuditRepository
	log  logger.Logger
}

func NewAuditRecordedConsumer(repo repositories.AuditRepository, log logger.Logger) *AuditRecordedConsumer {
	return &AuditRecordedConsumer{repo: repo, log: log}
}

// Handle is an EventBus.Subscribe handler. A payload that cannot be decoded
// is logged and acked; storage errors are returned so the bus retries.
func (c *AuditRecordedConsumer) Handle(ctx context.Context, msg *message.Message) error {
	var ev domainevents.AuditRecordedEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		c.log.ErrorContext(ctx, "dropping undecodable audit event", "message_uuid", msg.UUID, "error", err)
		return nil
	}
	rec := models.Record{
		ID:         ev.EventID,
		Action:     ev.Action,
		Operator:   ev.Operator,
		OrderID:    ev.OrderID,
		Details:    ev.Details,
		OccurredAt: ev.OccurredAt,
	}
	if err := c.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("save audit record %s: %w", ev.EventID, err)
	}
	c.log.DebugContext(ctx, "audit record stored", "action", ev.Action, "operator", ev.Operator)
	return nil
}
