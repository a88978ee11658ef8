package services

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/operator"
	domainevents "github.com/ghuser/stockroom/services/audit/domain/events"
)

// Publisher is the part of the event bus the trail needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// AuditTrail records actions on the audit.recorded topic. Recording never
// fails the caller: publish errors are logged at warn and dropped.
type AuditTrail struct {
	pub             Publisher
	log             logger.Logger
	defaultOperator string
	now             func() time.Time
}

// NewAuditTrail returns a trail publishing through pub. A nil pub turns
// Record into a debug log line.
func NewAuditTrail(pub Publisher, defaultOperator string, log logger.Logger) *AuditTrail {
	return &AuditTrail{pub: pub, log: log, defaultOperator: defaultOperator, now: time.Now}
}

// Record publishes one audit record attributed to the operator in ctx.
func (t *AuditTrail) Record(ctx context.Context, action string, orderID *uuid.UUID, details map[string]any) {
	if t == nil {
		return
	}
	who, ok := operator.DeviceFromCtx(ctx)
	if !ok {
		who = t.defaultOperator
	}
	event := domainevents.AuditRecordedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Action:     action,
		Operator:   who,
		OrderID:    orderID,
		Details:    details,
		OccurredAt: t.now().UTC(),
	}
	if t.pub == nil {
		t.log.DebugContext(ctx, "audit trail disabled", "action", action)
		return
	}

	msg, err := events.NewJSONMessage(event.EventID.String(), event.Version, event)
	if err != nil {
		t.log.WarnContext(ctx, "audit record dropped", "action", action, "error", err)
		return
	}
	// the primary operation has already committed; a cancelled request must
	// not drop its audit line
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := t.pub.Publish(ctx, domainevents.TopicAuditRecorded, msg); err != nil {
		t.log.WarnContext(ctx, "audit record dropped", "action", action, "error", err)
	}
}
