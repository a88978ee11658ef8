package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicAuditRecorded carries audit records from the API to the worker.
const TopicAuditRecorded = "audit.recorded"

// AuditRecordedEvent is published once per audited action. EventID doubles
// as the audit_logs primary key so redelivery is idempotent.
type AuditRecordedEvent struct {
	EventID    uuid.UUID      `json:"event_id"`
	Version    int            `json:"version"`
	Action     string         `json:"action"`
	Operator   string         `json:"operator"`
	OrderID    *uuid.UUID     `json:"order_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
