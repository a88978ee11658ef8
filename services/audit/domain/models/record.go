package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions.
const (
	ActionCreateOrder     = "CREATE_ORDER"
	ActionUpdateOrder     = "UPDATE_ORDER"
	ActionDeleteOrder     = "DELETE_ORDER"
	ActionRestoreDatabase = "RESTORE_DATABASE"
	ActionHistorySnapshot = "HISTORY_SNAPSHOT"
)

// Record is one audit log line: an action, who performed it and free-form
// details.
type Record struct {
	ID         uuid.UUID
	Action     string
	Operator   string
	OrderID    *uuid.UUID
	Details    map[string]any
	OccurredAt time.Time
}
