package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/audit/application/services"
	domainevents "github.com/ghuser/stockroom/services/audit/domain/events"
	"github.com/ghuser/stockroom/services/audit/domain/models"
)

type memoryAuditRepo struct {
	saved   []models.Record
	saveErr error
}

func (m *memoryAuditRepo) Save(_ context.Context, rec models.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, rec)
	return nil
}

func (m *memoryAuditRepo) Recent(_ context.Context, limit int) ([]models.Record, error) {
	if limit > len(m.saved) {
		limit = len(m.saved)
	}
	return m.saved[:limit], nil
}

func TestAuditRecordedConsumer(t *testing.T) {
	repo := &memoryAuditRepo{}
	c := NewAuditRecordedConsumer(repo, logger.Discard())

	ev := domainevents.AuditRecordedEvent{EventID: uuid.New(), Version: 1, Action: models.ActionCreateOrder, Operator: "PC-1000", OccurredAt: time.Now().UTC()}
	msg, err := events.NewJSONMessage(ev.EventID.String(), 1, ev)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != ev.EventID {
		t.Fatalf("saved = %+v", repo.saved)
	}

	if err := c.Handle(context.Background(), message.NewMessage("x", []byte("{"))); err != nil {
		t.Fatalf("undecodable payload should be acked, got %v", err)
	}

	repo.saveErr = errors.New("db down")
	if err := c.Handle(context.Background(), msg); err == nil {
		t.Fatal("expected storage error to be returned for retry")
	}
}

func TestGetAuditHandler(t *testing.T) {
	repo := &memoryAuditRepo{saved: []models.Record{
		{ID: uuid.New(), Action: models.ActionDeleteOrder, Operator: "PC-1000", OccurredAt: time.Now().UTC()},
	}}
	h := NewGetAuditHandler(&appsvcs.Services{Logs: repo})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"default limit", "/audit", http.StatusOK},
		{"explicit limit", "/audit?limit=10", http.StatusOK},
		{"bad limit", "/audit?limit=abc", http.StatusBadRequest},
		{"limit too large", "/audit?limit=501", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Execute(rr, httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want != http.StatusOK {
				return
			}
			var resp AuditResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if len(resp.Records) != 1 || resp.Records[0].Action != models.ActionDeleteOrder {
				t.Fatalf("records = %+v", resp.Records)
			}
		})
	}
}

func TestGetAuditHandler_NoDatabase(t *testing.T) {
	rr := httptest.NewRecorder()
	NewGetAuditHandler(&appsvcs.Services{}).Execute(rr, httptest.NewRequest(http.MethodGet, "/audit", http.NoBody))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}
