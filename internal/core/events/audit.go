package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/internship-management/pkg/logger"
)

const (
	LoginSucceeded     = "auth.login_succeeded"
	LoginFailed        = "auth.login_failed"
	LoggedOut          = "auth.logout"
	UserRoleChanged    = "user.role_changed"
	UserStatusChanged  = "user.status_changed"
	InternshipReviewed = "internship.status_changed"
)

// AuditTypes lists every audit event type emitted by the service.
func AuditTypes() []string {
	return []string{LoginSucceeded, LoginFailed, LoggedOut, UserRoleChanged, UserStatusChanged, InternshipReviewed}
}

func NewAuditEvent(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// AuditLogger writes audit events to the structured log, tagged with the
// request fields of the context they were published from.
func AuditLogger(lg *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
		}
		if data, ok := event.Payload().(map[string]interface{}); ok {
			for k, v := range data {
				attrs = append(attrs, k, v)
			}
		}
		logger.From(ctx, lg).InfoContext(ctx, "audit", attrs...)
		return nil
	}
}

// SubscribeAudit registers handler for every audit event type.
func SubscribeAudit(bus *EventBus, handler Handler) {
	for _, t := range AuditTypes() {
		bus.Subscribe(t, handler)
	}
}
