package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"patientflow/config"
	"patientflow/infras/kafka"
	"patientflow/infras/otel"
	"patientflow/shared/constant"
	"patientflow/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	ActionCheckIn       = "queue.check_in"
	ActionCallNext      = "queue.call_next"
	ActionStatusChanged = "queue.status_changed"
	ActionStageAdvanced = "queue.stage_advanced"
	ActionCancelled     = "queue.cancelled"
	ActionNoShow        = "queue.no_show"
	ActionRemoved       = "queue.removed"
	ActionRoomBooked    = "booking.created"
	ActionRoomLinked    = "booking.linked_to_visit"
)

// ActivityEvent is the audit record pushed to the activity topic for every
// flow operation. Consumers (reporting, the activity log UI) are external.
type ActivityEvent struct {
	Action      string `json:"action"`
	TenantScope string `json:"tenant_scope"`
	EntityID    string `json:"entity_id"`
	PatientID   string `json:"patient_id,omitempty"`
	Department  string `json:"department,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Actor       string `json:"actor,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

type Publisher interface {
	PublishActivity(ctx context.Context, event ActivityEvent)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// PublishActivity sends the event fire-and-forget; an unreachable broker must
// never fail the patient-facing operation.
func (p *publisherImpl) PublishActivity(ctx context.Context, event ActivityEvent) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishActivity")
	defer scope.End()

	if event.OccurredAt == constant.Empty {
		event.OccurredAt = timezone.Format(timezone.Now(), constant.DateFormat)
	}

	if actor, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && event.Actor == constant.Empty {
		event.Actor = actor
	}

	topic := p.cfg.Kafka.ActivityTopic

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   event.TenantScope,
			Value: event,
		}

		if err := p.client.SendMessages(c, topic, message); err != nil {
			log.Error().Err(err).Str("action", event.Action).Msg("failed to publish activity event")
		}
	}()
}
