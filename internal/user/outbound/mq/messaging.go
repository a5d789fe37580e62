package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/userbite/internal/pkg/instrument"
	"github.com/shandysiswandi/userbite/internal/pkg/messaging"
	"github.com/shandysiswandi/userbite/internal/shared/event"
	"github.com/shandysiswandi/userbite/internal/user/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	keyOfCorrelationID string = "cID"
	keyOfEventKind     string = "kind"
)

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &Messaging{client: client, ins: ins}
}

// PublishUserEvent sends evt keyed by user id so events of one user stay ordered.
func (m *Messaging) PublishUserEvent(ctx context.Context, evt usecase.UserEvent) error {
	ctx, span := m.ins.Tracer("user.outbound.mq").Start(ctx, "PublishUserEvent")
	defer span.End()

	span.SetAttributes(attribute.String("event.kind", string(evt.Kind)), attribute.Int64("user.id", evt.User.ID))

	body, err := json.Marshal(event.UserMessage{
		Kind:         string(evt.Kind),
		UserID:       evt.User.ID,
		GivenNames:   evt.User.GivenNames,
		LastName:     evt.User.LastName,
		EmailAddress: evt.User.EmailAddress,
		MobileNumber: evt.User.MobileNumber,
		OccurredAt:   evt.OccurredAt.UnixMilli(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.UserDestination, messaging.OutgoingMessage{
		Body: body,
		Key:  []byte(strconv.FormatInt(evt.User.ID, 10)),
		Headers: []messaging.Header{
			{Key: keyOfCorrelationID, Value: []byte(cID)},
			{Key: keyOfEventKind, Value: []byte(evt.Kind)},
		},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
