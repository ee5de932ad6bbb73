// Package mq publishes identity events to the message broker.
package mq

import (
	"context"
	"encoding/json"

	"github.com/sentiqlab/sentiq/internal/identity/usecase"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/messaging"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID = "cID"
const keyOfMessageID = "messageID"

// Messaging publishes identity events.
type Messaging struct {
	client messaging.Publisher
	oid    uid.StringID
	ins    instrument.Instrumentation
}

// NewMessaging constructs the adapter. oid generates broker message IDs.
func NewMessaging(client messaging.Publisher, oid uid.StringID, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, oid: oid, ins: ins}
}

// PublishUserRegistered announces a new account.
func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserRegistered")
	defer span.End()

	body, err := json.Marshal(event.UserRegisteredMessage{
		UserID:   msg.UserID,
		Email:    msg.Email,
		FullName: msg.FullName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := messaging.OutgoingMessage{
		Body: body,
		Key:  []byte(msg.UserID),
		Headers: []messaging.Header{
			{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))},
			{Key: keyOfMessageID, Value: []byte(m.oid.Generate())},
		},
	}

	if _, err := m.client.Publish(ctx, event.UserRegisteredDestination, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
